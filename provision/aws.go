/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package provision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/imagebuilder"
	ibtypes "github.com/aws/aws-sdk-go-v2/service/imagebuilder/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/cowdogmoo/imagepipe/errors"
	"github.com/cowdogmoo/imagepipe/logging"
	"github.com/cowdogmoo/imagepipe/plan"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Tag keys applied to every created resource.
const (
	TagPipeline = "imagepipe:pipeline"
	TagRunID    = "imagepipe:run-id"
)

// Replaced in tests.
var (
	profileWaitTimeout = 2 * time.Minute
	infraRetryDelay    = 10 * time.Second
)

const infraRetryAttempts = 6

// AWSOptions tune the AWS backend.
type AWSOptions struct {
	// Concurrency bounds how many pipelines are applied at once.
	Concurrency int
	// VerifyImages checks every recipe's parent AMI with DescribeImages
	// before creating anything for that pipeline.
	VerifyImages bool
}

// AWSBackend applies a plan with the AWS SDK. Pipelines are applied in
// parallel; the directives of one pipeline are applied in order.
type AWSBackend struct {
	clients *AWSClients
	opts    AWSOptions
}

// NewAWSBackend creates an AWS backend.
func NewAWSBackend(clients *AWSClients, opts AWSOptions) *AWSBackend {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &AWSBackend{clients: clients, opts: opts}
}

// Apply implements Backend. The first failing pipeline cancels the others;
// resources already created are kept and reused by the next run.
func (b *AWSBackend) Apply(ctx context.Context, p *plan.Plan) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap("validate plan", "", err)
	}

	runID := uuid.NewString()
	report := &Report{
		RunID:     runID,
		Region:    p.Region,
		Account:   p.Account,
		Pipelines: make([]PipelineReport, len(p.Pipelines)),
	}

	logging.InfoContext(ctx, "Applying %d pipelines (%d directives) in %s, run %s",
		len(p.Pipelines), p.DirectiveCount(), p.Region, runID)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)

	for i := range p.Pipelines {
		pp := p.Pipelines[i]
		idx := i
		g.Go(func() error {
			run := &pipelineRun{
				backend:  b,
				runID:    runID,
				pipeline: pp.Name,
				handles:  make(map[string]string),
				statuses: make(map[string]Status),
			}
			pr, err := run.apply(gctx, pp)
			report.Pipelines[idx] = pr
			if err != nil {
				return errors.Wrap(fmt.Sprintf("apply pipeline %s", pp.Name), "", err)
			}
			logging.InfoContext(gctx, "Pipeline %s applied (%d resources)", pp.Name, len(pr.Resources))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

// pipelineRun applies the directives of one pipeline and tracks the handle
// (ARN or name) and status of every resource it has seen.
type pipelineRun struct {
	backend  *AWSBackend
	runID    string
	pipeline string
	handles  map[string]string
	statuses map[string]Status
}

func (r *pipelineRun) apply(ctx context.Context, pp plan.PipelinePlan) (PipelineReport, error) {
	pr := PipelineReport{Name: pp.Name}

	if r.backend.opts.VerifyImages {
		if err := r.verifyParentImages(ctx, pp); err != nil {
			return pr, err
		}
	}

	for _, d := range pp.Directives {
		if err := ctx.Err(); err != nil {
			return pr, err
		}
		res, err := r.applyDirective(ctx, d)
		if err != nil {
			return pr, err
		}
		res.Identity = d.Identity
		res.Kind = d.Kind
		r.handles[d.Identity] = res.Handle
		r.statuses[d.Identity] = res.Status
		pr.Resources = append(pr.Resources, res)
		logging.DebugContext(ctx, "%s %s: %s %s", res.Status, d.Kind, d.Identity, res.Handle)
	}
	return pr, nil
}

// handle returns the ARN or name recorded for a referenced directive.
func (r *pipelineRun) handle(ref string) (string, error) {
	h, ok := r.handles[ref]
	if !ok || h == "" {
		return "", fmt.Errorf("reference %s has not been applied", ref)
	}
	return h, nil
}

func (r *pipelineRun) applyDirective(ctx context.Context, d plan.Directive) (AppliedResource, error) {
	switch params := d.Parameters.(type) {
	case plan.InstanceProfileParams:
		return r.instanceProfile(ctx, params)
	case plan.NotificationTopicParams:
		return r.topic(ctx, params)
	case plan.AmiParameterParams:
		return r.amiParameter(ctx, params)
	case plan.InfrastructureConfigurationParams:
		return r.infrastructureConfiguration(ctx, params)
	case plan.ComponentParams:
		return r.component(ctx, params)
	case plan.ImageRecipeParams:
		return r.imageRecipe(ctx, params)
	case plan.PipelineParams:
		return r.imagePipeline(ctx, params)
	case plan.BuildTriggerParams:
		return r.buildTrigger(ctx, params)
	case plan.AmiRecorderSubscriptionParams:
		return r.recorderSubscription(ctx, params)
	case plan.EmailSubscriptionParams:
		return r.emailSubscription(ctx, params)
	default:
		return AppliedResource{}, fmt.Errorf("directive %s: unsupported parameters %T", d.Identity, d.Parameters)
	}
}

func (r *pipelineRun) tagMap() map[string]string {
	return map[string]string{TagPipeline: r.pipeline, TagRunID: r.runID}
}

type policyStatement struct {
	Effect    string            `json:"Effect"`
	Principal map[string]string `json:"Principal,omitempty"`
	Action    interface{}       `json:"Action"`
	Resource  string            `json:"Resource,omitempty"`
}

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

func marshalPolicy(statements ...policyStatement) (string, error) {
	data, err := json.Marshal(policyDocument{Version: "2012-10-17", Statement: statements})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// instanceProfile creates the role, its policies and the instance profile.
// The handle is the profile name, which is what the infrastructure
// configuration expects.
func (r *pipelineRun) instanceProfile(ctx context.Context, p plan.InstanceProfileParams) (AppliedResource, error) {
	iamClient := r.backend.clients.IAM
	status := StatusCreated

	trust, err := marshalPolicy(policyStatement{
		Effect:    "Allow",
		Principal: map[string]string{"Service": p.ServicePrincipal},
		Action:    "sts:AssumeRole",
	})
	if err != nil {
		return AppliedResource{}, err
	}

	var tags []iamtypes.Tag
	for k, v := range r.tagMap() {
		tags = append(tags, iamtypes.Tag{Key: aws.String(k), Value: aws.String(v)})
	}

	_, err = iamClient.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(p.RoleName),
		Path:                     aws.String(p.RolePath),
		AssumeRolePolicyDocument: aws.String(trust),
		Tags:                     tags,
	})
	if err != nil {
		if !isAlreadyExists(err) {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to create role %s", p.RoleName))
		}
		status = StatusExisting
	}

	for _, policyARN := range p.ManagedPolicyARNs {
		if _, err := iamClient.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(p.RoleName),
			PolicyArn: aws.String(policyARN),
		}); err != nil {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to attach %s to role %s", policyARN, p.RoleName))
		}
	}

	if len(p.InlineActions) > 0 {
		inline, err := marshalPolicy(policyStatement{Effect: "Allow", Action: p.InlineActions, Resource: "*"})
		if err != nil {
			return AppliedResource{}, err
		}
		if _, err := iamClient.PutRolePolicy(ctx, &iam.PutRolePolicyInput{
			RoleName:       aws.String(p.RoleName),
			PolicyName:     aws.String(p.RoleName + "-inline"),
			PolicyDocument: aws.String(inline),
		}); err != nil {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to put inline policy on role %s", p.RoleName))
		}
	}

	var existingRoles []iamtypes.Role
	_, err = iamClient.CreateInstanceProfile(ctx, &iam.CreateInstanceProfileInput{
		InstanceProfileName: aws.String(p.ProfileName),
		Tags:                tags,
	})
	switch {
	case err == nil:
		waiter := iam.NewInstanceProfileExistsWaiter(iamClient)
		if err := waiter.Wait(ctx, &iam.GetInstanceProfileInput{InstanceProfileName: aws.String(p.ProfileName)}, profileWaitTimeout); err != nil {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("instance profile %s did not become available", p.ProfileName))
		}
	case isAlreadyExists(err):
		out, getErr := iamClient.GetInstanceProfile(ctx, &iam.GetInstanceProfileInput{InstanceProfileName: aws.String(p.ProfileName)})
		if getErr != nil {
			return AppliedResource{}, WrapWithRemediation(getErr, fmt.Sprintf("failed to get instance profile %s", p.ProfileName))
		}
		if out.InstanceProfile != nil {
			existingRoles = out.InstanceProfile.Roles
		}
	default:
		return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to create instance profile %s", p.ProfileName))
	}

	if !hasRole(existingRoles, p.RoleName) {
		if _, err := iamClient.AddRoleToInstanceProfile(ctx, &iam.AddRoleToInstanceProfileInput{
			InstanceProfileName: aws.String(p.ProfileName),
			RoleName:            aws.String(p.RoleName),
		}); err != nil {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to add role %s to instance profile %s", p.RoleName, p.ProfileName))
		}
	}

	return AppliedResource{Handle: p.ProfileName, Status: status}, nil
}

func hasRole(roles []iamtypes.Role, name string) bool {
	for _, role := range roles {
		if aws.ToString(role.RoleName) == name {
			return true
		}
	}
	return false
}

// topic creates the build-completion topic. CreateTopic returns the
// existing ARN when the topic is already there.
func (r *pipelineRun) topic(ctx context.Context, p plan.NotificationTopicParams) (AppliedResource, error) {
	var tags []snstypes.Tag
	for k, v := range r.tagMap() {
		tags = append(tags, snstypes.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	out, err := r.backend.clients.SNS.CreateTopic(ctx, &sns.CreateTopicInput{
		Name: aws.String(p.TopicName),
		Tags: tags,
	})
	if err != nil {
		return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to create topic %s", p.TopicName))
	}
	return AppliedResource{Handle: aws.ToString(out.TopicArn), Status: StatusCreated}, nil
}

// amiParameter creates the AMI parameter. An existing parameter keeps its
// value since the recorder may already have written a real AMI ID.
func (r *pipelineRun) amiParameter(ctx context.Context, p plan.AmiParameterParams) (AppliedResource, error) {
	var tags []ssmtypes.Tag
	for k, v := range r.tagMap() {
		tags = append(tags, ssmtypes.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	_, err := r.backend.clients.SSM.PutParameter(ctx, &ssm.PutParameterInput{
		Name:        aws.String(p.ParameterName),
		Value:       aws.String(p.InitialValue),
		Type:        ssmtypes.ParameterTypeString,
		Tier:        ssmtypes.ParameterTier(p.Tier),
		Description: aws.String(p.Description),
		Tags:        tags,
	})
	if err != nil {
		if isAlreadyExists(err) {
			return AppliedResource{Handle: p.ParameterName, Status: StatusExisting}, nil
		}
		return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to create parameter %s", p.ParameterName))
	}
	return AppliedResource{Handle: p.ParameterName, Status: StatusCreated}, nil
}

// infrastructureConfiguration retries while a fresh instance profile is not
// yet visible to Image Builder.
func (r *pipelineRun) infrastructureConfiguration(ctx context.Context, p plan.InfrastructureConfigurationParams) (AppliedResource, error) {
	profileName, err := r.handle(p.InstanceProfileRef)
	if err != nil {
		return AppliedResource{}, err
	}
	topicARN, err := r.handle(p.TopicRef)
	if err != nil {
		return AppliedResource{}, err
	}

	input := &imagebuilder.CreateInfrastructureConfigurationInput{
		Name:                       aws.String(p.Name),
		InstanceProfileName:        aws.String(profileName),
		InstanceTypes:              p.InstanceTypes,
		SnsTopicArn:                aws.String(topicARN),
		TerminateInstanceOnFailure: aws.Bool(p.TerminateOnFailure),
		SecurityGroupIds:           p.SecurityGroupIDs,
		Tags:                       r.tagMap(),
		ResourceTags:               r.tagMap(),
	}
	if p.SubnetID != "" {
		input.SubnetId = aws.String(p.SubnetID)
	}

	for attempt := 1; ; attempt++ {
		out, err := r.backend.clients.ImageBuilder.CreateInfrastructureConfiguration(ctx, input)
		if err == nil {
			return AppliedResource{Handle: aws.ToString(out.InfrastructureConfigurationArn), Status: StatusCreated}, nil
		}
		if isAlreadyExists(err) {
			arn, findErr := r.findInfrastructureConfiguration(ctx, p.Name)
			if findErr != nil {
				return AppliedResource{}, findErr
			}
			return AppliedResource{Handle: arn, Status: StatusExisting}, nil
		}
		if attempt >= infraRetryAttempts || !strings.Contains(strings.ToLower(err.Error()), "instance profile") {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to create infrastructure configuration %s", p.Name))
		}
		logging.DebugContext(ctx, "Instance profile %s not visible yet, retrying infrastructure configuration %s (attempt %d)",
			profileName, p.Name, attempt)
		select {
		case <-ctx.Done():
			return AppliedResource{}, ctx.Err()
		case <-time.After(infraRetryDelay):
		}
	}
}

func (r *pipelineRun) component(ctx context.Context, p plan.ComponentParams) (AppliedResource, error) {
	out, err := r.backend.clients.ImageBuilder.CreateComponent(ctx, &imagebuilder.CreateComponentInput{
		Name:            aws.String(p.Name),
		SemanticVersion: aws.String(p.Version),
		Platform:        ibtypes.Platform(p.Platform),
		Data:            aws.String(p.Data),
		Description:     aws.String(fmt.Sprintf("Component %s from %s", p.Name, p.SourcePath)),
		Tags:            r.tagMap(),
	})
	if err != nil {
		if !isAlreadyExists(err) {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to create component %s from %s", p.Name, p.SourcePath))
		}
		arn, findErr := r.findComponent(ctx, p.Name, p.Version)
		if findErr != nil {
			return AppliedResource{}, findErr
		}
		return AppliedResource{Handle: arn, Status: StatusExisting}, nil
	}
	return AppliedResource{Handle: aws.ToString(out.ComponentBuildVersionArn), Status: StatusCreated}, nil
}

func (r *pipelineRun) imageRecipe(ctx context.Context, p plan.ImageRecipeParams) (AppliedResource, error) {
	components := make([]ibtypes.ComponentConfiguration, 0, len(p.Components))
	for _, c := range p.Components {
		arn := c.ARN
		if c.ComponentRef != "" {
			h, err := r.handle(c.ComponentRef)
			if err != nil {
				return AppliedResource{}, err
			}
			arn = h
		}
		components = append(components, ibtypes.ComponentConfiguration{ComponentArn: aws.String(arn)})
	}

	out, err := r.backend.clients.ImageBuilder.CreateImageRecipe(ctx, &imagebuilder.CreateImageRecipeInput{
		Name:            aws.String(p.Name),
		SemanticVersion: aws.String(p.Version),
		ParentImage:     aws.String(p.ParentImage),
		Components:      components,
		BlockDeviceMappings: []ibtypes.InstanceBlockDeviceMapping{{
			DeviceName: aws.String(p.BlockDevice.DeviceName),
			Ebs: &ibtypes.EbsInstanceBlockDeviceSpecification{
				VolumeSize:          aws.Int32(int32(p.BlockDevice.VolumeSizeGiB)),
				VolumeType:          ibtypes.EbsVolumeType(p.BlockDevice.VolumeType),
				DeleteOnTermination: aws.Bool(p.BlockDevice.DeleteOnTermination),
			},
		}},
		Tags: r.tagMap(),
	})
	if err != nil {
		if !isAlreadyExists(err) {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to create image recipe %s", p.Name))
		}
		arn, findErr := r.findImageRecipe(ctx, p.Name, p.Version)
		if findErr != nil {
			return AppliedResource{}, findErr
		}
		return AppliedResource{Handle: arn, Status: StatusExisting}, nil
	}
	return AppliedResource{Handle: aws.ToString(out.ImageRecipeArn), Status: StatusCreated}, nil
}

func (r *pipelineRun) imagePipeline(ctx context.Context, p plan.PipelineParams) (AppliedResource, error) {
	recipeARN, err := r.handle(p.ImageRecipeRef)
	if err != nil {
		return AppliedResource{}, err
	}
	infraARN, err := r.handle(p.InfrastructureConfigurationRef)
	if err != nil {
		return AppliedResource{}, err
	}

	status := ibtypes.PipelineStatusDisabled
	if p.Enabled {
		status = ibtypes.PipelineStatusEnabled
	}

	out, err := r.backend.clients.ImageBuilder.CreateImagePipeline(ctx, &imagebuilder.CreateImagePipelineInput{
		Name:                           aws.String(p.Name),
		ImageRecipeArn:                 aws.String(recipeARN),
		InfrastructureConfigurationArn: aws.String(infraARN),
		Status:                         status,
		Tags:                           r.tagMap(),
	})
	if err != nil {
		if !isAlreadyExists(err) {
			return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to create image pipeline %s", p.Name))
		}
		arn, findErr := r.findImagePipeline(ctx, p.Name)
		if findErr != nil {
			return AppliedResource{}, findErr
		}
		return AppliedResource{Handle: arn, Status: StatusExisting}, nil
	}
	return AppliedResource{Handle: aws.ToString(out.ImagePipelineArn), Status: StatusCreated}, nil
}

// buildTrigger starts one execution when the pipeline was created by this
// run. A pipeline that already existed or cannot be found is skipped.
func (r *pipelineRun) buildTrigger(ctx context.Context, p plan.BuildTriggerParams) (AppliedResource, error) {
	pipelineARN, err := r.handle(p.PipelineRef)
	if err != nil {
		return AppliedResource{}, err
	}
	if r.statuses[p.PipelineRef] == StatusExisting {
		logging.InfoContext(ctx, "Pipeline %s already existed, build not started", pipelineARN)
		return AppliedResource{Handle: pipelineARN, Status: StatusSkipped, Note: "pipeline already existed"}, nil
	}
	if p.ExpectedPipelineARN != "" && p.ExpectedPipelineARN != pipelineARN {
		logging.WarnContext(ctx, "Pipeline ARN %s differs from expected %s", pipelineARN, p.ExpectedPipelineARN)
	}

	out, err := r.backend.clients.ImageBuilder.StartImagePipelineExecution(ctx, &imagebuilder.StartImagePipelineExecutionInput{
		ImagePipelineArn: aws.String(pipelineARN),
	})
	if err != nil {
		if isNotFound(err) {
			logging.WarnContext(ctx, "Pipeline %s not found, build not started: %v", pipelineARN, err)
			return AppliedResource{Handle: pipelineARN, Status: StatusSkipped, Note: "pipeline not found"}, nil
		}
		return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to start pipeline %s", pipelineARN))
	}
	return AppliedResource{Handle: aws.ToString(out.ImageBuildVersionArn), Status: StatusStarted}, nil
}

func (r *pipelineRun) recorderSubscription(ctx context.Context, p plan.AmiRecorderSubscriptionParams) (AppliedResource, error) {
	if p.FunctionARN == "" {
		logging.WarnContext(ctx, "No recorder function configured, %s will not be updated by builds", p.ParameterName)
		return AppliedResource{Status: StatusSkipped, Note: "no recorder function configured"}, nil
	}
	topicARN, err := r.handle(p.TopicRef)
	if err != nil {
		return AppliedResource{}, err
	}
	return r.subscribe(ctx, topicARN, "lambda", p.FunctionARN)
}

func (r *pipelineRun) emailSubscription(ctx context.Context, p plan.EmailSubscriptionParams) (AppliedResource, error) {
	topicARN, err := r.handle(p.TopicRef)
	if err != nil {
		return AppliedResource{}, err
	}
	return r.subscribe(ctx, topicARN, "email", p.Endpoint)
}

func (r *pipelineRun) subscribe(ctx context.Context, topicARN, protocol, endpoint string) (AppliedResource, error) {
	out, err := r.backend.clients.SNS.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn:              aws.String(topicARN),
		Protocol:              aws.String(protocol),
		Endpoint:              aws.String(endpoint),
		ReturnSubscriptionArn: true,
	})
	if err != nil {
		return AppliedResource{}, WrapWithRemediation(err, fmt.Sprintf("failed to subscribe %s to %s", endpoint, topicARN))
	}
	return AppliedResource{Handle: aws.ToString(out.SubscriptionArn), Status: StatusCreated}, nil
}

// verifyParentImages checks that the parent AMI of every recipe exists in
// the target region.
func (r *pipelineRun) verifyParentImages(ctx context.Context, pp plan.PipelinePlan) error {
	for _, d := range pp.OfKind(plan.KindImageRecipe) {
		params, ok := d.Parameters.(plan.ImageRecipeParams)
		if !ok || !strings.HasPrefix(params.ParentImage, "ami-") {
			continue
		}
		out, err := r.backend.clients.EC2.DescribeImages(ctx, &ec2.DescribeImagesInput{
			ImageIds: []string{params.ParentImage},
		})
		if err != nil && !isImageNotFound(err) {
			return WrapWithRemediation(err, fmt.Sprintf("failed to describe parent image %s", params.ParentImage))
		}
		if err != nil || len(out.Images) == 0 {
			return &ApplyError{
				Message:     fmt.Sprintf("parent image %s of %s not found", params.ParentImage, d.Identity),
				Cause:       err,
				Remediation: "AMI IDs are region specific. Check the parentImage entry for this region.",
			}
		}
	}
	return nil
}

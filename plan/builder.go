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

package plan

import (
	"context"
	"fmt"

	"github.com/cowdogmoo/imagepipe/component"
	"github.com/cowdogmoo/imagepipe/diagnostics"
	"github.com/cowdogmoo/imagepipe/logging"
	"github.com/cowdogmoo/imagepipe/pipeline"
	"golang.org/x/sync/errgroup"
)

// Fixed values of the build instance role.
const (
	instanceRolePath      = "/executionServiceEC2Role/"
	ec2ServicePrincipal   = "ec2.amazonaws.com"
	amiParameterSentinel  = "n/a"
	amiParameterTier      = "Advanced"
	pipelineNamePrefix    = "imageBuilderPipeline"
	infraConfigNameSuffix = "-infraConfiguration"
	topicNameSuffix       = "-build-completion"
)

var (
	instanceManagedPolicies = []string{"AmazonSSMManagedInstanceCore", "EC2InstanceProfileForImageBuilder"}
	instanceInlineActions   = []string{"s3:PutObject"}
)

// Builder builds plans for one target.
type Builder struct {
	target   Target
	opts     Options
	resolver *component.Resolver
	images   ParentImageResolver
}

// NewBuilder returns a Builder. Zero-valued options fall back to
// DefaultOptions.
func NewBuilder(target Target, opts Options, resolver *component.Resolver) *Builder {
	defaults := DefaultOptions()
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaults.Concurrency
	}
	if opts.ParameterPrefix == "" {
		opts.ParameterPrefix = defaults.ParameterPrefix
	}
	if len(opts.InstanceTypes) == 0 {
		opts.InstanceTypes = defaults.InstanceTypes
	}
	if opts.DeviceName == "" {
		opts.DeviceName = defaults.DeviceName
	}
	if opts.VolumeType == "" {
		opts.VolumeType = defaults.VolumeType
	}
	if opts.Platform == "" {
		opts.Platform = defaults.Platform
	}

	return &Builder{
		target:   target,
		opts:     opts,
		resolver: resolver,
		images:   ParentImageResolver{Region: target.Region},
	}
}

// Build plans every configuration. Pipelines are planned concurrently and
// returned in input order. A pipeline with an error-severity diagnostic is
// left out of the plan without affecting its siblings. The returned plan
// is nil when a global error prevents planning; err is only set when ctx is
// canceled.
func (b *Builder) Build(ctx context.Context, configs []pipeline.Configuration, emailsRaw interface{}) (*Plan, diagnostics.List, error) {
	var collector diagnostics.Collector

	if b.target.Region == "" {
		collector.Add(diagnostics.GlobalError(diagnostics.CodeUnresolvedRegion,
			"no deployment region: set aws.region, AWS_REGION or a region in the AWS shared config"))
		return nil, collector.List(), nil
	}

	emails, warning := ResolveEmailSubscriptions(emailsRaw)
	if warning != "" {
		collector.Add(diagnostics.GlobalWarning(diagnostics.CodeInvalidEmails, warning).WithField(pipeline.EmailsKey))
	}

	if b.opts.RecorderFunctionARN == "" && len(configs) > 0 {
		collector.Add(diagnostics.GlobalWarning(diagnostics.CodeRecorderDisabled,
			"aws.recorder_function_arn is not set; AMI recorder subscriptions will be skipped on apply"))
	}

	results := make([]*PipelinePlan, len(configs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)

	for i := range configs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			pp, diags := b.planPipeline(configs[i], emails)
			collector.Add(diags...)
			if pp != nil {
				logging.DebugContext(gctx, "Planned pipeline %s with %d directives", pp.Name, len(pp.Directives))
			} else {
				logging.DebugContext(gctx, "Pipeline %s not planned", configs[i].Name)
			}
			results[i] = pp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, collector.List(), err
	}

	plan := &Plan{Region: b.target.Region, Account: b.target.Account}
	for _, pp := range results {
		if pp != nil {
			plan.Pipelines = append(plan.Pipelines, *pp)
		}
	}

	if err := plan.Validate(); err != nil {
		collector.Add(diagnostics.GlobalError(diagnostics.CodeInvalidPlan, err.Error()))
		return nil, collector.List(), nil
	}

	return plan, collector.List(), nil
}

// planPipeline emits the directives of one pipeline in dependency order.
func (b *Builder) planPipeline(cfg pipeline.Configuration, emails []EmailSubscription) (*PipelinePlan, diagnostics.List) {
	name := cfg.Name
	descriptors, diags := b.resolver.Resolve(name, cfg.ComponentReferences, cfg.BaseDir)

	parentImage, err := b.images.Resolve(cfg.ParentImage)
	if err != nil {
		diags = append(diags, diagnostics.PipelineError(name, diagnostics.CodeUnresolvedRegion, err.Error()).
			WithField("parentImage"))
	}

	diags = append(diags, checkComponentNames(name, descriptors)...)

	if diags.HasErrors() {
		return nil, diags
	}

	if len(descriptors) == 0 {
		diags = append(diags, diagnostics.PipelineWarning(name, diagnostics.CodeNoComponents,
			"component references resolved to zero components; Image Builder requires at least one").
			WithField("components"))
	}

	pp := &PipelinePlan{Name: name}
	emit := func(kind Kind, resourceName string, params Parameters, deps ...string) string {
		id := Identity(name, kind, resourceName)
		if deps == nil {
			deps = []string{}
		}
		pp.Directives = append(pp.Directives, Directive{Kind: kind, Identity: id, DependsOn: deps, Parameters: params})
		return id
	}

	profileName := fmt.Sprintf("%s-%s", cfg.InstanceProfileName, b.target.Region)
	policies := make([]string, 0, len(instanceManagedPolicies))
	for _, policy := range instanceManagedPolicies {
		policies = append(policies, ManagedPolicyARN(b.target.Region, policy))
	}
	profileID := emit(KindInstanceProfile, profileName, InstanceProfileParams{
		ProfileName:       profileName,
		RoleName:          profileName,
		RolePath:          instanceRolePath,
		ServicePrincipal:  ec2ServicePrincipal,
		ManagedPolicyARNs: policies,
		InlineActions:     append([]string(nil), instanceInlineActions...),
	})

	topicName := name + topicNameSuffix
	topicID := emit(KindNotificationTopic, topicName, NotificationTopicParams{TopicName: topicName})

	parameterName := fmt.Sprintf("%s_%s", b.opts.ParameterPrefix, name)
	parameterID := emit(KindAmiParameter, parameterName, AmiParameterParams{
		ParameterName: parameterName,
		InitialValue:  amiParameterSentinel,
		Tier:          amiParameterTier,
		Description:   fmt.Sprintf("Latest AMI ID built by pipeline %s", name),
	})

	infraName := name + infraConfigNameSuffix
	infraID := emit(KindInfrastructureConfiguration, infraName, InfrastructureConfigurationParams{
		Name:               infraName,
		InstanceProfileRef: profileID,
		TopicRef:           topicID,
		InstanceTypes:      append([]string(nil), b.opts.InstanceTypes...),
		TerminateOnFailure: !cfg.DebugMode,
		SubnetID:           b.opts.SubnetID,
		SecurityGroupIDs:   append([]string(nil), b.opts.SecurityGroupIDs...),
	}, profileID, topicID)

	var componentIDs []string
	recipeComponents := make([]RecipeComponent, 0, len(descriptors))
	for _, desc := range descriptors {
		if desc.IsManaged() {
			recipeComponents = append(recipeComponents, RecipeComponent{Name: desc.Name, ARN: desc.ManagedIdentifier})
			continue
		}
		id := emit(KindComponent, desc.Name, ComponentParams{
			Name:       desc.Name,
			Version:    cfg.Version,
			Platform:   b.opts.Platform,
			Data:       desc.Content,
			SourcePath: desc.Path,
		})
		componentIDs = append(componentIDs, id)
		recipeComponents = append(recipeComponents, RecipeComponent{Name: desc.Name, ComponentRef: id})
	}

	recipeID := emit(KindImageRecipe, cfg.RecipeName, ImageRecipeParams{
		Name:        cfg.RecipeName,
		Version:     cfg.Version,
		ParentImage: parentImage,
		Components:  recipeComponents,
		BlockDevice: BlockDevice{
			DeviceName:          b.opts.DeviceName,
			VolumeSizeGiB:       cfg.StorageSizeGiB,
			VolumeType:          b.opts.VolumeType,
			DeleteOnTermination: !cfg.DebugMode,
		},
	}, componentIDs...)

	pipelineName := pipelineNamePrefix + name
	pipelineID := emit(KindPipeline, pipelineName, PipelineParams{
		Name:                           pipelineName,
		ImageRecipeRef:                 recipeID,
		InfrastructureConfigurationRef: infraID,
		Enabled:                        true,
	}, infraID, recipeID)

	trigger := BuildTriggerParams{PipelineRef: pipelineID}
	if b.target.Account != "" {
		trigger.ExpectedPipelineARN = PipelineARN(b.target.Region, b.target.Account, pipelineName)
	}
	emit(KindBuildTriggerInvocation, "start", trigger, pipelineID)

	emit(KindAmiRecorderSubscription, parameterName, AmiRecorderSubscriptionParams{
		TopicRef:      topicID,
		ParameterRef:  parameterID,
		ParameterName: parameterName,
		FunctionARN:   b.opts.RecorderFunctionARN,
	}, topicID, parameterID)

	seen := make(map[string]bool, len(emails))
	for _, email := range emails {
		if seen[email.Endpoint] {
			diags = append(diags, diagnostics.PipelineWarning(name, diagnostics.CodeInvalidEmails,
				fmt.Sprintf("duplicate notification email %q ignored", email.Endpoint)).
				WithField(pipeline.EmailsKey))
			continue
		}
		seen[email.Endpoint] = true
		emit(KindEmailSubscription, email.Endpoint, EmailSubscriptionParams{
			TopicRef: topicID,
			Endpoint: email.Endpoint,
		}, topicID)
	}

	return pp, diags
}

// checkComponentNames rejects inline components that share a name, since
// both would map to the same Image Builder component.
func checkComponentNames(pipelineName string, descriptors []component.Descriptor) diagnostics.List {
	var diags diagnostics.List
	firstPath := make(map[string]string)

	for _, desc := range descriptors {
		if desc.IsManaged() {
			continue
		}
		if first, dup := firstPath[desc.Name]; dup {
			diags = append(diags, diagnostics.PipelineError(pipelineName, diagnostics.CodeDuplicateComponent,
				fmt.Sprintf("component name %q from %s is already used by %s", desc.Name, desc.Path, first)).
				WithField("components").
				WithReference(desc.Reference))
			continue
		}
		firstPath[desc.Name] = desc.Path
	}

	return diags
}

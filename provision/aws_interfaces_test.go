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

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/imagebuilder"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Compile-time interface checks
var (
	_ ImageBuilderAPI = (*MockImageBuilderClient)(nil)
	_ IAMAPI          = (*MockIAMClient)(nil)
	_ SNSAPI          = (*MockSNSClient)(nil)
	_ SSMAPI          = (*MockSSMClient)(nil)
	_ EC2API          = (*MockEC2Client)(nil)
	_ STSAPI          = (*MockSTSClient)(nil)
)

// MockImageBuilderClient implements ImageBuilderAPI for testing.
type MockImageBuilderClient struct {
	CreateComponentFunc                   func(ctx context.Context, params *imagebuilder.CreateComponentInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.CreateComponentOutput, error)
	ListComponentsFunc                    func(ctx context.Context, params *imagebuilder.ListComponentsInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.ListComponentsOutput, error)
	CreateInfrastructureConfigurationFunc func(ctx context.Context, params *imagebuilder.CreateInfrastructureConfigurationInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.CreateInfrastructureConfigurationOutput, error)
	ListInfrastructureConfigurationsFunc  func(ctx context.Context, params *imagebuilder.ListInfrastructureConfigurationsInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.ListInfrastructureConfigurationsOutput, error)
	CreateImageRecipeFunc                 func(ctx context.Context, params *imagebuilder.CreateImageRecipeInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.CreateImageRecipeOutput, error)
	ListImageRecipesFunc                  func(ctx context.Context, params *imagebuilder.ListImageRecipesInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.ListImageRecipesOutput, error)
	CreateImagePipelineFunc               func(ctx context.Context, params *imagebuilder.CreateImagePipelineInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.CreateImagePipelineOutput, error)
	ListImagePipelinesFunc                func(ctx context.Context, params *imagebuilder.ListImagePipelinesInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.ListImagePipelinesOutput, error)
	StartImagePipelineExecutionFunc       func(ctx context.Context, params *imagebuilder.StartImagePipelineExecutionInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.StartImagePipelineExecutionOutput, error)
}

func (m *MockImageBuilderClient) CreateComponent(ctx context.Context, params *imagebuilder.CreateComponentInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.CreateComponentOutput, error) {
	if m.CreateComponentFunc != nil {
		return m.CreateComponentFunc(ctx, params, optFns...)
	}
	return &imagebuilder.CreateComponentOutput{}, nil
}

func (m *MockImageBuilderClient) ListComponents(ctx context.Context, params *imagebuilder.ListComponentsInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.ListComponentsOutput, error) {
	if m.ListComponentsFunc != nil {
		return m.ListComponentsFunc(ctx, params, optFns...)
	}
	return &imagebuilder.ListComponentsOutput{}, nil
}

func (m *MockImageBuilderClient) CreateInfrastructureConfiguration(ctx context.Context, params *imagebuilder.CreateInfrastructureConfigurationInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.CreateInfrastructureConfigurationOutput, error) {
	if m.CreateInfrastructureConfigurationFunc != nil {
		return m.CreateInfrastructureConfigurationFunc(ctx, params, optFns...)
	}
	return &imagebuilder.CreateInfrastructureConfigurationOutput{}, nil
}

func (m *MockImageBuilderClient) ListInfrastructureConfigurations(ctx context.Context, params *imagebuilder.ListInfrastructureConfigurationsInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.ListInfrastructureConfigurationsOutput, error) {
	if m.ListInfrastructureConfigurationsFunc != nil {
		return m.ListInfrastructureConfigurationsFunc(ctx, params, optFns...)
	}
	return &imagebuilder.ListInfrastructureConfigurationsOutput{}, nil
}

func (m *MockImageBuilderClient) CreateImageRecipe(ctx context.Context, params *imagebuilder.CreateImageRecipeInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.CreateImageRecipeOutput, error) {
	if m.CreateImageRecipeFunc != nil {
		return m.CreateImageRecipeFunc(ctx, params, optFns...)
	}
	return &imagebuilder.CreateImageRecipeOutput{}, nil
}

func (m *MockImageBuilderClient) ListImageRecipes(ctx context.Context, params *imagebuilder.ListImageRecipesInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.ListImageRecipesOutput, error) {
	if m.ListImageRecipesFunc != nil {
		return m.ListImageRecipesFunc(ctx, params, optFns...)
	}
	return &imagebuilder.ListImageRecipesOutput{}, nil
}

func (m *MockImageBuilderClient) CreateImagePipeline(ctx context.Context, params *imagebuilder.CreateImagePipelineInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.CreateImagePipelineOutput, error) {
	if m.CreateImagePipelineFunc != nil {
		return m.CreateImagePipelineFunc(ctx, params, optFns...)
	}
	return &imagebuilder.CreateImagePipelineOutput{}, nil
}

func (m *MockImageBuilderClient) ListImagePipelines(ctx context.Context, params *imagebuilder.ListImagePipelinesInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.ListImagePipelinesOutput, error) {
	if m.ListImagePipelinesFunc != nil {
		return m.ListImagePipelinesFunc(ctx, params, optFns...)
	}
	return &imagebuilder.ListImagePipelinesOutput{}, nil
}

func (m *MockImageBuilderClient) StartImagePipelineExecution(ctx context.Context, params *imagebuilder.StartImagePipelineExecutionInput, optFns ...func(*imagebuilder.Options)) (*imagebuilder.StartImagePipelineExecutionOutput, error) {
	if m.StartImagePipelineExecutionFunc != nil {
		return m.StartImagePipelineExecutionFunc(ctx, params, optFns...)
	}
	return &imagebuilder.StartImagePipelineExecutionOutput{}, nil
}

// MockIAMClient implements IAMAPI for testing.
type MockIAMClient struct {
	CreateRoleFunc               func(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error)
	GetRoleFunc                  func(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	AttachRolePolicyFunc         func(ctx context.Context, params *iam.AttachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error)
	PutRolePolicyFunc            func(ctx context.Context, params *iam.PutRolePolicyInput, optFns ...func(*iam.Options)) (*iam.PutRolePolicyOutput, error)
	CreateInstanceProfileFunc    func(ctx context.Context, params *iam.CreateInstanceProfileInput, optFns ...func(*iam.Options)) (*iam.CreateInstanceProfileOutput, error)
	GetInstanceProfileFunc       func(ctx context.Context, params *iam.GetInstanceProfileInput, optFns ...func(*iam.Options)) (*iam.GetInstanceProfileOutput, error)
	AddRoleToInstanceProfileFunc func(ctx context.Context, params *iam.AddRoleToInstanceProfileInput, optFns ...func(*iam.Options)) (*iam.AddRoleToInstanceProfileOutput, error)
}

func (m *MockIAMClient) CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	if m.CreateRoleFunc != nil {
		return m.CreateRoleFunc(ctx, params, optFns...)
	}
	return &iam.CreateRoleOutput{}, nil
}

func (m *MockIAMClient) GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	if m.GetRoleFunc != nil {
		return m.GetRoleFunc(ctx, params, optFns...)
	}
	return &iam.GetRoleOutput{}, nil
}

func (m *MockIAMClient) AttachRolePolicy(ctx context.Context, params *iam.AttachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error) {
	if m.AttachRolePolicyFunc != nil {
		return m.AttachRolePolicyFunc(ctx, params, optFns...)
	}
	return &iam.AttachRolePolicyOutput{}, nil
}

func (m *MockIAMClient) PutRolePolicy(ctx context.Context, params *iam.PutRolePolicyInput, optFns ...func(*iam.Options)) (*iam.PutRolePolicyOutput, error) {
	if m.PutRolePolicyFunc != nil {
		return m.PutRolePolicyFunc(ctx, params, optFns...)
	}
	return &iam.PutRolePolicyOutput{}, nil
}

func (m *MockIAMClient) CreateInstanceProfile(ctx context.Context, params *iam.CreateInstanceProfileInput, optFns ...func(*iam.Options)) (*iam.CreateInstanceProfileOutput, error) {
	if m.CreateInstanceProfileFunc != nil {
		return m.CreateInstanceProfileFunc(ctx, params, optFns...)
	}
	return &iam.CreateInstanceProfileOutput{}, nil
}

func (m *MockIAMClient) GetInstanceProfile(ctx context.Context, params *iam.GetInstanceProfileInput, optFns ...func(*iam.Options)) (*iam.GetInstanceProfileOutput, error) {
	if m.GetInstanceProfileFunc != nil {
		return m.GetInstanceProfileFunc(ctx, params, optFns...)
	}
	return &iam.GetInstanceProfileOutput{}, nil
}

func (m *MockIAMClient) AddRoleToInstanceProfile(ctx context.Context, params *iam.AddRoleToInstanceProfileInput, optFns ...func(*iam.Options)) (*iam.AddRoleToInstanceProfileOutput, error) {
	if m.AddRoleToInstanceProfileFunc != nil {
		return m.AddRoleToInstanceProfileFunc(ctx, params, optFns...)
	}
	return &iam.AddRoleToInstanceProfileOutput{}, nil
}

// MockSNSClient implements SNSAPI for testing.
type MockSNSClient struct {
	CreateTopicFunc func(ctx context.Context, params *sns.CreateTopicInput, optFns ...func(*sns.Options)) (*sns.CreateTopicOutput, error)
	SubscribeFunc   func(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
}

func (m *MockSNSClient) CreateTopic(ctx context.Context, params *sns.CreateTopicInput, optFns ...func(*sns.Options)) (*sns.CreateTopicOutput, error) {
	if m.CreateTopicFunc != nil {
		return m.CreateTopicFunc(ctx, params, optFns...)
	}
	return &sns.CreateTopicOutput{}, nil
}

func (m *MockSNSClient) Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error) {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, params, optFns...)
	}
	return &sns.SubscribeOutput{}, nil
}

// MockSSMClient implements SSMAPI for testing.
type MockSSMClient struct {
	PutParameterFunc func(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

func (m *MockSSMClient) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	if m.PutParameterFunc != nil {
		return m.PutParameterFunc(ctx, params, optFns...)
	}
	return &ssm.PutParameterOutput{}, nil
}

// MockEC2Client implements EC2API for testing.
type MockEC2Client struct {
	DescribeImagesFunc func(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
}

func (m *MockEC2Client) DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
	if m.DescribeImagesFunc != nil {
		return m.DescribeImagesFunc(ctx, params, optFns...)
	}
	return &ec2.DescribeImagesOutput{}, nil
}

// MockSTSClient implements STSAPI for testing.
type MockSTSClient struct {
	GetCallerIdentityFunc func(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func (m *MockSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if m.GetCallerIdentityFunc != nil {
		return m.GetCallerIdentityFunc(ctx, params, optFns...)
	}
	return &sts.GetCallerIdentityOutput{}, nil
}

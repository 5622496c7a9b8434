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

// InstanceProfileParams creates the build instance role and profile.
type InstanceProfileParams struct {
	ProfileName       string   `json:"profileName" yaml:"profileName"`
	RoleName          string   `json:"roleName" yaml:"roleName"`
	RolePath          string   `json:"rolePath" yaml:"rolePath"`
	ServicePrincipal  string   `json:"servicePrincipal" yaml:"servicePrincipal"`
	ManagedPolicyARNs []string `json:"managedPolicyArns" yaml:"managedPolicyArns"`
	InlineActions     []string `json:"inlineActions" yaml:"inlineActions"`
}

// Kind implements Parameters.
func (InstanceProfileParams) Kind() Kind { return KindInstanceProfile }

// NotificationTopicParams creates the build-completion topic.
type NotificationTopicParams struct {
	TopicName string `json:"topicName" yaml:"topicName"`
}

// Kind implements Parameters.
func (NotificationTopicParams) Kind() Kind { return KindNotificationTopic }

// AmiParameterParams creates the parameter that receives the latest AMI ID.
type AmiParameterParams struct {
	ParameterName string `json:"parameterName" yaml:"parameterName"`
	InitialValue  string `json:"initialValue" yaml:"initialValue"`
	Tier          string `json:"tier" yaml:"tier"`
	Description   string `json:"description" yaml:"description"`
}

// Kind implements Parameters.
func (AmiParameterParams) Kind() Kind { return KindAmiParameter }

// InfrastructureConfigurationParams creates the build infrastructure.
type InfrastructureConfigurationParams struct {
	Name               string   `json:"name" yaml:"name"`
	InstanceProfileRef string   `json:"instanceProfileRef" yaml:"instanceProfileRef"`
	TopicRef           string   `json:"topicRef" yaml:"topicRef"`
	InstanceTypes      []string `json:"instanceTypes" yaml:"instanceTypes"`
	TerminateOnFailure bool     `json:"terminateOnFailure" yaml:"terminateOnFailure"`
	SubnetID           string   `json:"subnetId,omitempty" yaml:"subnetId,omitempty"`
	SecurityGroupIDs   []string `json:"securityGroupIds,omitempty" yaml:"securityGroupIds,omitempty"`
}

// Kind implements Parameters.
func (InfrastructureConfigurationParams) Kind() Kind { return KindInfrastructureConfiguration }

// ComponentParams creates a component from an inline definition.
type ComponentParams struct {
	Name       string `json:"name" yaml:"name"`
	Version    string `json:"version" yaml:"version"`
	Platform   string `json:"platform" yaml:"platform"`
	Data       string `json:"data" yaml:"data"`
	SourcePath string `json:"sourcePath" yaml:"sourcePath"`
}

// Kind implements Parameters.
func (ComponentParams) Kind() Kind { return KindComponent }

// RecipeComponent is one recipe entry: either a managed component ARN or a
// reference to a Component directive.
type RecipeComponent struct {
	Name         string `json:"name" yaml:"name"`
	ARN          string `json:"arn,omitempty" yaml:"arn,omitempty"`
	ComponentRef string `json:"componentRef,omitempty" yaml:"componentRef,omitempty"`
}

// BlockDevice is the root volume of the build instance.
type BlockDevice struct {
	DeviceName          string `json:"deviceName" yaml:"deviceName"`
	VolumeSizeGiB       int    `json:"volumeSizeGiB" yaml:"volumeSizeGiB"`
	VolumeType          string `json:"volumeType" yaml:"volumeType"`
	DeleteOnTermination bool   `json:"deleteOnTermination" yaml:"deleteOnTermination"`
}

// ImageRecipeParams creates the image recipe.
type ImageRecipeParams struct {
	Name        string            `json:"name" yaml:"name"`
	Version     string            `json:"version" yaml:"version"`
	ParentImage string            `json:"parentImage" yaml:"parentImage"`
	Components  []RecipeComponent `json:"components" yaml:"components"`
	BlockDevice BlockDevice       `json:"blockDevice" yaml:"blockDevice"`
}

// Kind implements Parameters.
func (ImageRecipeParams) Kind() Kind { return KindImageRecipe }

// PipelineParams creates the image pipeline.
type PipelineParams struct {
	Name                           string `json:"name" yaml:"name"`
	ImageRecipeRef                 string `json:"imageRecipeRef" yaml:"imageRecipeRef"`
	InfrastructureConfigurationRef string `json:"infrastructureConfigurationRef" yaml:"infrastructureConfigurationRef"`
	Enabled                        bool   `json:"enabled" yaml:"enabled"`
}

// Kind implements Parameters.
func (PipelineParams) Kind() Kind { return KindPipeline }

// BuildTriggerParams starts one pipeline execution once the pipeline exists.
type BuildTriggerParams struct {
	PipelineRef         string `json:"pipelineRef" yaml:"pipelineRef"`
	ExpectedPipelineARN string `json:"expectedPipelineArn,omitempty" yaml:"expectedPipelineArn,omitempty"`
}

// Kind implements Parameters.
func (BuildTriggerParams) Kind() Kind { return KindBuildTriggerInvocation }

// AmiRecorderSubscriptionParams subscribes the recorder function to the
// topic so the produced AMI ID is written to the parameter.
type AmiRecorderSubscriptionParams struct {
	TopicRef      string `json:"topicRef" yaml:"topicRef"`
	ParameterRef  string `json:"parameterRef" yaml:"parameterRef"`
	ParameterName string `json:"parameterName" yaml:"parameterName"`
	FunctionARN   string `json:"functionArn,omitempty" yaml:"functionArn,omitempty"`
}

// Kind implements Parameters.
func (AmiRecorderSubscriptionParams) Kind() Kind { return KindAmiRecorderSubscription }

// EmailSubscriptionParams subscribes one email endpoint to the topic.
type EmailSubscriptionParams struct {
	TopicRef string `json:"topicRef" yaml:"topicRef"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// Kind implements Parameters.
func (EmailSubscriptionParams) Kind() Kind { return KindEmailSubscription }

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
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/imagebuilder"
	ibtypes "github.com/aws/aws-sdk-go-v2/service/imagebuilder/types"
)

func nameFilter(name string) []ibtypes.Filter {
	return []ibtypes.Filter{{Name: aws.String("name"), Values: []string{name}}}
}

// versionMatch reports whether a versioned Image Builder ARN carries the
// given semantic version, with or without a build number suffix.
func versionMatch(arn, version string) bool {
	if version == "" {
		return true
	}
	return strings.HasSuffix(arn, "/"+version) || strings.Contains(arn, "/"+version+"/")
}

// findComponent looks up an owned component version by name.
func (r *pipelineRun) findComponent(ctx context.Context, name, version string) (string, error) {
	input := &imagebuilder.ListComponentsInput{Owner: ibtypes.OwnershipSelf, Filters: nameFilter(name)}
	for {
		out, err := r.backend.clients.ImageBuilder.ListComponents(ctx, input)
		if err != nil {
			return "", WrapWithRemediation(err, fmt.Sprintf("failed to list components named %s", name))
		}
		for _, c := range out.ComponentVersionList {
			if aws.ToString(c.Name) == name && versionMatch(aws.ToString(c.Arn), version) {
				return aws.ToString(c.Arn), nil
			}
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return "", fmt.Errorf("component %s version %s reported as existing but not found", name, version)
}

// findImageRecipe looks up an owned image recipe version by name.
func (r *pipelineRun) findImageRecipe(ctx context.Context, name, version string) (string, error) {
	input := &imagebuilder.ListImageRecipesInput{Owner: ibtypes.OwnershipSelf, Filters: nameFilter(name)}
	for {
		out, err := r.backend.clients.ImageBuilder.ListImageRecipes(ctx, input)
		if err != nil {
			return "", WrapWithRemediation(err, fmt.Sprintf("failed to list image recipes named %s", name))
		}
		for _, recipe := range out.ImageRecipeSummaryList {
			if aws.ToString(recipe.Name) == name && versionMatch(aws.ToString(recipe.Arn), version) {
				return aws.ToString(recipe.Arn), nil
			}
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return "", fmt.Errorf("image recipe %s version %s reported as existing but not found", name, version)
}

// findInfrastructureConfiguration looks up an infrastructure configuration by name.
func (r *pipelineRun) findInfrastructureConfiguration(ctx context.Context, name string) (string, error) {
	input := &imagebuilder.ListInfrastructureConfigurationsInput{Filters: nameFilter(name)}
	for {
		out, err := r.backend.clients.ImageBuilder.ListInfrastructureConfigurations(ctx, input)
		if err != nil {
			return "", WrapWithRemediation(err, fmt.Sprintf("failed to list infrastructure configurations named %s", name))
		}
		for _, ic := range out.InfrastructureConfigurationSummaryList {
			if aws.ToString(ic.Name) == name {
				return aws.ToString(ic.Arn), nil
			}
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return "", fmt.Errorf("infrastructure configuration %s reported as existing but not found", name)
}

// findImagePipeline looks up an image pipeline by name.
func (r *pipelineRun) findImagePipeline(ctx context.Context, name string) (string, error) {
	input := &imagebuilder.ListImagePipelinesInput{Filters: nameFilter(name)}
	for {
		out, err := r.backend.clients.ImageBuilder.ListImagePipelines(ctx, input)
		if err != nil {
			return "", WrapWithRemediation(err, fmt.Sprintf("failed to list image pipelines named %s", name))
		}
		for _, p := range out.ImagePipelineList {
			if aws.ToString(p.Name) == name {
				return aws.ToString(p.Arn), nil
			}
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}
	return "", fmt.Errorf("image pipeline %s reported as existing but not found", name)
}

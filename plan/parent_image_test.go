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
	"testing"

	"github.com/cowdogmoo/imagepipe/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentImageResolver(t *testing.T) {
	images := map[string]pipeline.ParentImage{
		"us-east-1":  {AmiID: "ami-123"},
		"eu-west-1":  {AmiID: "ami-456"},
		"ap-south-1": {},
	}

	ami, err := ParentImageResolver{Region: "eu-west-1"}.Resolve(images)
	require.NoError(t, err)
	assert.Equal(t, "ami-456", ami)

	_, err = ParentImageResolver{Region: "us-west-2"}.Resolve(images)
	assert.EqualError(t, err, "no parent image for region us-west-2 (configured regions: ap-south-1, eu-west-1, us-east-1)")

	_, err = ParentImageResolver{Region: "ap-south-1"}.Resolve(images)
	assert.Error(t, err)
}

func TestPartition(t *testing.T) {
	tests := map[string]string{
		"us-east-1":      "aws",
		"eu-central-1":   "aws",
		"cn-north-1":     "aws-cn",
		"us-gov-west-1":  "aws-us-gov",
		"us-iso-east-1":  "aws-iso",
		"us-isob-east-1": "aws-iso-b",
	}
	for region, want := range tests {
		assert.Equal(t, want, Partition(region), region)
	}
}

func TestARNHelpers(t *testing.T) {
	assert.Equal(t, "arn:aws-cn:iam::aws:policy/AmazonSSMManagedInstanceCore",
		ManagedPolicyARN("cn-north-1", "AmazonSSMManagedInstanceCore"))
	assert.Equal(t, "arn:aws-us-gov:imagebuilder:us-gov-west-1:111122223333:image-pipeline/imagebuilderpipelinedemo",
		PipelineARN("us-gov-west-1", "111122223333", "imageBuilderPipelineDemo"))
}

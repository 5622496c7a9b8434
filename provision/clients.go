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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/imagebuilder"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/cowdogmoo/imagepipe/errors"
)

// loadAWSConfig is replaced in tests.
var loadAWSConfig = config.LoadDefaultConfig

// AWSClients holds the AWS service clients used by the AWS backend.
type AWSClients struct {
	ImageBuilder ImageBuilderAPI
	IAM          IAMAPI
	SNS          SNSAPI
	SSM          SSMAPI
	EC2          EC2API
	STS          STSAPI
	Config       aws.Config
}

// ClientConfig contains configuration for creating AWS clients
type ClientConfig struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// NewAWSClients creates a new set of AWS clients with the given configuration
func NewAWSClients(ctx context.Context, cfg ClientConfig) (*AWSClients, error) {
	var optFns []func(*config.LoadOptions) error

	if cfg.Region != "" {
		optFns = append(optFns, config.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(cfg.Profile))
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		provider := credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			cfg.SessionToken,
		)
		optFns = append(optFns, config.WithCredentialsProvider(provider))
	}

	awsCfg, err := loadAWSConfig(ctx, optFns...)
	if err != nil {
		return nil, errors.Wrap("load AWS config", "", err)
	}

	if awsCfg.Region == "" {
		return nil, fmt.Errorf("AWS region not specified (set aws.region, AWS_REGION or --region)")
	}

	return &AWSClients{
		ImageBuilder: imagebuilder.NewFromConfig(awsCfg),
		IAM:          iam.NewFromConfig(awsCfg),
		SNS:          sns.NewFromConfig(awsCfg),
		SSM:          ssm.NewFromConfig(awsCfg),
		EC2:          ec2.NewFromConfig(awsCfg),
		STS:          sts.NewFromConfig(awsCfg),
		Config:       awsCfg,
	}, nil
}

// GetRegion returns the configured AWS region
func (c *AWSClients) GetRegion() string {
	return c.Config.Region
}

// AccountID returns the account of the caller's credentials.
func (c *AWSClients) AccountID(ctx context.Context) (string, error) {
	out, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", WrapWithRemediation(err, "failed to look up AWS account")
	}
	return aws.ToString(out.Account), nil
}

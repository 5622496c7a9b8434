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
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ApplyError is a provisioning failure with a remediation hint.
type ApplyError struct {
	Message     string
	Cause       error
	Remediation string
}

func (e *ApplyError) Error() string {
	if e.Remediation != "" {
		return fmt.Sprintf("%s\n\nRemediation: %s", e.Message, e.Remediation)
	}
	return e.Message
}

func (e *ApplyError) Unwrap() error {
	return e.Cause
}

// errorPattern matches an error message to a remediation hint.
type errorPattern struct {
	patterns    []string // all must match
	anyPatterns []string // at least one must match
	msgSuffix   string
	remediation string
}

// errorPatterns are checked in order; the first match wins.
var errorPatterns = []errorPattern{
	{
		anyPatterns: []string{"ExpiredToken", "failed to retrieve credentials", "no EC2 IMDS role found", "InvalidClientTokenId"},
		msgSuffix:   "AWS credentials unavailable",
		remediation: "Refresh your credentials (aws sso login, aws configure) or select another profile with aws.profile / AWS_PROFILE.",
	},
	{
		anyPatterns: []string{"AccessDenied", "not authorized", "UnauthorizedOperation"},
		msgSuffix:   "permission denied",
		remediation: "The caller needs imagebuilder:*, iam:CreateRole, iam:AttachRolePolicy, iam:PutRolePolicy, iam:CreateInstanceProfile, iam:AddRoleToInstanceProfile, iam:PassRole, sns:CreateTopic, sns:Subscribe and ssm:PutParameter.",
	},
	{
		patterns:    []string{"ami-"},
		anyPatterns: []string{"not found", "does not exist", "InvalidAMIID"},
		msgSuffix:   "parent image not found",
		remediation: "AMI IDs are region specific. Check the parentImage entry for this region with 'aws ec2 describe-images --image-ids <ami-id> --region <region>'.",
	},
	{
		anyPatterns: []string{"InstanceProfile", "instance profile"},
		msgSuffix:   "instance profile error",
		remediation: "New IAM instance profiles can take a minute to become visible to Image Builder. Re-run apply; existing resources are reused.",
	},
	{
		anyPatterns: []string{"SecurityGroup", "security group"},
		msgSuffix:   "security group error",
		remediation: "Verify aws.security_group_ids exist in the VPC of aws.subnet_id and in the target region.",
	},
	{
		anyPatterns: []string{"SubnetId", "subnet"},
		msgSuffix:   "subnet configuration error",
		remediation: "Verify aws.subnet_id exists in the target region and has outbound internet or VPC endpoint access for SSM.",
	},
	{
		anyPatterns: []string{"SemanticVersion", "semantic version"},
		msgSuffix:   "version error",
		remediation: "Use a MAJOR.MINOR.PATCH version. Components and recipes are immutable, so bump the version when their content changes.",
	},
	{
		anyPatterns: []string{"Email address", "Invalid parameter: Endpoint"},
		msgSuffix:   "invalid notification endpoint",
		remediation: "Fix the address in buildCompletionNotificationEmails.",
	},
	{
		anyPatterns: []string{"LimitExceeded", "ServiceQuotaExceeded", "Throttling", "quota"},
		msgSuffix:   "AWS service quota exceeded",
		remediation: "Check Image Builder, IAM and SNS quotas in the Service Quotas console, clean up unused resources or request an increase.",
	},
}

// WrapWithRemediation wraps err with context and, when a known pattern
// matches, a remediation hint.
func WrapWithRemediation(err error, context string) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	for _, pattern := range errorPatterns {
		if matchesPattern(errMsg, pattern) {
			return &ApplyError{
				Message:     fmt.Sprintf("%s: %s: %v", context, pattern.msgSuffix, err),
				Cause:       err,
				Remediation: pattern.remediation,
			}
		}
	}

	return fmt.Errorf("%s: %w", context, err)
}

func matchesPattern(errMsg string, p errorPattern) bool {
	for _, pat := range p.patterns {
		if !strings.Contains(errMsg, pat) {
			return false
		}
	}

	if len(p.anyPatterns) == 0 {
		return true
	}
	for _, pat := range p.anyPatterns {
		if strings.Contains(errMsg, pat) {
			return true
		}
	}
	return false
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// isAlreadyExists reports whether err means the resource exists already.
func isAlreadyExists(err error) bool {
	switch apiErrorCode(err) {
	case "ResourceAlreadyExistsException", "EntityAlreadyExists", "ParameterAlreadyExists":
		return true
	}
	return err != nil && strings.Contains(err.Error(), "already exists")
}

// isNotFound reports whether err is a ResourceNotFoundException.
func isNotFound(err error) bool {
	return apiErrorCode(err) == "ResourceNotFoundException"
}

// isImageNotFound reports whether err means an AMI ID is unknown.
func isImageNotFound(err error) bool {
	code := apiErrorCode(err)
	return code == "InvalidAMIID.NotFound" || code == "InvalidAMIID.Malformed" || code == "InvalidAMIID.Unavailable"
}

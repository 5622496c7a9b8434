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

// Package pipeline loads and validates pipeline configuration documents.
//
// A document carries two top-level values: the list of pipeline records
// under ImageBuilderPipelineConfigurations and an optional list of
// notification emails under buildCompletionNotificationEmails. Records are
// kept untyped until the Validator has checked them so every problem in the
// document can be reported in a single pass.
package pipeline

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Top-level document keys.
const (
	PipelinesKey = "ImageBuilderPipelineConfigurations"
	EmailsKey    = "buildCompletionNotificationEmails"
)

// DefaultStorageSizeGiB is the root volume size used when storageSize is unset.
const DefaultStorageSizeGiB = 128

// schemaDraft is the newest draft gojsonschema understands.
const schemaDraft = "http://json-schema.org/draft-07/schema#"

// ParentImage is the per-region parent image of a pipeline.
type ParentImage struct {
	AmiID string `json:"amiID" yaml:"amiID" jsonschema_description:"Parent AMI ID in this region"`
}

// Record is the wire form of one pipeline configuration entry.
type Record struct {
	Name                string                 `json:"name" jsonschema_description:"Unique pipeline name"`
	Components          []string               `json:"components,omitempty" jsonschema_description:"Ordered component references: managed component ARN, directory or file"`
	Dir                 string                 `json:"dir,omitempty" jsonschema_description:"Legacy single component directory"`
	InstanceProfileName string                 `json:"instanceProfileName" jsonschema_description:"Instance profile name; the region is appended"`
	CfnImageRecipeName  string                 `json:"cfnImageRecipeName" jsonschema_description:"Image recipe name"`
	Version             string                 `json:"version" jsonschema_description:"Recipe and component version (MAJOR.MINOR.PATCH)"`
	ParentImage         map[string]ParentImage `json:"parentImage" jsonschema_description:"Parent image keyed by region"`
	StorageSize         int                    `json:"storageSize,omitempty" jsonschema:"minimum=1,maximum=16000" jsonschema_description:"Root volume size in GiB"`
	Debug               bool                   `json:"debug,omitempty" jsonschema_description:"Keep failed build instances and volumes for inspection"`
}

// documentSchema only exists to reflect the schema of a whole document.
type documentSchema struct {
	ImageBuilderPipelineConfigurations []Record `json:"ImageBuilderPipelineConfigurations" jsonschema:"required"`
	BuildCompletionNotificationEmails  []string `json:"buildCompletionNotificationEmails,omitempty"`
}

// Configuration is a validated pipeline configuration.
type Configuration struct {
	Name                string
	ComponentReferences []string
	InstanceProfileName string
	RecipeName          string
	Version             string
	ParentImage         map[string]ParentImage
	StorageSizeGiB      int
	DebugMode           bool
	// BaseDir is the directory relative component references resolve against.
	BaseDir string
}

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		DoNotReference:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		Anonymous:                  true,
	}
}

// RecordSchema returns the JSON schema of a single pipeline record. It
// checks value types only; required fields are enforced by the Validator.
func RecordSchema() *jsonschema.Schema {
	s := newReflector().Reflect(&Record{})
	s.Version = schemaDraft
	s.Title = "imagepipe pipeline configuration"
	return s
}

// DocumentSchema returns the JSON schema of a whole pipeline document.
func DocumentSchema() *jsonschema.Schema {
	s := newReflector().Reflect(&documentSchema{})
	s.Version = schemaDraft
	s.Title = "imagepipe pipeline document"
	return s
}

// knownKeys lists the record keys in declaration order.
func knownKeys() []string {
	s := RecordSchema()
	keys := make([]string, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// decodeRecord converts an untyped, schema-checked entry into a Record.
func decodeRecord(entry map[string]interface{}) (Record, error) {
	var rec Record
	data, err := json.Marshal(entry)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(data, &rec)
	return rec, err
}

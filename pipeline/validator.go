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

package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cowdogmoo/imagepipe/diagnostics"
	"github.com/cowdogmoo/imagepipe/errors"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/xeipuuv/gojsonschema"
)

// Result is the outcome of Validate. Configurations is only populated when
// Diagnostics holds no errors.
type Result struct {
	Configurations []Configuration
	Diagnostics    diagnostics.List
}

// Validator checks raw pipeline records and converts them to Configurations.
type Validator struct {
	schema    *gojsonschema.Schema
	knownKeys []string
	baseDir   string
}

// NewValidator compiles the record schema. baseDir is recorded on every
// returned Configuration.
func NewValidator(baseDir string) (*Validator, error) {
	raw, err := json.Marshal(RecordSchema())
	if err != nil {
		return nil, errors.Wrap("marshal record schema", "", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.Wrap("compile record schema", "", err)
	}

	return &Validator{schema: schema, knownKeys: knownKeys(), baseDir: baseDir}, nil
}

// Validate checks the value of ImageBuilderPipelineConfigurations. A
// missing, non-list or empty value is a global error and stops validation;
// otherwise every entry is checked and each invalid entry yields exactly one
// error listing all of its problems. The empty string is accepted as
// "no pipelines".
func (v *Validator) Validate(raw interface{}) Result {
	var res Result

	entries, ok, diag := topLevelEntries(raw)
	if diag != nil {
		res.Diagnostics = append(res.Diagnostics, *diag)
		return res
	}
	if !ok {
		return res
	}

	configs := make([]Configuration, 0, len(entries))
	firstSeen := make(map[string]int)

	for i, entry := range entries {
		cfg, diags := v.validateEntry(i, entry, firstSeen)
		res.Diagnostics = append(res.Diagnostics, diags...)
		if cfg != nil {
			configs = append(configs, *cfg)
		}
	}

	if !res.Diagnostics.HasErrors() {
		res.Configurations = configs
	}
	return res
}

// topLevelEntries returns ok=false without a diagnostic for the empty string.
func topLevelEntries(raw interface{}) ([]interface{}, bool, *diagnostics.Diagnostic) {
	var entries []interface{}

	switch val := raw.(type) {
	case nil:
		return nil, false, globalError(diagnostics.CodeMissing, fmt.Sprintf(
			"Mandatory configuration %s is missing, at least one pipeline configuration is required", PipelinesKey))
	case string:
		if val == "" {
			return nil, false, nil
		}
		return nil, false, notList(raw)
	case []interface{}:
		entries = val
	case []map[string]interface{}:
		entries = make([]interface{}, len(val))
		for i := range val {
			entries[i] = val[i]
		}
	default:
		return nil, false, notList(raw)
	}

	if len(entries) == 0 {
		return nil, false, globalError(diagnostics.CodeEmptyList, fmt.Sprintf(
			"%s requires at least one pipeline configuration, found 0", PipelinesKey))
	}

	return entries, true, nil
}

func notList(raw interface{}) *diagnostics.Diagnostic {
	return globalError(diagnostics.CodeNotList, fmt.Sprintf("%s must be an array, found %T", PipelinesKey, raw))
}

func globalError(code diagnostics.Code, message string) *diagnostics.Diagnostic {
	d := diagnostics.GlobalError(code, message).WithField(PipelinesKey)
	return &d
}

// entryProblems accumulates the problems of one entry.
type entryProblems struct {
	fields   []string
	messages []string
}

func (p *entryProblems) add(field, format string, args ...interface{}) {
	p.fields = append(p.fields, field)
	p.messages = append(p.messages, fmt.Sprintf(format, args...))
}

func (v *Validator) validateEntry(index int, raw interface{}, firstSeen map[string]int) (*Configuration, diagnostics.List) {
	label := fmt.Sprintf("entry[%d]", index)

	entry, ok := raw.(map[string]interface{})
	if !ok {
		return nil, diagnostics.List{diagnostics.PipelineError(label, diagnostics.CodeInvalidEntry,
			fmt.Sprintf("pipeline configuration %s must be a mapping, found %T", label, raw))}
	}

	if name, ok := entry["name"].(string); ok && name != "" {
		label = name
	}

	var problems entryProblems
	var warnings diagnostics.List

	v.checkShape(entry, &problems)
	checkRequired(entry, &problems)

	if name, ok := entry["name"].(string); ok && name != "" {
		if first, dup := firstSeen[name]; dup {
			problems.add("name", "duplicate pipeline name %q, first defined by entry[%d]", name, first)
		} else {
			firstSeen[name] = index
		}
	}

	warnings = append(warnings, v.checkKeys(label, entry)...)

	if len(problems.messages) > 0 {
		d := diagnostics.PipelineError(label, diagnostics.CodeInvalidEntry, fmt.Sprintf(
			"pipeline configuration %s is invalid: %s", label, strings.Join(problems.messages, "; "))).
			WithField(strings.Join(dedupe(problems.fields), ","))
		return nil, append(diagnostics.List{d}, warnings...)
	}

	rec, err := decodeRecord(entry)
	if err != nil {
		d := diagnostics.PipelineError(label, diagnostics.CodeInvalidEntry,
			fmt.Sprintf("pipeline configuration %s could not be decoded: %v", label, err))
		return nil, append(diagnostics.List{d}, warnings...)
	}

	if _, err := semver.StrictNewVersion(rec.Version); err != nil {
		warnings = append(warnings, diagnostics.PipelineWarning(rec.Name, diagnostics.CodeVersionFormat, fmt.Sprintf(
			"version %q is not MAJOR.MINOR.PATCH; Image Builder will reject it", rec.Version)).
			WithField("version"))
	}

	cfg := toConfiguration(rec, v.baseDir)
	return &cfg, warnings
}

// checkShape validates value types against the reflected record schema.
func (v *Validator) checkShape(entry map[string]interface{}, problems *entryProblems) {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(entry))
	if err != nil {
		problems.add("", "entry is not valid JSON data: %v", err)
		return
	}
	for _, re := range result.Errors() {
		problems.add(re.Field(), "%s: %s", re.Field(), re.Description())
	}
}

// checkRequired treats absent and empty values alike.
func checkRequired(entry map[string]interface{}, problems *entryProblems) {
	var missing []string

	for _, key := range []string{"name"} {
		if isEmpty(entry[key]) {
			missing = append(missing, key)
		}
	}

	if isEmpty(entry["components"]) && isEmpty(entry["dir"]) {
		missing = append(missing, "components")
	}

	for _, key := range []string{"instanceProfileName", "version", "cfnImageRecipeName", "parentImage"} {
		if isEmpty(entry[key]) {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		for _, key := range missing {
			problems.fields = append(problems.fields, key)
		}
		problems.messages = append(problems.messages,
			"missing required values: "+strings.Join(missing, ", "))
	}

	if refs, ok := entry["components"].([]interface{}); ok {
		for i, ref := range refs {
			if s, ok := ref.(string); ok && strings.TrimSpace(s) == "" {
				problems.add("components", "components[%d] is empty", i)
			}
		}
	}

	if images, ok := entry["parentImage"].(map[string]interface{}); ok {
		regions := make([]string, 0, len(images))
		for region := range images {
			regions = append(regions, region)
		}
		sort.Strings(regions)
		for _, region := range regions {
			image, ok := images[region].(map[string]interface{})
			if !ok {
				continue
			}
			if isEmpty(image["amiID"]) {
				problems.add("parentImage", "parentImage.%s.amiID is missing", region)
			}
		}
	}
}

// checkKeys warns about unknown keys that look like typos of known ones and
// about records that set both components and the legacy dir.
func (v *Validator) checkKeys(label string, entry map[string]interface{}) diagnostics.List {
	var warnings diagnostics.List

	keys := make([]string, 0, len(entry))
	for key := range entry {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if contains(v.knownKeys, key) {
			continue
		}
		if suggestion := suggestKey(key, v.knownKeys); suggestion != "" {
			warnings = append(warnings, diagnostics.PipelineWarning(label, diagnostics.CodeUnknownKey,
				fmt.Sprintf("unknown key %q is ignored, did you mean %q?", key, suggestion)).
				WithField(key))
		}
	}

	if !isEmpty(entry["components"]) && !isEmpty(entry["dir"]) {
		warnings = append(warnings, diagnostics.PipelineWarning(label, diagnostics.CodeUnknownKey,
			"both components and dir are set; dir is ignored").
			WithField("dir"))
	}

	return warnings
}

// suggestKey returns the known key closest to key, or "" when none is close.
func suggestKey(key string, known []string) string {
	lowerKey := strings.ToLower(key)
	best, bestDistance := "", -1

	for _, candidate := range known {
		lowerCandidate := strings.ToLower(candidate)
		distance := fuzzy.LevenshteinDistance(lowerKey, lowerCandidate)

		related := fuzzy.MatchFold(key, candidate) || fuzzy.MatchFold(candidate, key) || distance <= 2
		if !related || distance > len(candidate)/2 {
			continue
		}
		if bestDistance < 0 || distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}

	return best
}

func toConfiguration(rec Record, baseDir string) Configuration {
	refs := rec.Components
	if len(refs) == 0 && rec.Dir != "" {
		refs = []string{rec.Dir}
	}

	storage := rec.StorageSize
	if storage == 0 {
		storage = DefaultStorageSizeGiB
	}

	return Configuration{
		Name:                rec.Name,
		ComponentReferences: refs,
		InstanceProfileName: rec.InstanceProfileName,
		RecipeName:          rec.CfnImageRecipeName,
		Version:             rec.Version,
		ParentImage:         rec.ParentImage,
		StorageSizeGiB:      storage,
		DebugMode:           rec.Debug,
		BaseDir:             baseDir,
	}
}

func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []interface{}:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	default:
		return false
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

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

// Package diagnostics collects the structured errors and warnings produced
// while validating pipeline configurations and building resource plans.
//
// Diagnostics are values, not Go errors: planning keeps going after a
// problem is found so the user sees every issue in one pass, and callers
// decide from the accumulated list whether to stop.
package diagnostics

import (
	"fmt"
	"strings"
	"sync"
)

// Severity distinguishes blocking problems from advisory ones.
type Severity int

const (
	// SeverityError blocks planning of the affected scope.
	SeverityError Severity = iota
	// SeverityWarning is reported but never blocks planning.
	SeverityWarning
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Scope tells whether a diagnostic concerns the whole run or one pipeline.
type Scope int

const (
	// ScopeGlobal diagnostics concern the top-level configuration.
	ScopeGlobal Scope = iota
	// ScopePipeline diagnostics concern a single named pipeline.
	ScopePipeline
)

// String returns the lowercase name of the scope.
func (s Scope) String() string {
	if s == ScopePipeline {
		return "pipeline"
	}
	return "global"
}

// MarshalText encodes the scope by name.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Code identifies the kind of problem.
type Code string

// Diagnostic codes.
const (
	CodeMissing             Code = "missing"
	CodeNotList             Code = "not_list"
	CodeEmptyList           Code = "empty_list"
	CodeInvalidEntry        Code = "invalid_entry"
	CodeUnresolvedComponent Code = "unresolved_component"
	CodeSkippedEntry        Code = "skipped_entry"
	CodeDuplicateComponent  Code = "duplicate_component"
	CodeNoComponents        Code = "no_components"
	CodeUnresolvedRegion    Code = "unresolved_region"
	CodeVersionFormat       Code = "version_format"
	CodeUnknownKey          Code = "unknown_key"
	CodeInvalidEmails       Code = "invalid_emails"
	CodeRecorderDisabled    Code = "recorder_disabled"
	CodeInvalidPlan         Code = "invalid_plan"
)

// Diagnostic is one error or warning with enough context to act on.
type Diagnostic struct {
	Scope     Scope    `json:"scope" yaml:"scope"`
	Pipeline  string   `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`
	Severity  Severity `json:"severity" yaml:"severity"`
	Code      Code     `json:"code" yaml:"code"`
	Field     string   `json:"field,omitempty" yaml:"field,omitempty"`
	Reference string   `json:"reference,omitempty" yaml:"reference,omitempty"`
	Message   string   `json:"message" yaml:"message"`
}

// GlobalError returns a fatal diagnostic for the whole run.
func GlobalError(code Code, message string) Diagnostic {
	return Diagnostic{Scope: ScopeGlobal, Severity: SeverityError, Code: code, Message: message}
}

// GlobalWarning returns a run-wide warning.
func GlobalWarning(code Code, message string) Diagnostic {
	return Diagnostic{Scope: ScopeGlobal, Severity: SeverityWarning, Code: code, Message: message}
}

// PipelineError returns a diagnostic that aborts planning of one pipeline.
func PipelineError(pipeline string, code Code, message string) Diagnostic {
	return Diagnostic{Scope: ScopePipeline, Pipeline: pipeline, Severity: SeverityError, Code: code, Message: message}
}

// PipelineWarning returns a non-blocking diagnostic for one pipeline.
func PipelineWarning(pipeline string, code Code, message string) Diagnostic {
	return Diagnostic{Scope: ScopePipeline, Pipeline: pipeline, Severity: SeverityWarning, Code: code, Message: message}
}

// WithField returns a copy of d naming the offending configuration field.
func (d Diagnostic) WithField(field string) Diagnostic {
	d.Field = field
	return d
}

// WithReference returns a copy of d naming the offending component reference.
func (d Diagnostic) WithReference(reference string) Diagnostic {
	d.Reference = reference
	return d
}

// IsError reports whether d has error severity.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// String renders d on one line, e.g.
// `error [pipeline demo] unresolved_component: ... (reference: dir/a.yaml)`.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Severity.String())
	if d.Scope == ScopePipeline && d.Pipeline != "" {
		fmt.Fprintf(&sb, " [pipeline %s]", d.Pipeline)
	}
	fmt.Fprintf(&sb, " %s: %s", d.Code, d.Message)

	var context []string
	if d.Field != "" {
		context = append(context, "field: "+d.Field)
	}
	if d.Reference != "" {
		context = append(context, "reference: "+d.Reference)
	}
	if len(context) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(context, ", "))
	}
	return sb.String()
}

// List is an ordered set of diagnostics.
type List []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.IsError() {
			return true
		}
	}
	return false
}

// HasGlobalErrors reports whether any error-severity diagnostic is global.
func (l List) HasGlobalErrors() bool {
	for _, d := range l {
		if d.IsError() && d.Scope == ScopeGlobal {
			return true
		}
	}
	return false
}

// Errors returns the error-severity diagnostics.
func (l List) Errors() List {
	return l.filter(func(d Diagnostic) bool { return d.IsError() })
}

// Warnings returns the warning-severity diagnostics.
func (l List) Warnings() List {
	return l.filter(func(d Diagnostic) bool { return !d.IsError() })
}

// ForPipeline returns the diagnostics scoped to the named pipeline.
func (l List) ForPipeline(name string) List {
	return l.filter(func(d Diagnostic) bool {
		return d.Scope == ScopePipeline && d.Pipeline == name
	})
}

func (l List) filter(keep func(Diagnostic) bool) List {
	var out List
	for _, d := range l {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// Err returns nil when l holds no errors, otherwise an error summarizing
// every error-severity diagnostic.
func (l List) Err() error {
	errs := l.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &Error{Diagnostics: errs}
}

// Error is the Go error form of a list of error-severity diagnostics.
type Error struct {
	Diagnostics List
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}
	lines := make([]string, 0, len(e.Diagnostics)+1)
	lines = append(lines, fmt.Sprintf("%d configuration errors:", len(e.Diagnostics)))
	for _, d := range e.Diagnostics {
		lines = append(lines, "  - "+d.String())
	}
	return strings.Join(lines, "\n")
}

// Collector accumulates diagnostics from concurrent planners.
type Collector struct {
	mu    sync.Mutex
	items List
}

// Add appends diagnostics.
func (c *Collector) Add(diags ...Diagnostic) {
	if len(diags) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, diags...)
}

// List returns a copy of everything collected so far.
func (c *Collector) List() List {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(List, len(c.items))
	copy(out, c.items)
	return out
}

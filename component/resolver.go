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

package component

import (
	"fmt"

	"github.com/cowdogmoo/imagepipe/diagnostics"
)

// Resolver resolves ordered reference lists.
type Resolver struct {
	classifier *Classifier
}

// NewResolver returns a resolver backed by classifier.
func NewResolver(classifier *Classifier) *Resolver {
	return &Resolver{classifier: classifier}
}

// Resolve classifies every reference in order and concatenates the
// resulting descriptors. An unresolved reference, including a file
// reference that yields no descriptor, adds one error and a skipped
// directory entry adds one warning; neither stops the remaining references
// from being resolved.
func (r *Resolver) Resolve(pipelineName string, references []string, baseDir string) ([]Descriptor, diagnostics.List) {
	var descriptors []Descriptor
	var diags diagnostics.List

	for _, ref := range references {
		match := r.classifier.Classify(ref, baseDir)

		if match.Kind == MatchNotFound {
			msg := "empty component reference"
			if match.Path != "" {
				msg = fmt.Sprintf("component reference %q not found: %s is not a managed component ARN, directory or file",
					ref, match.Path)
			}
			diags = append(diags, diagnostics.PipelineError(pipelineName, diagnostics.CodeUnresolvedComponent, msg).
				WithField("components").
				WithReference(ref))
			continue
		}

		if match.Kind == MatchFile && len(match.Descriptors) == 0 {
			reason := "no component could be read"
			if len(match.Skipped) > 0 {
				reason = match.Skipped[0].Reason
			}
			diags = append(diags, diagnostics.PipelineError(pipelineName, diagnostics.CodeUnresolvedComponent,
				fmt.Sprintf("component reference %q cannot be used: %s: %s", ref, match.Path, reason)).
				WithField("components").
				WithReference(ref))
			continue
		}

		for _, skipped := range match.Skipped {
			diags = append(diags, diagnostics.PipelineWarning(pipelineName, diagnostics.CodeSkippedEntry,
				fmt.Sprintf("skipping %s: %s", skipped.Path, skipped.Reason)).
				WithField("components").
				WithReference(ref))
		}

		descriptors = append(descriptors, match.Descriptors...)
	}

	return descriptors, diags
}

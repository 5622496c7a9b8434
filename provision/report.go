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

	"github.com/cowdogmoo/imagepipe/plan"
)

// Backend materializes a plan.
type Backend interface {
	Apply(ctx context.Context, p *plan.Plan) (*Report, error)
}

// Status is the outcome of applying one directive.
type Status string

// Directive outcomes.
const (
	StatusPlanned  Status = "planned"
	StatusCreated  Status = "created"
	StatusExisting Status = "existing"
	StatusStarted  Status = "started"
	StatusSkipped  Status = "skipped"
)

// AppliedResource records what happened to one directive. Handle is the
// ARN or name the resource is known by.
type AppliedResource struct {
	Identity string    `json:"identity" yaml:"identity"`
	Kind     plan.Kind `json:"kind" yaml:"kind"`
	Handle   string    `json:"handle,omitempty" yaml:"handle,omitempty"`
	Status   Status    `json:"status" yaml:"status"`
	Note     string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// PipelineReport lists the applied directives of one pipeline in order.
type PipelineReport struct {
	Name      string            `json:"name" yaml:"name"`
	Resources []AppliedResource `json:"resources" yaml:"resources"`
}

// Report summarizes an Apply run.
type Report struct {
	RunID     string           `json:"runId" yaml:"runId"`
	Region    string           `json:"region" yaml:"region"`
	Account   string           `json:"account,omitempty" yaml:"account,omitempty"`
	DryRun    bool             `json:"dryRun" yaml:"dryRun"`
	Pipelines []PipelineReport `json:"pipelines" yaml:"pipelines"`
}

// Count returns how many resources ended in status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, pr := range r.Pipelines {
		for _, res := range pr.Resources {
			if res.Status == status {
				n++
			}
		}
	}
	return n
}

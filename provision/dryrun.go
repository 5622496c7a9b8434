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
	"strings"

	"github.com/cowdogmoo/imagepipe/errors"
	"github.com/cowdogmoo/imagepipe/logging"
	"github.com/cowdogmoo/imagepipe/plan"
	"github.com/google/uuid"
)

// DryRunBackend logs every directive without calling AWS.
type DryRunBackend struct{}

// NewDryRunBackend returns a DryRunBackend.
func NewDryRunBackend() *DryRunBackend {
	return &DryRunBackend{}
}

// Apply implements Backend.
func (b *DryRunBackend) Apply(ctx context.Context, p *plan.Plan) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap("validate plan", "", err)
	}

	report := &Report{RunID: uuid.NewString(), Region: p.Region, Account: p.Account, DryRun: true}

	for _, pp := range p.Pipelines {
		pr := PipelineReport{Name: pp.Name}
		for _, d := range pp.Directives {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if len(d.DependsOn) > 0 {
				logging.InfoContext(ctx, "[dry-run] create %s %s after %s", d.Kind, d.Identity, strings.Join(d.DependsOn, ", "))
			} else {
				logging.InfoContext(ctx, "[dry-run] create %s %s", d.Kind, d.Identity)
			}
			pr.Resources = append(pr.Resources, AppliedResource{Identity: d.Identity, Kind: d.Kind, Status: StatusPlanned})
		}
		report.Pipelines = append(report.Pipelines, pr)
	}

	return report, nil
}

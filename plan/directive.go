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

// Package plan turns validated pipeline configurations into ordered
// resource-creation directives.
//
// A Plan holds one PipelinePlan per pipeline. Each PipelinePlan lists its
// directives in creation order; a directive only depends on directives
// declared before it in the same pipeline, so a backend can apply them
// front to back. Parameter fields ending in Ref hold the identity of another
// directive, which the backend replaces with that resource's ARN or name.
package plan

import (
	"fmt"
)

// Kind is the type of resource a directive creates.
type Kind string

// Directive kinds, in per-pipeline emission order.
const (
	KindInstanceProfile             Kind = "InstanceProfile"
	KindNotificationTopic           Kind = "NotificationTopic"
	KindAmiParameter                Kind = "AmiParameter"
	KindInfrastructureConfiguration Kind = "InfrastructureConfiguration"
	KindComponent                   Kind = "Component"
	KindImageRecipe                 Kind = "ImageRecipe"
	KindPipeline                    Kind = "Pipeline"
	KindBuildTriggerInvocation      Kind = "BuildTriggerInvocation"
	KindAmiRecorderSubscription     Kind = "AmiRecorderSubscription"
	KindEmailSubscription           Kind = "EmailSubscription"
)

// Parameters are the kind-specific inputs of a directive.
type Parameters interface {
	Kind() Kind
}

// Directive is one planned resource creation.
type Directive struct {
	Kind       Kind       `json:"kind" yaml:"kind"`
	Identity   string     `json:"identity" yaml:"identity"`
	DependsOn  []string   `json:"dependsOn" yaml:"dependsOn"`
	Parameters Parameters `json:"parameters" yaml:"parameters"`
}

// Identity builds the identity of a directive: <pipeline>/<kind>/<name>.
func Identity(pipelineName string, kind Kind, name string) string {
	return fmt.Sprintf("%s/%s/%s", pipelineName, kind, name)
}

// PipelinePlan is the ordered directive list of one pipeline.
type PipelinePlan struct {
	Name       string      `json:"name" yaml:"name"`
	Directives []Directive `json:"directives" yaml:"directives"`
}

// Find returns the directive with the given identity.
func (p *PipelinePlan) Find(identity string) (Directive, bool) {
	for _, d := range p.Directives {
		if d.Identity == identity {
			return d, true
		}
	}
	return Directive{}, false
}

// OfKind returns the directives of the given kind in declared order.
func (p *PipelinePlan) OfKind(kind Kind) []Directive {
	var out []Directive
	for _, d := range p.Directives {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Validate checks that identities are unique and that every dependency
// names a directive declared earlier in the same pipeline.
func (p *PipelinePlan) Validate() error {
	declared := make(map[string]bool, len(p.Directives))
	for i, d := range p.Directives {
		if d.Parameters != nil && d.Parameters.Kind() != d.Kind {
			return fmt.Errorf("pipeline %s: directive %s has %s parameters", p.Name, d.Identity, d.Parameters.Kind())
		}
		for _, dep := range d.DependsOn {
			if !declared[dep] {
				return fmt.Errorf("pipeline %s: directive %d (%s) depends on %s, which is not declared before it",
					p.Name, i, d.Identity, dep)
			}
		}
		if declared[d.Identity] {
			return fmt.Errorf("pipeline %s: duplicate directive identity %s", p.Name, d.Identity)
		}
		declared[d.Identity] = true
	}
	return nil
}

// Plan is the full set of directives for one region and account.
type Plan struct {
	Region    string         `json:"region" yaml:"region"`
	Account   string         `json:"account,omitempty" yaml:"account,omitempty"`
	Pipelines []PipelinePlan `json:"pipelines" yaml:"pipelines"`
}

// Validate validates every pipeline plan.
func (p *Plan) Validate() error {
	seen := make(map[string]bool, len(p.Pipelines))
	for i := range p.Pipelines {
		pp := &p.Pipelines[i]
		if seen[pp.Name] {
			return fmt.Errorf("duplicate pipeline %s", pp.Name)
		}
		seen[pp.Name] = true
		if err := pp.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DirectiveCount returns the number of directives across all pipelines.
func (p *Plan) DirectiveCount() int {
	n := 0
	for _, pp := range p.Pipelines {
		n += len(pp.Directives)
	}
	return n
}

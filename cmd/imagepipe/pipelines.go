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

package main

import (
	"context"

	"github.com/cowdogmoo/imagepipe/component"
	"github.com/cowdogmoo/imagepipe/config"
	"github.com/cowdogmoo/imagepipe/diagnostics"
	"github.com/cowdogmoo/imagepipe/logging"
	"github.com/cowdogmoo/imagepipe/pipeline"
	"github.com/cowdogmoo/imagepipe/plan"
)

// loadedDocument is a pipeline document together with its validation result.
type loadedDocument struct {
	doc    *pipeline.Document
	result pipeline.Result
}

// loadAndValidate reads the document at path and validates its pipelines.
// baseDir overrides the directory component references resolve against.
func loadAndValidate(ctx context.Context, path, baseDir string) (*loadedDocument, error) {
	logging.InfoContext(ctx, "Loading pipeline document: %s", path)

	doc, err := pipeline.LoadDocument(appFs, path)
	if err != nil {
		return nil, err
	}
	if baseDir == "" {
		baseDir = doc.BaseDir()
	}

	validator, err := pipeline.NewValidator(baseDir)
	if err != nil {
		return nil, err
	}

	res := validator.Validate(doc.Pipelines)
	logging.DebugContext(ctx, "Validated %s: %d configurations, %d diagnostics",
		path, len(res.Configurations), len(res.Diagnostics))
	return &loadedDocument{doc: doc, result: res}, nil
}

// buildPlan plans every valid configuration of ld for target. The returned
// diagnostics include the validation diagnostics.
func buildPlan(ctx context.Context, cfg *config.Config, ld *loadedDocument, target plan.Target) (*plan.Plan, diagnostics.List, error) {
	diags := append(diagnostics.List{}, ld.result.Diagnostics...)
	if diags.HasErrors() {
		return nil, diags, nil
	}

	resolver := component.NewResolver(component.NewClassifier(appFs))
	builder := plan.NewBuilder(target, plan.OptionsFromConfig(cfg), resolver)

	p, planDiags, err := builder.Build(ctx, ld.result.Configurations, ld.doc.Emails)
	if err != nil {
		return nil, diags, err
	}
	return p, append(diags, planDiags...), nil
}

// logDiagnostics writes every diagnostic to the log at its severity.
func logDiagnostics(ctx context.Context, diags diagnostics.List) {
	for _, d := range diags {
		if d.IsError() {
			logging.ErrorContext(ctx, "%s", d.String())
			continue
		}
		logging.WarnContext(ctx, "%s", d.String())
	}
}

// resolveTarget picks the region and account from flags and config.
func resolveTarget(cfg *config.Config, account string) plan.Target {
	if account == "" {
		account = cfg.AWS.Account
	}
	return plan.Target{Region: cfg.ResolveRegion(), Account: account}
}

// configOrDefault returns the config from context or an empty default.
func configOrDefault(ctx context.Context, cfg *config.Config) *config.Config {
	if cfg != nil {
		return cfg
	}
	logging.DebugContext(ctx, "No configuration in context, using empty defaults")
	return &config.Config{}
}

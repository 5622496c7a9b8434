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
	"github.com/cowdogmoo/imagepipe/plan"
	"github.com/spf13/cobra"
)

type planOptions struct {
	file    string
	output  string
	account string
	baseDir string
}

var planOpts planOptions

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the resources each pipeline would create",
	Long: `Plan validates the document, resolves component references and
prints the ordered resource directives of every pipeline together with all
diagnostics. Nothing is created.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planOpts.file, "file", "f", "", "Pipeline document (YAML, JSON or HCL)")
	planCmd.Flags().StringVarP(&planOpts.output, "output", "o", plan.FormatText, "Output format (text, json, yaml)")
	planCmd.Flags().StringVar(&planOpts.account, "account", "", "AWS account ID (default from aws.account or CDK_DEFAULT_ACCOUNT)")
	planCmd.Flags().StringVar(&planOpts.baseDir, "base-dir", "", "Directory component references resolve against (default: the document's directory)")
	_ = planCmd.MarkFlagRequired("file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configOrDefault(ctx, configFromContext(cmd))

	ld, err := loadAndValidate(ctx, planOpts.file, planOpts.baseDir)
	if err != nil {
		return err
	}

	p, diags, err := buildPlan(ctx, cfg, ld, resolveTarget(cfg, planOpts.account))
	if err != nil {
		return err
	}

	if err := plan.Render(cmd.OutOrStdout(), planOpts.output, p, diags); err != nil {
		return err
	}
	if diags.HasErrors() {
		return diags.Err()
	}
	return nil
}

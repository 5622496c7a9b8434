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
	"encoding/json"
	"fmt"

	"github.com/cowdogmoo/imagepipe/logging"
	"github.com/cowdogmoo/imagepipe/plan"
	"github.com/cowdogmoo/imagepipe/provision"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type applyOptions struct {
	file         string
	output       string
	account      string
	baseDir      string
	dryRun       bool
	verifyImages bool
}

var applyOpts applyOptions

// newAWSClients is replaced in tests.
var newAWSClients = provision.NewAWSClients

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create the planned resources in AWS",
	Long: `Apply plans the document like plan does and creates every directive
in AWS. Pipelines are applied in parallel and resources that already exist
are reused. Use --dry-run to log the directives without calling AWS.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyOpts.file, "file", "f", "", "Pipeline document (YAML, JSON or HCL)")
	applyCmd.Flags().StringVarP(&applyOpts.output, "output", "o", plan.FormatText, "Report format (text, json, yaml)")
	applyCmd.Flags().StringVar(&applyOpts.account, "account", "", "AWS account ID (default: looked up with STS)")
	applyCmd.Flags().StringVar(&applyOpts.baseDir, "base-dir", "", "Directory component references resolve against (default: the document's directory)")
	applyCmd.Flags().BoolVar(&applyOpts.dryRun, "dry-run", false, "Log the directives without creating anything")
	applyCmd.Flags().BoolVar(&applyOpts.verifyImages, "verify-images", false, "Check that every parent AMI exists before creating resources")
	_ = applyCmd.MarkFlagRequired("file")
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configOrDefault(ctx, configFromContext(cmd))

	ld, err := loadAndValidate(ctx, applyOpts.file, applyOpts.baseDir)
	if err != nil {
		return err
	}
	if ld.result.Diagnostics.HasErrors() {
		logDiagnostics(ctx, ld.result.Diagnostics)
		return ld.result.Diagnostics.Err()
	}

	target := resolveTarget(cfg, applyOpts.account)

	var backend provision.Backend
	if applyOpts.dryRun {
		backend = provision.NewDryRunBackend()
	} else {
		clients, err := newAWSClients(ctx, provision.ClientConfig{
			Region:          target.Region,
			Profile:         cfg.AWS.Profile,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			SessionToken:    cfg.AWS.SessionToken,
		})
		if err != nil {
			return err
		}
		if target.Region == "" {
			target.Region = clients.GetRegion()
		}
		if target.Account == "" {
			account, err := clients.AccountID(ctx)
			if err != nil {
				return err
			}
			target.Account = account
		}
		backend = provision.NewAWSBackend(clients, provision.AWSOptions{
			Concurrency:  plan.OptionsFromConfig(cfg).Concurrency,
			VerifyImages: applyOpts.verifyImages,
		})
	}

	p, diags, err := buildPlan(ctx, cfg, ld, target)
	if err != nil {
		return err
	}
	logDiagnostics(ctx, diags)
	if p == nil || (len(p.Pipelines) == 0 && diags.HasErrors()) {
		return diags.Err()
	}
	if diags.HasErrors() {
		logging.WarnContext(ctx, "Applying %d planned pipelines; pipelines with errors are left out", len(p.Pipelines))
	}

	report, err := backend.Apply(ctx, p)
	if report != nil {
		if renderErr := renderReport(cmd, applyOpts.output, report); renderErr != nil {
			logging.ErrorContext(ctx, renderErr)
		}
	}
	if err != nil {
		return err
	}
	return diags.Err()
}

func renderReport(cmd *cobra.Command, format string, report *provision.Report) error {
	w := cmd.OutOrStdout()
	switch format {
	case plan.FormatText, "":
		mode := "Applied"
		if report.DryRun {
			mode = "Planned (dry run)"
		}
		fmt.Fprintf(w, "%s %d pipelines in %s, run %s\n", mode, len(report.Pipelines), report.Region, report.RunID)
		for _, pr := range report.Pipelines {
			fmt.Fprintf(w, "\npipeline %s\n", pr.Name)
			for _, res := range pr.Resources {
				line := fmt.Sprintf("  %-8s %-28s %s", res.Status, res.Kind, res.Identity)
				if res.Handle != "" {
					line += " -> " + res.Handle
				}
				if res.Note != "" {
					line += " (" + res.Note + ")"
				}
				fmt.Fprintln(w, line)
			}
		}
		_, err := fmt.Fprintf(w, "\ncreated %d, existing %d, started %d, skipped %d\n",
			report.Count(provision.StatusCreated), report.Count(provision.StatusExisting),
			report.Count(provision.StatusStarted), report.Count(provision.StatusSkipped))
		return err
	case plan.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case plan.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

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
	"github.com/cowdogmoo/imagepipe/logging"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	file    string
	baseDir string
}

var validateOpts validateOptions

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a pipeline document",
	Long: `Validate checks every pipeline configuration in the document and
reports all problems in one pass. It does not resolve components or contact
AWS; use plan for that.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateOpts.file, "file", "f", "", "Pipeline document (YAML, JSON or HCL)")
	validateCmd.Flags().StringVar(&validateOpts.baseDir, "base-dir", "", "Directory component references resolve against (default: the document's directory)")
	_ = validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ld, err := loadAndValidate(ctx, validateOpts.file, validateOpts.baseDir)
	if err != nil {
		return err
	}

	diags := ld.result.Diagnostics
	logDiagnostics(ctx, diags)
	if diags.HasErrors() {
		return diags.Err()
	}

	logging.InfoContext(ctx, "%d pipeline configurations are valid (%d warnings)",
		len(ld.result.Configurations), len(diags.Warnings()))
	return nil
}

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

package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cowdogmoo/imagepipe/diagnostics"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// document is the serialized form of a plan run.
type document struct {
	Plan        *Plan            `json:"plan" yaml:"plan"`
	Diagnostics diagnostics.List `json:"diagnostics" yaml:"diagnostics"`
}

// Render writes p and diags to w in the given format. p may be nil when
// planning stopped on a global error.
func Render(w io.Writer, format string, p *Plan, diags diagnostics.List) error {
	switch format {
	case FormatText, "":
		return renderText(w, p, diags)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document{Plan: p, Diagnostics: nonNil(diags)})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Plan: p, Diagnostics: nonNil(diags)}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (want %s, %s or %s)", format, FormatText, FormatJSON, FormatYAML)
	}
}

func nonNil(diags diagnostics.List) diagnostics.List {
	if diags == nil {
		return diagnostics.List{}
	}
	return diags
}

func renderText(w io.Writer, p *Plan, diags diagnostics.List) error {
	var sb strings.Builder

	heading := color.New(color.Bold).SprintFunc()
	kind := color.New(color.FgCyan).SprintFunc()
	faint := color.New(color.FgHiBlack).SprintFunc()

	if p != nil {
		target := p.Region
		if p.Account != "" {
			target = fmt.Sprintf("%s (account %s)", p.Region, p.Account)
		}
		fmt.Fprintf(&sb, "%s %s: %d pipelines, %d directives\n",
			heading("Plan for"), target, len(p.Pipelines), p.DirectiveCount())

		for _, pp := range p.Pipelines {
			fmt.Fprintf(&sb, "\n%s %s\n", heading("pipeline"), pp.Name)
			for i, d := range pp.Directives {
				fmt.Fprintf(&sb, "  %2d. %-28s %s\n", i+1, kind(string(d.Kind)), d.Identity)
				if len(d.DependsOn) > 0 {
					fmt.Fprintf(&sb, "      %s %s\n", faint("after"), strings.Join(d.DependsOn, ", "))
				}
			}
		}
	}

	if len(diags) > 0 {
		errStyle := color.New(color.FgRed).SprintFunc()
		warnStyle := color.New(color.FgYellow).SprintFunc()

		fmt.Fprintf(&sb, "\n%s\n", heading("Diagnostics"))
		for _, d := range diags {
			style := warnStyle
			if d.IsError() {
				style = errStyle
			}
			fmt.Fprintf(&sb, "  %s\n", style(d.String()))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

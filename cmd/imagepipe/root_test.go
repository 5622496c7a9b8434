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
	"strings"
	"testing"

	"github.com/cowdogmoo/imagepipe/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestGetCommandPath(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "imagepipe"}
	child := &cobra.Command{Use: "plan"}
	parent := &cobra.Command{Use: "group"}
	nested := &cobra.Command{Use: "nested"}

	root.AddCommand(child)
	root.AddCommand(parent)
	parent.AddCommand(nested)

	tests := []struct {
		name string
		cmd  *cobra.Command
		want string
	}{
		{"root returns empty", root, ""},
		{"child returns name", child, "plan"},
		{"nested returns dotted path", nested, "group.nested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := getCommandPath(tt.cmd); got != tt.want {
				t.Errorf("getCommandPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigFromContext(t *testing.T) {
	t.Parallel()

	t.Run("no config in context", func(t *testing.T) {
		t.Parallel()
		cmd := &cobra.Command{Use: "test"}
		cmd.SetContext(context.Background())
		if got := configFromContext(cmd); got != nil {
			t.Errorf("configFromContext() = %v, want nil", got)
		}
	})

	t.Run("config in context", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{}
		cfg.AWS.Region = "eu-west-1"
		cmd := &cobra.Command{Use: "test"}
		cmd.SetContext(context.WithValue(context.Background(), configKey, cfg))
		got := configFromContext(cmd)
		if got == nil {
			t.Fatal("configFromContext() returned nil, want config")
		}
		if got.AWS.Region != "eu-west-1" {
			t.Errorf("config.AWS.Region = %q, want %q", got.AWS.Region, "eu-west-1")
		}
	})
}

func TestBindFlagsToViper(t *testing.T) {
	t.Parallel()

	v := viper.New()
	cmd := &cobra.Command{Use: "plan"}
	cmd.Flags().String("base-dir", ".", "base directory")

	BindFlagsToViper(v, cmd, "plan")

	_ = cmd.Flags().Set("base-dir", "/srv/pipelines")
	if got := v.GetString("plan.base_dir"); got != "/srv/pipelines" {
		t.Errorf("viper key plan.base_dir = %q, want %q", got, "/srv/pipelines")
	}
}

func TestRootCommand(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name            string
		args            []string
		wantErr         bool
		wantErrContains string
		wantContains    string
	}{
		{
			name:         "help output",
			args:         []string{"--help"},
			wantContains: "EC2 Image Builder",
		},
		{
			name:            "unknown flag",
			args:            []string{"--unknown"},
			wantErr:         true,
			wantErrContains: "unknown flag",
		},
		{
			name:            "plan requires a file",
			args:            []string{"plan"},
			wantErr:         true,
			wantErrContains: "file",
		},
		{
			name:            "missing config file",
			args:            []string{"--config", "/does/not/exist.yaml", "version"},
			wantErr:         true,
			wantErrContains: "failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runRoot(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErrContains) {
					t.Errorf("error %q missing %q", err.Error(), tt.wantErrContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !strings.Contains(stdout, tt.wantContains) {
				t.Errorf("output missing %q", tt.wantContains)
			}
		})
	}
}

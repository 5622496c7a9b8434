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
	"bytes"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const demoDocument = `ImageBuilderPipelineConfigurations:
  - name: demo
    components:
      - components
      - arn:aws:imagebuilder:us-east-1:aws:component/update-linux/1.0.2/1
    instanceProfileName: imagebuilder
    cfnImageRecipeName: demo-recipe
    version: 1.0.0
    parentImage:
      us-east-1:
        amiID: ami-123
buildCompletionNotificationEmails:
  - ops@example.com
`

// isolateEnv points every config search path at an empty temp directory.
func isolateEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("AWS_CONFIG_FILE", home+"/aws-config")
	for _, key := range []string{"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_PROFILE", "CDK_DEFAULT_ACCOUNT",
		"IMAGEPIPE_AWS_REGION", "IMAGEPIPE_AWS_RECORDER_FUNCTION_ARN"} {
		t.Setenv(key, "")
	}
	t.Chdir(home)
}

// useMemFs swaps appFs for an in-memory filesystem holding files.
func useMemFs(t *testing.T, files map[string]string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	old := appFs
	appFs = fs
	t.Cleanup(func() { appFs = old })
}

// demoFiles is a document with one inline component directory.
func demoFiles() map[string]string {
	return map[string]string{
		"/work/pipelines.yaml":           demoDocument,
		"/work/components/install.yml":   "name: install\nschemaVersion: 1.0\n",
		"/work/components/configure.yml": "name: configure\nschemaVersion: 1.0\n",
	}
}

// runRoot executes the root command with args and returns stdout, stderr
// and the error.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	resetFlags(rootCmd)

	t.Cleanup(func() {
		rootCmd.SetOut(os.Stdout)
		rootCmd.SetErr(os.Stderr)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag of cmd and its subcommands to its default
// so one Execute does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

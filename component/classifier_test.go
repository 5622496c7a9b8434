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

package component

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingOpenFs refuses to open the listed paths.
type failingOpenFs struct {
	afero.Fs
	denied map[string]bool
}

func (f *failingOpenFs) Open(name string) (afero.File, error) {
	if f.denied[name] {
		return nil, &os.PathError{Op: "open", Path: name, Err: errors.New("permission denied")}
	}
	return f.Fs.Open(name)
}

// pipeFs reports the listed paths as named pipes and fails any read of them.
type pipeFs struct {
	afero.Fs
	pipes map[string]bool
}

type pipeInfo struct{ os.FileInfo }

func (pipeInfo) Mode() os.FileMode { return os.ModeNamedPipe | 0o644 }

func (f *pipeFs) Stat(name string) (os.FileInfo, error) {
	info, err := f.Fs.Stat(name)
	if err != nil || !f.pipes[name] {
		return info, err
	}
	return pipeInfo{info}, nil
}

func (f *pipeFs) Open(name string) (afero.File, error) {
	if f.pipes[name] {
		return nil, errors.New("read of a named pipe")
	}
	return f.Fs.Open(name)
}

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func TestClassifyManaged(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		wantName  string
	}{
		{
			name:      "aws partition",
			reference: "arn:aws:imagebuilder:us-east-1:aws:component/update-linux/1.0.2/1",
			wantName:  "update-linux",
		},
		{
			name:      "china partition",
			reference: "arn:aws-cn:imagebuilder:cn-north-1:aws:component/amazon-cloudwatch-agent-linux/x.x.x",
			wantName:  "amazon-cloudwatch-agent-linux",
		},
		{
			name:      "govcloud partition",
			reference: "arn:aws-us-gov:imagebuilder:us-gov-west-1:aws:component/aws-cli-version-2-linux/1.0.0/1",
			wantName:  "aws-cli-version-2-linux",
		},
		{
			name:      "iso-b partition with empty region",
			reference: "arn:aws-iso-b:imagebuilder::aws:component/stig_build/1.0.0",
			wantName:  "stig_build",
		},
	}

	fs := afero.NewMemMapFs()
	c := NewClassifier(fs)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := c.Classify(tt.reference, "/does/not/matter")

			assert.Equal(t, MatchManaged, match.Kind)
			require.Len(t, match.Descriptors, 1)
			desc := match.Descriptors[0]
			assert.Equal(t, tt.wantName, desc.Name)
			assert.Equal(t, tt.reference, desc.ManagedIdentifier)
			assert.Equal(t, OriginManaged, desc.Origin)
			assert.Empty(t, desc.Content)
			assert.True(t, desc.IsManaged())
		})
	}
}

func TestClassifyNotManaged(t *testing.T) {
	references := []string{
		"arn:aws:imagebuilder:us-east-1:123456789012:component/mine/1.0.0/1",
		"arn:aws:imagebuilder:us-east-1:aws:image-recipe/foo/1.0.0",
		"arn:aws-foo:imagebuilder:us-east-1:aws:component/foo/1.0.0",
		"ARN:aws:imagebuilder:us-east-1:aws:component/foo/1.0.0",
	}

	c := NewClassifier(afero.NewMemMapFs())
	for _, ref := range references {
		t.Run(ref, func(t *testing.T) {
			assert.False(t, IsManagedIdentifier(ref))
			assert.Equal(t, MatchNotFound, c.Classify(ref, "").Kind)
		})
	}
}

func TestClassifyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/cfg/components/b.sh":          "echo b\n",
		"/cfg/components/a.yaml":        "name: a\n",
		"/cfg/components/c.v2.yaml":     "name: c\n",
		"/cfg/components/nested/d.yaml": "ignored",
	})

	match := NewClassifier(fs).Classify("components", "/cfg")

	assert.Equal(t, MatchDirectory, match.Kind)
	assert.Equal(t, "/cfg/components", match.Path)
	assert.Empty(t, match.Skipped)
	require.Len(t, match.Descriptors, 3)

	assert.Equal(t, "a", match.Descriptors[0].Name)
	assert.Equal(t, "name: a\n", match.Descriptors[0].Content)
	assert.Equal(t, "b", match.Descriptors[1].Name)
	assert.Equal(t, "echo b\n", match.Descriptors[1].Content)
	assert.Equal(t, "c", match.Descriptors[2].Name)

	for _, desc := range match.Descriptors {
		assert.Equal(t, OriginInline, desc.Origin)
		assert.Empty(t, desc.ManagedIdentifier)
		assert.Equal(t, "components", desc.Reference)
	}
}

func TestClassifyEmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/cfg/empty", 0o755))

	match := NewClassifier(fs).Classify("empty", "/cfg")

	assert.Equal(t, MatchDirectory, match.Kind)
	assert.Empty(t, match.Descriptors)
	assert.Empty(t, match.Skipped)
}

func TestClassifyDirectoryUnreadableEntry(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFiles(t, base, map[string]string{
		"/cfg/dir/a.yaml": "a",
		"/cfg/dir/b.yaml": "b",
	})
	fs := &failingOpenFs{Fs: base, denied: map[string]bool{"/cfg/dir/b.yaml": true}}

	match := NewClassifier(fs).Classify("dir", "/cfg")

	require.Len(t, match.Descriptors, 1)
	assert.Equal(t, "a", match.Descriptors[0].Name)
	require.Len(t, match.Skipped, 1)
	assert.Equal(t, "/cfg/dir/b.yaml", match.Skipped[0].Path)
	assert.Contains(t, match.Skipped[0].Reason, "permission denied")
}

func TestClassifyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/cfg/setup.v2.yaml": "phases: []\n",
		"/abs/install.sh":    "#!/bin/sh\n",
	})
	c := NewClassifier(fs)

	t.Run("relative to base dir", func(t *testing.T) {
		match := c.Classify("setup.v2.yaml", "/cfg")
		assert.Equal(t, MatchFile, match.Kind)
		require.Len(t, match.Descriptors, 1)
		assert.Equal(t, "setup", match.Descriptors[0].Name)
		assert.Equal(t, "phases: []\n", match.Descriptors[0].Content)
		assert.Equal(t, "/cfg/setup.v2.yaml", match.Descriptors[0].Path)
	})

	t.Run("absolute path ignores base dir", func(t *testing.T) {
		match := c.Classify("/abs/install.sh", "/cfg")
		assert.Equal(t, MatchFile, match.Kind)
		require.Len(t, match.Descriptors, 1)
		assert.Equal(t, "install", match.Descriptors[0].Name)
	})
}

func TestClassifyDotFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/cfg/.hidden": "x"})

	match := NewClassifier(fs).Classify(".hidden", "/cfg")

	assert.Equal(t, MatchFile, match.Kind)
	assert.Empty(t, match.Descriptors)
	require.Len(t, match.Skipped, 1)
}

func TestClassifyFileNotRegular(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFiles(t, base, map[string]string{"/cfg/pipe.yaml": ""})
	fs := &pipeFs{Fs: base, pipes: map[string]bool{"/cfg/pipe.yaml": true}}

	match := NewClassifier(fs).Classify("pipe.yaml", "/cfg")

	assert.Equal(t, MatchFile, match.Kind)
	assert.Empty(t, match.Descriptors)
	require.Len(t, match.Skipped, 1)
	assert.Equal(t, "not a regular file", match.Skipped[0].Reason)
}

func TestClassifyNotFound(t *testing.T) {
	match := NewClassifier(afero.NewMemMapFs()).Classify("missing.yaml", "/cfg")

	assert.Equal(t, MatchNotFound, match.Kind)
	assert.Equal(t, "/cfg/missing.yaml", match.Path)
	assert.Empty(t, match.Descriptors)
}

func TestClassifyEmptyReference(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/cfg/a.yaml": "a"})

	match := NewClassifier(fs).Classify("  ", "/cfg")

	assert.Equal(t, MatchNotFound, match.Kind)
}

func TestNameFromFile(t *testing.T) {
	tests := map[string]string{
		"setup.v2.yaml":      "setup",
		"/a/b/install.sh":    "install",
		"noext":              "noext",
		"dir/archive.tar.gz": "archive",
		".bashrc":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NameFromFile(in), in)
	}
}

func TestMatchKindString(t *testing.T) {
	assert.Equal(t, "managed", MatchManaged.String())
	assert.Equal(t, "directory", MatchDirectory.String())
	assert.Equal(t, "file", MatchFile.String())
	assert.Equal(t, "not_found", MatchNotFound.String())
}

func TestNewClassifierDefaultsToOsFs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.sh"), []byte("echo hi"), 0o600))

	match := NewClassifier(nil).Classify("hello.sh", dir)

	require.Equal(t, MatchFile, match.Kind)
	assert.Equal(t, "echo hi", match.Descriptors[0].Content)
}

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
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// managedComponentPattern matches Image Builder component ARNs in every
// partition and captures the component name.
var managedComponentPattern = regexp.MustCompile(
	`^arn:(?:aws|aws-cn|aws-us-gov|aws-iso|aws-iso-b):imagebuilder:[a-z0-9-]*:aws:component/([\w-]*)/.*`,
)

// MatchKind is the outcome of classifying one reference.
type MatchKind int

// Classification outcomes, in precedence order.
const (
	MatchManaged MatchKind = iota
	MatchDirectory
	MatchFile
	MatchNotFound
)

// String returns the lowercase name of the match kind.
func (k MatchKind) String() string {
	switch k {
	case MatchManaged:
		return "managed"
	case MatchDirectory:
		return "directory"
	case MatchFile:
		return "file"
	default:
		return "not_found"
	}
}

// SkippedEntry is a file that was found but could not become a component.
type SkippedEntry struct {
	Path   string
	Reason string
}

// Match is the result of Classify.
type Match struct {
	Kind        MatchKind
	Reference   string
	Path        string
	Descriptors []Descriptor
	Skipped     []SkippedEntry
}

// Classifier classifies component references against a filesystem.
type Classifier struct {
	fs afero.Fs
}

// NewClassifier returns a classifier reading from fs, or the OS filesystem
// when fs is nil.
func NewClassifier(fs afero.Fs) *Classifier {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Classifier{fs: fs}
}

// IsManagedIdentifier reports whether reference is a managed component ARN.
func IsManagedIdentifier(reference string) bool {
	return managedComponentPattern.MatchString(reference)
}

// NameFromFile derives a component name from a file path: the base name
// truncated at its first dot, so "setup.v2.yaml" becomes "setup".
func NameFromFile(path string) string {
	name, _, _ := strings.Cut(filepath.Base(path), ".")
	return name
}

// ResolvePath joins a relative reference to baseDir. Absolute references
// are returned unchanged.
func ResolvePath(reference, baseDir string) string {
	if filepath.IsAbs(reference) || baseDir == "" {
		return filepath.Clean(reference)
	}
	return filepath.Join(baseDir, reference)
}

// Classify resolves a single reference. Managed identifiers take precedence
// and never touch the filesystem; otherwise the reference is resolved
// against baseDir and looked up as a directory, then as a file.
func (c *Classifier) Classify(reference, baseDir string) Match {
	if m := managedComponentPattern.FindStringSubmatch(reference); m != nil {
		return Match{
			Kind:      MatchManaged,
			Reference: reference,
			Descriptors: []Descriptor{{
				Name:              m[1],
				Origin:            OriginManaged,
				ManagedIdentifier: reference,
				Reference:         reference,
			}},
		}
	}

	if strings.TrimSpace(reference) == "" {
		return Match{Kind: MatchNotFound, Reference: reference}
	}

	path := ResolvePath(reference, baseDir)
	info, err := c.fs.Stat(path)
	if err != nil {
		return Match{Kind: MatchNotFound, Reference: reference, Path: path}
	}

	if info.IsDir() {
		return c.classifyDirectory(reference, path)
	}

	match := Match{Kind: MatchFile, Reference: reference, Path: path}
	if !info.Mode().IsRegular() {
		match.Skipped = append(match.Skipped, SkippedEntry{Path: path, Reason: "not a regular file"})
		return match
	}
	desc, skipped := c.readComponent(reference, path)
	if skipped != nil {
		match.Skipped = append(match.Skipped, *skipped)
	} else {
		match.Descriptors = append(match.Descriptors, desc)
	}
	return match
}

// classifyDirectory reads the immediate regular files of dir in lexical
// order. Sub-directories are ignored.
func (c *Classifier) classifyDirectory(reference, dir string) Match {
	match := Match{Kind: MatchDirectory, Reference: reference, Path: dir}

	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		match.Skipped = append(match.Skipped, SkippedEntry{Path: dir, Reason: err.Error()})
		return match
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Mode()

		if mode&os.ModeSymlink != 0 {
			target, err := c.fs.Stat(path)
			if err != nil {
				match.Skipped = append(match.Skipped, SkippedEntry{Path: path, Reason: err.Error()})
				continue
			}
			mode = target.Mode()
		}

		if mode.IsDir() {
			continue
		}
		if !mode.IsRegular() {
			match.Skipped = append(match.Skipped, SkippedEntry{Path: path, Reason: "not a regular file"})
			continue
		}

		desc, skipped := c.readComponent(reference, path)
		if skipped != nil {
			match.Skipped = append(match.Skipped, *skipped)
			continue
		}
		match.Descriptors = append(match.Descriptors, desc)
	}

	return match
}

func (c *Classifier) readComponent(reference, path string) (Descriptor, *SkippedEntry) {
	name := NameFromFile(path)
	if name == "" {
		return Descriptor{}, &SkippedEntry{Path: path, Reason: "file name does not yield a component name"}
	}

	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return Descriptor{}, &SkippedEntry{Path: path, Reason: err.Error()}
	}

	return Descriptor{
		Name:      name,
		Origin:    OriginInline,
		Content:   string(content),
		Reference: reference,
		Path:      path,
	}, nil
}

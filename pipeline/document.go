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

package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cowdogmoo/imagepipe/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// contextKey nests settings in a cdk.json file.
const contextKey = "context"

// Document is a loaded pipeline document. Pipelines and Emails hold the raw
// values of their keys, nil when absent.
type Document struct {
	Path      string
	Pipelines interface{}
	Emails    interface{}
}

// BaseDir returns the directory component references resolve against.
func (d *Document) BaseDir() string {
	if d.Path == "" {
		return "."
	}
	return filepath.Dir(d.Path)
}

// LoadDocument reads and parses the document at path. Files ending in .hcl
// are parsed as HCL; everything else as YAML, which also covers JSON.
func LoadDocument(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap("read pipeline document", path, err)
	}
	return ParseDocument(data, path)
}

// ParseDocument parses document content; filename selects the format.
func ParseDocument(data []byte, filename string) (*Document, error) {
	if strings.EqualFold(filepath.Ext(filename), ".hcl") {
		return parseHCLDocument(data, filename)
	}
	return parseYAMLDocument(data, filename)
}

func parseYAMLDocument(data []byte, filename string) (*Document, error) {
	doc := &Document{Path: filename}

	var root interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap("parse pipeline document", filename, err)
	}
	if root == nil {
		return doc, nil
	}

	values, ok := root.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("pipeline document %s must be a mapping, found %T", filename, root)
	}

	// cdk.json keeps its settings under "context".
	if _, found := values[PipelinesKey]; !found {
		if nested, ok := values[contextKey].(map[string]interface{}); ok {
			values = nested
		}
	}

	doc.Pipelines = values[PipelinesKey]
	doc.Emails = values[EmailsKey]
	return doc, nil
}

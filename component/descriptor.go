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

// Package component turns component references from a pipeline
// configuration into concrete component descriptors.
//
// A reference is one of:
//   - an Image Builder managed component ARN, passed through by identifier
//   - a directory, yielding one inline component per regular file
//   - a single file, yielding one inline component
//
// Anything else is unresolved and reported as a diagnostic by the Resolver.
package component

// Origin tells whether a component already exists in Image Builder or must
// be created from local content.
type Origin int

const (
	// OriginManaged components are referenced by ARN and never created.
	OriginManaged Origin = iota
	// OriginInline components are created from a local definition file.
	OriginInline
)

// String returns the lowercase name of the origin.
func (o Origin) String() string {
	if o == OriginInline {
		return "inline"
	}
	return "managed"
}

// MarshalText encodes the origin by name.
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Descriptor is a resolved component. Exactly one of ManagedIdentifier and
// Content is set, matching Origin.
type Descriptor struct {
	Name              string `json:"name" yaml:"name"`
	Origin            Origin `json:"origin" yaml:"origin"`
	ManagedIdentifier string `json:"managedIdentifier,omitempty" yaml:"managedIdentifier,omitempty"`
	Content           string `json:"-" yaml:"-"`
	Reference         string `json:"reference" yaml:"reference"`
	Path              string `json:"path,omitempty" yaml:"path,omitempty"`
}

// IsManaged reports whether d references an existing managed component.
func (d Descriptor) IsManaged() bool {
	return d.Origin == OriginManaged
}

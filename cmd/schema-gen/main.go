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

// Package main writes the JSON schema of imagepipe pipeline documents so
// editors can autocomplete and validate them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cowdogmoo/imagepipe/pipeline"
	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/cowdogmoo/imagepipe/schema/pipelines.json"

var (
	output = flag.String("o", "schema/imagepipe-pipelines.json", "Output path for JSON schema")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	schema := pipeline.DocumentSchema()
	schema.ID = jsonschema.ID(schemaID)
	schema.Description = "Schema for imagepipe EC2 Image Builder pipeline documents"

	schema.Examples = []interface{}{
		map[string]interface{}{
			pipeline.PipelinesKey: []interface{}{
				map[string]interface{}{
					"name":                "demo",
					"components":          []string{"components", "arn:aws:imagebuilder:us-east-1:aws:component/update-linux/1.0.2/1"},
					"instanceProfileName": "imagebuilder",
					"cfnImageRecipeName":  "demo-recipe",
					"version":             "1.0.0",
					"parentImage": map[string]interface{}{
						"us-east-1": map[string]interface{}{"amiID": "ami-0123456789abcdef0"},
					},
				},
			},
			pipeline.EmailsKey: []string{"ops@example.com"},
		},
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Append newline to satisfy end-of-file-fixer
	data = append(data, '\n')

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	fmt.Printf("✓ Generated JSON schema: %s\n", *output)
	return nil
}

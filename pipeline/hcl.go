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
	"math/big"

	"github.com/cowdogmoo/imagepipe/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// HCL block types.
const (
	pipelineBlock    = "pipeline"
	parentImageBlock = "parent_image"
)

// parseHCLDocument reads the HCL form of a document:
//
//	buildCompletionNotificationEmails = ["ops@example.com"]
//
//	pipeline "demo" {
//	  components          = ["components/"]
//	  instanceProfileName = "imagebuilder"
//	  cfnImageRecipeName  = "demo-recipe"
//	  version             = "1.0.0"
//
//	  parent_image "us-east-1" {
//	    amiID = "ami-0123456789abcdef0"
//	  }
//	}
//
// Each pipeline block becomes one record named by its label. A top-level
// ImageBuilderPipelineConfigurations attribute is also accepted, but not
// together with pipeline blocks.
func parseHCLDocument(data []byte, filename string) (*Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap("parse HCL document", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected body type %T in %s", file.Body, filename)
	}

	doc := &Document{Path: filename}

	for name, attr := range body.Attributes {
		value, err := attributeValue(attr)
		if err != nil {
			return nil, err
		}
		switch name {
		case PipelinesKey:
			doc.Pipelines = value
		case EmailsKey:
			doc.Emails = value
		}
	}

	var records []interface{}
	for _, block := range body.Blocks {
		if block.Type != pipelineBlock {
			return nil, fmt.Errorf("%s: unsupported block type %q", block.DefRange().String(), block.Type)
		}
		record, err := pipelineRecord(block)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if len(records) > 0 {
		if doc.Pipelines != nil {
			return nil, fmt.Errorf("%s: use either pipeline blocks or %s, not both", filename, PipelinesKey)
		}
		doc.Pipelines = records
	}

	return doc, nil
}

func pipelineRecord(block *hclsyntax.Block) (map[string]interface{}, error) {
	if len(block.Labels) != 1 {
		return nil, fmt.Errorf("%s: pipeline block needs exactly one label, the pipeline name", block.DefRange().String())
	}

	record := map[string]interface{}{"name": block.Labels[0]}
	for name, attr := range block.Body.Attributes {
		value, err := attributeValue(attr)
		if err != nil {
			return nil, err
		}
		record[name] = value
	}

	for _, nested := range block.Body.Blocks {
		if nested.Type != parentImageBlock || len(nested.Labels) != 1 {
			return nil, fmt.Errorf("%s: expected parent_image \"<region>\" block, found %q",
				nested.DefRange().String(), nested.Type)
		}

		images, _ := record["parentImage"].(map[string]interface{})
		if images == nil {
			images = make(map[string]interface{})
			record["parentImage"] = images
		}

		image := make(map[string]interface{})
		for name, attr := range nested.Body.Attributes {
			value, err := attributeValue(attr)
			if err != nil {
				return nil, err
			}
			image[name] = value
		}
		images[nested.Labels[0]] = image
	}

	return record, nil
}

func attributeValue(attr *hclsyntax.Attribute) (interface{}, error) {
	val, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() {
		return nil, errors.Wrap("evaluate attribute", attr.Name, diags)
	}
	value, err := ctyToNative(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", attr.SrcRange.String(), err)
	}
	return value, nil
}

// ctyToNative converts a cty value into the same untyped shapes the YAML
// decoder produces. Whole numbers become int.
func ctyToNative(v cty.Value) (interface{}, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make([]interface{}, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, native)
		}
		return list, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]interface{})
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

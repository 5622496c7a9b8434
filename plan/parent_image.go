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
	"fmt"
	"sort"
	"strings"

	"github.com/cowdogmoo/imagepipe/pipeline"
)

// ParentImageResolver picks a pipeline's parent AMI for one region.
type ParentImageResolver struct {
	Region string
}

// Resolve returns the AMI ID configured for r.Region.
func (r ParentImageResolver) Resolve(images map[string]pipeline.ParentImage) (string, error) {
	image, ok := images[r.Region]
	if ok && image.AmiID != "" {
		return image.AmiID, nil
	}

	regions := make([]string, 0, len(images))
	for region := range images {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	return "", fmt.Errorf("no parent image for region %s (configured regions: %s)",
		r.Region, strings.Join(regions, ", "))
}

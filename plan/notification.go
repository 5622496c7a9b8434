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

	"github.com/cowdogmoo/imagepipe/pipeline"
)

// EmailSubscription is one email endpoint for build-completion notices.
type EmailSubscription struct {
	Endpoint string
}

// ResolveEmailSubscriptions interprets the raw notification email value.
// An absent value yields nothing. A value that is not a list yields nothing
// and a warning; a malformed email list never blocks planning. List
// elements are used verbatim without checking email syntax.
func ResolveEmailSubscriptions(raw interface{}) ([]EmailSubscription, string) {
	switch val := raw.(type) {
	case nil:
		return nil, ""
	case []string:
		subs := make([]EmailSubscription, 0, len(val))
		for _, endpoint := range val {
			subs = append(subs, EmailSubscription{Endpoint: endpoint})
		}
		return subs, ""
	case []interface{}:
		subs := make([]EmailSubscription, 0, len(val))
		for _, elem := range val {
			endpoint, ok := elem.(string)
			if !ok {
				endpoint = fmt.Sprintf("%v", elem)
			}
			subs = append(subs, EmailSubscription{Endpoint: endpoint})
		}
		return subs, ""
	default:
		return nil, fmt.Sprintf("%s contains an invalid value (%T), it should be a list of emails; skipping email subscriptions",
			pipeline.EmailsKey, raw)
	}
}

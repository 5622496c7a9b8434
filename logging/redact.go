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

package logging

import (
	"fmt"
	"sort"
	"strings"
)

// sensitiveKeyPatterns are substrings of setting keys whose values must not
// reach the console.
var sensitiveKeyPatterns = []string{
	"secret",
	"token",
	"password",
	"credential",
	"access_key",
	"accesskey",
	"private_key",
}

// IsSensitiveKey reports whether key names a secret. The check is
// case-insensitive.
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lowerKey, pattern) {
			return true
		}
	}
	return false
}

// RedactSensitiveValue returns "***" for non-empty values of sensitive keys.
func RedactSensitiveValue(key, value string) string {
	if value != "" && IsSensitiveKey(key) {
		return "***"
	}
	return value
}

// RedactSettings flattens a nested settings map (as returned by
// viper.AllSettings) into sorted "a.b=value" lines with secrets masked.
func RedactSettings(settings map[string]interface{}) []string {
	var lines []string
	flattenSettings("", settings, &lines)
	sort.Strings(lines)
	return lines
}

func flattenSettings(prefix string, settings map[string]interface{}, lines *[]string) {
	for key, value := range settings {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenSettings(fullKey, nested, lines)
			continue
		}
		*lines = append(*lines, fullKey+"="+RedactSensitiveValue(fullKey, fmt.Sprint(value)))
	}
}

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

package config

import (
	"os"

	"gopkg.in/ini.v1"
)

// ResolveRegion returns the configured region, falling back to the region of
// the active profile in the AWS shared config file. It returns "" when no
// region can be determined.
func (c *Config) ResolveRegion() string {
	if c.AWS.Region != "" {
		return c.AWS.Region
	}
	return regionFromSharedConfig(SharedAWSConfigFile(), c.AWS.Profile)
}

// regionFromSharedConfig reads the region key of profile from an AWS shared
// config file. The default profile lives in [default]; named profiles in
// [profile <name>].
func regionFromSharedConfig(path, profile string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return ""
	}

	section := "default"
	if profile != "" && profile != "default" {
		section = "profile " + profile
	}

	sec, err := cfg.GetSection(section)
	if err != nil {
		return ""
	}
	return sec.Key("region").String()
}

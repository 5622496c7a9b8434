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

import "github.com/cowdogmoo/imagepipe/config"

// Target is the deployment region and account. Account may be empty when
// it is not known at planning time.
type Target struct {
	Region  string
	Account string
}

// Options are the planning defaults shared by every pipeline.
type Options struct {
	Concurrency         int
	ParameterPrefix     string
	InstanceTypes       []string
	SubnetID            string
	SecurityGroupIDs    []string
	RecorderFunctionARN string
	DeviceName          string
	VolumeType          string
	Platform            string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Concurrency:     4,
		ParameterPrefix: "imagebuilder_ami",
		InstanceTypes:   []string{"t3.large", "t3.xlarge"},
		DeviceName:      "/dev/sda1",
		VolumeType:      "gp2",
		Platform:        "Linux",
	}
}

// OptionsFromConfig maps global configuration onto planning options,
// keeping defaults for unset values.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}

	if cfg.Plan.Concurrency > 0 {
		opts.Concurrency = cfg.Plan.Concurrency
	}
	if cfg.Plan.ParameterPrefix != "" {
		opts.ParameterPrefix = cfg.Plan.ParameterPrefix
	}
	if len(cfg.Plan.InstanceTypes) > 0 {
		opts.InstanceTypes = cfg.Plan.InstanceTypes
	}
	if cfg.Plan.DeviceName != "" {
		opts.DeviceName = cfg.Plan.DeviceName
	}
	if cfg.Plan.VolumeType != "" {
		opts.VolumeType = cfg.Plan.VolumeType
	}
	if cfg.Plan.Platform != "" {
		opts.Platform = cfg.Plan.Platform
	}

	opts.SubnetID = cfg.AWS.SubnetID
	opts.SecurityGroupIDs = cfg.AWS.SecurityGroupIDs
	opts.RecorderFunctionARN = cfg.AWS.RecorderFunctionARN
	return opts
}

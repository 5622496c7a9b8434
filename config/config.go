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

// Package config loads imagepipe's global settings: logging, AWS target and
// planning defaults. Pipeline definitions live in a separate document read by
// the pipeline package; this package only covers user and environment
// preferences.
package config

import (
	"github.com/spf13/viper"
)

// Config represents the global imagepipe configuration.
type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	AWS  AWSConfig  `mapstructure:"aws"`
	Plan PlanConfig `mapstructure:"plan"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AWSConfig holds the deployment target and the collaborators the
// provisioning backend wires into each pipeline.
type AWSConfig struct {
	Region              string   `mapstructure:"region"`
	Profile             string   `mapstructure:"profile"`
	Account             string   `mapstructure:"account"`
	AccessKeyID         string   `mapstructure:"access_key_id"`
	SecretAccessKey     string   `mapstructure:"secret_access_key"`
	SessionToken        string   `mapstructure:"session_token"`
	SubnetID            string   `mapstructure:"subnet_id"`
	SecurityGroupIDs    []string `mapstructure:"security_group_ids"`
	RecorderFunctionARN string   `mapstructure:"recorder_function_arn"`
}

// PlanConfig holds defaults applied while building resource plans.
type PlanConfig struct {
	Concurrency     int      `mapstructure:"concurrency"`
	ParameterPrefix string   `mapstructure:"parameter_prefix"`
	InstanceTypes   []string `mapstructure:"instance_types"`
	DeviceName      string   `mapstructure:"device_name"`
	VolumeType      string   `mapstructure:"volume_type"`
	Platform        string   `mapstructure:"platform"`
}

// Load reads config.yaml from the search paths. A missing file is not an
// error; defaults and environment variables still apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range SearchPaths() {
		v.AddConfigPath(path)
	}

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "color")

	v.SetDefault("aws.region", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.account", "")
	v.SetDefault("aws.subnet_id", "")
	v.SetDefault("aws.security_group_ids", []string{})
	v.SetDefault("aws.recorder_function_arn", "")

	v.SetDefault("plan.concurrency", 4)
	v.SetDefault("plan.parameter_prefix", "imagebuilder_ami")
	v.SetDefault("plan.instance_types", []string{"t3.large", "t3.xlarge"})
	v.SetDefault("plan.device_name", "/dev/sda1")
	v.SetDefault("plan.volume_type", "gp2")
	v.SetDefault("plan.platform", "Linux")
}

// bindEnvVars binds IMAGEPIPE_* variables plus the standard AWS ones.
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("IMAGEPIPE")
	v.AutomaticEnv()

	_ = v.BindEnv("log.level", "IMAGEPIPE_LOG_LEVEL")
	_ = v.BindEnv("log.format", "IMAGEPIPE_LOG_FORMAT")

	_ = v.BindEnv("aws.region", "IMAGEPIPE_AWS_REGION", "AWS_REGION", "AWS_DEFAULT_REGION")
	_ = v.BindEnv("aws.profile", "IMAGEPIPE_AWS_PROFILE", "AWS_PROFILE")
	_ = v.BindEnv("aws.account", "IMAGEPIPE_AWS_ACCOUNT", "CDK_DEFAULT_ACCOUNT")
	_ = v.BindEnv("aws.access_key_id", "AWS_ACCESS_KEY_ID")
	_ = v.BindEnv("aws.secret_access_key", "AWS_SECRET_ACCESS_KEY")
	_ = v.BindEnv("aws.session_token", "AWS_SESSION_TOKEN")
	_ = v.BindEnv("aws.subnet_id", "IMAGEPIPE_AWS_SUBNET_ID")
	_ = v.BindEnv("aws.security_group_ids", "IMAGEPIPE_AWS_SECURITY_GROUP_IDS")
	_ = v.BindEnv("aws.recorder_function_arn", "IMAGEPIPE_AWS_RECORDER_FUNCTION_ARN")

	_ = v.BindEnv("plan.concurrency", "IMAGEPIPE_PLAN_CONCURRENCY")
	_ = v.BindEnv("plan.parameter_prefix", "IMAGEPIPE_PLAN_PARAMETER_PREFIX")
	_ = v.BindEnv("plan.instance_types", "IMAGEPIPE_PLAN_INSTANCE_TYPES")
}

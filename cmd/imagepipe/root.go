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

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cowdogmoo/imagepipe/config"
	"github.com/cowdogmoo/imagepipe/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Context key type for storing config
type configKeyType struct{}

var (
	// configKey is the context key for storing the config
	configKey = configKeyType{}

	// appFs is the filesystem documents and components are read from.
	appFs = afero.NewOsFs()

	// Root command options
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "imagepipe",
	Short: "imagepipe - EC2 Image Builder pipeline planner",
	Long: `imagepipe validates a document of EC2 Image Builder pipeline
configurations, plans the AWS resources each pipeline needs and applies
that plan.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is $HOME/.imagepipe/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json, color)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Quiet mode - only show errors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose mode - show debug output")
	rootCmd.PersistentFlags().String("region", "", "AWS region to plan for (default from config, AWS_REGION or the shared AWS config)")
	rootCmd.PersistentFlags().String("profile", "", "AWS shared config profile")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

// configFromContext retrieves the config from the command context.
// Returns nil if no config is stored in context.
func configFromContext(cmd *cobra.Command) *config.Config {
	if cmd.Context() == nil {
		return nil
	}
	if cfg, ok := cmd.Context().Value(configKey).(*config.Config); ok {
		return cfg
	}
	return nil
}

// initConfig initializes configuration with proper precedence:
// CLI Flags > Environment Variables > Config File > Defaults
func initConfig(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromPath(cfgFile)
	} else {
		cfg, err = config.Load()
	}

	var loadErr error
	if err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to load config %s: %w", cfgFile, err)
		}
		loadErr = err
		cfg = &config.Config{}
	}

	v := viper.New()
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("aws.region", cfg.AWS.Region)
	v.SetDefault("aws.profile", cfg.AWS.Profile)

	v.SetEnvPrefix("IMAGEPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	root := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"log.level":   "log-level",
		"log.format":  "log-format",
		"aws.region":  "region",
		"aws.profile": "profile",
	} {
		if err := v.BindPFlag(key, root.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind %s flag: %w", flag, err)
		}
	}

	BindCommandFlagsToViper(v, cmd)

	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.AWS.Region = v.GetString("aws.region")
	cfg.AWS.Profile = v.GetString("aws.profile")

	logger := logging.NewCustomLoggerWithOptions(cfg.Log.Level, cfg.Log.Format, quiet, verbose)
	logger.ConsoleWriter = cmd.ErrOrStderr()
	logger.OutputWriter = cmd.OutOrStdout()

	if loadErr != nil {
		logger.Warn("failed to load config, using defaults: %v", loadErr)
	}
	for _, line := range logging.RedactSettings(v.AllSettings()) {
		logger.Debug("setting %s", line)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// BindFlagsToViper binds all flags from a command to a Viper instance.
// The viperKey parameter prefixes the keys (e.g. "plan" for plan flags).
func BindFlagsToViper(v *viper.Viper, cmd *cobra.Command, viperKey string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if viperKey != "" {
			key = viperKey + "." + key
		}
		if err := v.BindPFlag(key, f); err != nil {
			logging.FromContext(cmd.Context()).Warn("failed to bind flag %s to viper: %v", f.Name, err)
		}
	})
}

// BindCommandFlagsToViper binds the command's local flags under its command
// path and the inherited persistent flags at the top level.
func BindCommandFlagsToViper(v *viper.Viper, cmd *cobra.Command) {
	BindFlagsToViper(v, cmd, getCommandPath(cmd))

	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			logging.FromContext(cmd.Context()).Warn("failed to bind inherited flag %s to viper: %v", f.Name, err)
		}
	})
}

// getCommandPath returns the command path for Viper key namespacing.
// For example, "imagepipe plan" returns "plan".
func getCommandPath(cmd *cobra.Command) string {
	var parts []string
	current := cmd

	for current != nil && current.Parent() != nil {
		parts = append([]string{current.Name()}, parts...)
		current = current.Parent()
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ".")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/clonobrowser/annotator/pkg/compiler"
	"github.com/clonobrowser/annotator/pkg/redis"
	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// CLIConfig represents minimal configuration for CLI commands
type CLIConfig struct {
	// Logging level
	Logging string `yaml:"logging" default:"error" validate:"oneof=panic fatal warn info debug trace"`

	// Redis configuration (optional, only needed for the compile cache)
	Redis *redis.Config `yaml:"redis,omitempty"`

	// Compiler configuration
	Compiler compiler.Config `yaml:"compiler"`

	// ReportTemplate is a text/template file used by describe instead of the built-in report
	ReportTemplate string `yaml:"reportTemplate"`
}

// Validate validates the CLI configuration
func (c *CLIConfig) Validate() error {
	if err := c.Compiler.Validate(); err != nil {
		return err
	}

	if c.Redis != nil {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("invalid redis configuration: %w", err)
		}
	}

	return nil
}

// LoadCLIConfig loads CLI configuration from a YAML file
func LoadCLIConfig(path string) (*CLIConfig, error) {
	if path == "" {
		path = "annotator.yaml"
	}

	config := &CLIConfig{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	// Try to read the file, but allow it to not exist
	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, use defaults
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// setupCLI loads the CLI configuration, applies its log level unless
// --log-level was given, and builds the compiler service. The returned
// cleanup closes the Redis client when one was opened.
func setupCLI(cmd *cobra.Command) (*CLIConfig, compiler.Service, func(), error) {
	// Silence usage on error
	cmd.SilenceUsage = true

	config, err := LoadCLIConfig(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !cmd.Flags().Changed("log-level") {
		level, err := logrus.ParseLevel(config.Logging)
		if err != nil {
			return nil, nil, nil, err
		}

		logger.SetLevel(level)
	}

	if config.Redis == nil || !config.Compiler.Cache.Enabled {
		return config, compiler.NewService(logger, nil), func() {}, nil
	}

	client, err := redis.New(config.Redis)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	cache := compiler.NewScriptCache(client, config.Redis.PrefixKey("compiled:"), config.Compiler.Cache.TTL)

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.WithError(err).Debug("failed to close redis")
		}
	}

	return config, compiler.NewService(logger, cache), cleanup, nil
}

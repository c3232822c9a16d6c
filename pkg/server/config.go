// Package server provides server configuration and management
package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/clonobrowser/annotator/pkg/api"
	"github.com/clonobrowser/annotator/pkg/compiler"
	"github.com/clonobrowser/annotator/pkg/redis"
)

// Define static errors
var (
	ErrRedisConfigRequired = errors.New("redis configuration is required when the compile cache is enabled")
)

// Config holds server configuration
type Config struct {
	// MetricsAddr is the address to listen on for metrics.
	MetricsAddr string `yaml:"metricsAddr" default:":9090"`
	// HealthCheckAddr is the address to listen on for healthcheck.
	HealthCheckAddr *string `yaml:"healthCheckAddr"`
	// PProfAddr is the address to listen on for pprof.
	PProfAddr *string `yaml:"pprofAddr"`
	// LoggingLevel is the logging level to use.
	LoggingLevel string `yaml:"logging" default:"info"`
	// Redis is the redis configuration. Only needed for the compile cache.
	Redis *redis.Config `yaml:"redis"`
	// API is the HTTP API configuration.
	API api.Config `yaml:"api"`
	// Compiler is the compiler service configuration.
	Compiler compiler.Config `yaml:"compiler"`
	// ShutdownTimeout is the timeout for shutting down the server.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"10s"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("invalid api configuration: %w", err)
	}

	if err := c.Compiler.Validate(); err != nil {
		return fmt.Errorf("invalid compiler configuration: %w", err)
	}

	if c.Compiler.Cache.Enabled && c.Redis == nil {
		return ErrRedisConfigRequired
	}

	if c.Redis != nil {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("invalid redis configuration: %w", err)
		}
	}

	return nil
}

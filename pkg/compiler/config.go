package compiler

import (
	"fmt"
	"time"
)

// Config defines configuration for the compiler service
type Config struct {
	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig controls caching of compiled scripts in Redis
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" default:"false"`
	TTL     time.Duration `yaml:"ttl" default:"1h"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCacheTTL, c.Cache.TTL)
	}

	return nil
}

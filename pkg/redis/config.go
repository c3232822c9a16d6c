// Package redis provides Redis client configuration
package redis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Define static errors
var (
	ErrAddressRequired = errors.New("redis address is required")
)

// Config holds Redis client configuration
type Config struct {
	// Address is either a redis:// URL or a bare host:port.
	Address string `yaml:"address"`
	Prefix  string `yaml:"prefix" default:"annotator"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrAddressRequired
	}

	if c.Prefix == "" {
		c.Prefix = "annotator"
	}

	return nil
}

// PrefixKey adds the configured prefix to a Redis key
func (c *Config) PrefixKey(key string) string {
	if c.Prefix == "" {
		return key
	}

	return fmt.Sprintf("%s:%s", c.Prefix, key)
}

// Options converts the configured address into client options
func (c *Config) Options() (*redis.Options, error) {
	if !strings.Contains(c.Address, "://") {
		return &redis.Options{Addr: c.Address}, nil
	}

	opt, err := redis.ParseURL(c.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return opt, nil
}

// New creates a Redis client from the configuration
func New(c *Config) (*redis.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opt, err := c.Options()
	if err != nil {
		return nil, err
	}

	return redis.NewClient(opt), nil
}

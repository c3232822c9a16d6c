// Package api provides a REST API for compiling, parsing and validating annotation scripts.
package api

import "errors"

// ErrAPIAddrRequired is returned when API is enabled but no address is configured
var (
	ErrAPIAddrRequired  = errors.New("api address is required when API is enabled")
	ErrInvalidBodyLimit = errors.New("api body limit must be positive")
)

// Config represents API service configuration
type Config struct {
	Enabled   bool   `yaml:"enabled" default:"true"`
	Addr      string `yaml:"addr" default:":8080" validate:"hostname_port"`
	BodyLimit int    `yaml:"bodyLimit" default:"1048576"`
}

// Validate validates the API configuration
func (c *Config) Validate() error {
	if c.Enabled && c.Addr == "" {
		return ErrAPIAddrRequired
	}
	if c.Enabled && c.BodyLimit <= 0 {
		return ErrInvalidBodyLimit
	}
	return nil
}

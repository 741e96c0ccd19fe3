// Package config defines service configuration and its loading hooks.
//
// Conventions:
//   - New(ctx) builds a Config holding defaults.
//   - Load(ctx) layers a YAML file and environment variables over the defaults.
//   - External errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SeedFile optionally points to a YAML activity catalogue. Empty means
	// the built-in catalogue.
	SeedFile string `koanf:"seed_file"`

	// ReadTimeoutMS and WriteTimeoutMS bound a single HTTP exchange.
	ReadTimeoutMS  int `koanf:"read_timeout_ms"`
	WriteTimeoutMS int `koanf:"write_timeout_ms"`

	// ShutdownTimeoutMS bounds graceful shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config holding defaults. The context is reserved for loaders
// that need it.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8000",
		ReadTimeoutMS:     10_000,
		WriteTimeoutMS:    10_000,
		ShutdownTimeoutMS: 30_000,
	}
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and environment variables.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// CatalogFile points to a YAML activity catalog; empty uses the built-in one.
	CatalogFile string `koanf:"catalog_file"`

	// EnforceCapacity rejects sign-ups once max_participants is reached.
	EnforceCapacity bool `koanf:"enforce_capacity"`

	// CORSAllowedOrigins is a comma separated list of allowed origins.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// JournalSize bounds the number of roster events kept in memory.
	JournalSize int `koanf:"journal_size"`

	// QueueSize bounds the roster event queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of journal workers.
	WorkerCount int `koanf:"worker_count"`

	// ShutdownTimeoutMS caps graceful shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8000",
		CORSAllowedOrigins: "*",
		JournalSize:        1000,
		QueueSize:          1024,
		WorkerCount:        2,
		ShutdownTimeoutMS:  10_000,
	}
}

// AllowedOrigins splits CORSAllowedOrigins into trimmed, non-empty origins.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.JournalSize <= 0:
		return fmt.Errorf("%w: journal_size must be positive", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.ShutdownTimeoutMS <= 0:
		return fmt.Errorf("%w: shutdown_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}

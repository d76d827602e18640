package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven settings for the console.
type Config struct {
	// ConfigPath is the path to the YAML configuration file.
	ConfigPath string `env:"COURT_REVIEW_CONFIG" envDefault:"config.yaml"`
	// LogLevel sets the logger level.
	LogLevel string `env:"COURT_REVIEW_LOG_LEVEL" envDefault:"info"`
	// Lang selects message language for templates.
	Lang string `env:"COURT_REVIEW_LANG" envDefault:"en"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"COURT_REVIEW_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// AuditDB is the SQLite audit database path; empty disables it.
	AuditDB string `env:"COURT_REVIEW_AUDIT_DB"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}

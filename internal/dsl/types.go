package dsl

// Config is the top-level YAML configuration.
type Config struct {
	// Server describes the MCP server settings.
	Server ServerConfig `yaml:"server"`
	// API describes the court backend.
	API APIConfig `yaml:"api"`
	// View configures the request queue view.
	View ViewConfig `yaml:"view"`
}

// ServerConfig defines MCP server settings.
type ServerConfig struct {
	// Name is the MCP server name.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
	// Transport selects the server transport ("http" or "stdio").
	Transport string `yaml:"transport"`
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// HTTP configures HTTP transport.
	HTTP HTTPConfig `yaml:"http"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// MetricsPath serves Prometheus metrics; empty disables it.
	MetricsPath string `yaml:"metrics_path"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// APIConfig describes how to reach the court backend.
type APIConfig struct {
	// BaseURL is the backend origin.
	BaseURL string `yaml:"base_url"`
	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers"`
	// Timeout is the HTTP timeout; empty means none.
	Timeout string `yaml:"timeout"`
	// RatePerMinute throttles outgoing calls; zero disables throttling.
	RatePerMinute int `yaml:"rate_per_minute"`
}

// ViewConfig configures search and paging.
type ViewConfig struct {
	// PageSizes lists the allowed page sizes.
	PageSizes []int `yaml:"page_sizes"`
	// DefaultPageSize must be one of PageSizes.
	DefaultPageSize int `yaml:"default_page_size"`
	// ResyncInterval reloads the queue periodically; empty disables it.
	ResyncInterval string `yaml:"resync_interval"`
}

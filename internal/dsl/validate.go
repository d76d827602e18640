package dsl

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/codex-k8s/court-review/internal/constants"
	"github.com/codex-k8s/court-review/internal/timeutil"
)

var defaultPageSizes = []int{6, 12, 24, 48}

// Validate applies defaults and verifies required fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Server.Name == "" {
		return fmt.Errorf("server.name is required")
	}
	if cfg.Server.Version == "" {
		return fmt.Errorf("server.version is required")
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = constants.TransportHTTP
	}
	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	switch cfg.Server.Transport {
	case constants.TransportHTTP, constants.TransportStdio:
	default:
		return fmt.Errorf("server.transport must be http or stdio")
	}
	if strings.TrimSpace(cfg.Server.HTTP.Listen) == "" {
		cfg.Server.HTTP.Listen = ":8080"
	}
	if cfg.Server.HTTP.Path == "" {
		cfg.Server.HTTP.Path = "/mcp"
	}
	if !strings.HasPrefix(cfg.Server.HTTP.Path, "/") {
		return fmt.Errorf("server.http.path must start with /")
	}
	if path := cfg.Server.HTTP.MetricsPath; path != "" {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("server.http.metrics_path must start with /")
		}
		if path == cfg.Server.HTTP.Path {
			return fmt.Errorf("server.http.metrics_path must differ from server.http.path")
		}
	}
	for name, value := range map[string]string{
		"server.shutdown_timeout":   cfg.Server.ShutdownTimeout,
		"server.http.read_timeout":  cfg.Server.HTTP.ReadTimeout,
		"server.http.write_timeout": cfg.Server.HTTP.WriteTimeout,
		"server.http.idle_timeout":  cfg.Server.HTTP.IdleTimeout,
		"api.timeout":               cfg.API.Timeout,
		"view.resync_interval":      cfg.View.ResyncInterval,
	} {
		if _, err := timeutil.ParseOptional(value); err != nil {
			return fmt.Errorf("%s is invalid: %w", name, err)
		}
	}

	if err := validateAPI(&cfg.API); err != nil {
		return err
	}
	return validateView(&cfg.View)
}

func validateAPI(api *APIConfig) error {
	if strings.TrimSpace(api.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(api.BaseURL))
	if err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.base_url must be absolute")
	}
	api.BaseURL = strings.TrimRight(strings.TrimSpace(api.BaseURL), "/")
	if api.RatePerMinute < 0 {
		return fmt.Errorf("api.rate_per_minute must be >= 0")
	}
	for key := range api.Headers {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("api.headers contains an empty header name")
		}
	}
	return nil
}

func validateView(view *ViewConfig) error {
	if len(view.PageSizes) == 0 {
		view.PageSizes = slices.Clone(defaultPageSizes)
	}
	seen := map[int]struct{}{}
	for i, size := range view.PageSizes {
		if size < 1 {
			return fmt.Errorf("view.page_sizes[%d] must be >= 1", i)
		}
		if _, exists := seen[size]; exists {
			return fmt.Errorf("duplicate page size: %d", size)
		}
		seen[size] = struct{}{}
	}
	if view.DefaultPageSize == 0 {
		view.DefaultPageSize = view.PageSizes[0]
	}
	if !slices.Contains(view.PageSizes, view.DefaultPageSize) {
		return fmt.Errorf("view.default_page_size must be one of view.page_sizes")
	}
	return nil
}

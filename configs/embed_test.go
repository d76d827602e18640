package configs

import (
	"slices"
	"testing"

	"github.com/codex-k8s/court-review/internal/dsl"
)

func TestNames(t *testing.T) {
	if !slices.Contains(Names(), "court-review.yaml") {
		t.Errorf("Names() = %v, want court-review.yaml", Names())
	}
}

func TestLoadWithoutSuffix(t *testing.T) {
	if _, err := Load("court-review"); err != nil {
		t.Errorf("Load(court-review) error = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("Load(\"\") error = nil")
	}
	if _, err := Load("missing.yaml"); err == nil {
		t.Error("Load(missing) error = nil")
	}
}

func TestEmbeddedConfigIsValid(t *testing.T) {
	t.Setenv("COURT_API_BASE_URL", "https://court.example.com/")
	t.Setenv("COURT_API_AUTHORIZATION", "Bearer it's-secret")

	for _, name := range Names() {
		rendered, err := Rendered(name)
		if err != nil {
			t.Fatalf("Rendered(%s) error = %v", name, err)
		}
		cfg, err := dsl.Load(rendered)
		if err != nil {
			t.Fatalf("dsl.Load(%s) error = %v", name, err)
		}
		if cfg.API.BaseURL != "https://court.example.com" {
			t.Errorf("%s: base_url = %q", name, cfg.API.BaseURL)
		}
		if cfg.API.Headers["Authorization"] != "Bearer it's-secret" {
			t.Errorf("%s: Authorization = %q", name, cfg.API.Headers["Authorization"])
		}
		if cfg.View.DefaultPageSize != 6 {
			t.Errorf("%s: default_page_size = %d", name, cfg.View.DefaultPageSize)
		}
	}
}

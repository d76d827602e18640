package configs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/codex-k8s/court-review/internal/render"
)

// DefaultName is the embedded console config.
const DefaultName = "court-review.yaml"

//go:embed *.yaml
var embedded embed.FS

// Names lists the embedded config files.
func Names() []string {
	names, err := fs.Glob(embedded, "*.yaml")
	if err != nil {
		return nil
	}
	slices.Sort(names)
	return names
}

// Load reads an embedded config; the ".yaml" suffix is optional.
func Load(name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("embedded config name is empty")
	}
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	data, err := fs.ReadFile(embedded, name)
	if err != nil {
		return nil, fmt.Errorf("embedded config %q (available: %s): %w", name, strings.Join(Names(), ", "), err)
	}
	return data, nil
}

// Rendered loads an embedded config and expands its env templates.
func Rendered(name string) ([]byte, error) {
	raw, err := Load(name)
	if err != nil {
		return nil, err
	}
	return render.RenderBytes(name, raw)
}

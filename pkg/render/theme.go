package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// SelectTheme registers manifest with a go-theme registry and resolves
// variant through a theme.Selector. An empty variant selects the base theme.
func SelectTheme(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, fmt.Errorf("render: theme manifest is required")
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
	}

	variant = strings.TrimSpace(variant)
	if _, ok := manifest.Variants[variant]; variant != "" && !ok {
		return nil, fmt.Errorf("render: theme %q has no variant %q", manifest.Name, variant)
	}

	selector := theme.Selector{Registry: registry, DefaultTheme: manifest.Name}
	sel, err := selector.Select(manifest.Name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	cfg := sel.RendererTheme(nil)
	return &cfg, nil
}

// CSSVarsStyle renders vars as a sorted ":root" rule.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		fmt.Fprintf(&b, "  %s: %s;\n", key, vars[key])
	}
	b.WriteString("}")
	return b.String()
}

package config

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wishlist-console/pkg/render"
)

// ThemeConfig declares an optional page theme. Tokens become CSS variables;
// a variant's tokens override the base set.
type ThemeConfig struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Variant  string                       `yaml:"variant"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
	// Stylesheet is linked from the page when set.
	Stylesheet string `yaml:"stylesheet"`
}

// Enabled reports whether a theme was configured.
func (t ThemeConfig) Enabled() bool {
	return strings.TrimSpace(t.Name) != ""
}

// Manifest converts the declaration into a go-theme manifest. Returns nil
// when no theme is configured.
func (t ThemeConfig) Manifest() *theme.Manifest {
	if !t.Enabled() {
		return nil
	}
	version := t.Version
	if version == "" {
		version = "0.0.0"
	}
	m := &theme.Manifest{
		Name:    t.Name,
		Version: version,
		Tokens:  copyTokens(t.Tokens),
	}
	if t.Stylesheet != "" {
		prefix, file := splitAsset(t.Stylesheet)
		m.Assets = theme.Assets{Prefix: prefix, Files: map[string]string{"stylesheet": file}}
	}
	if len(t.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, tokens := range t.Variants {
			m.Variants[name] = theme.Variant{Tokens: copyTokens(tokens)}
		}
	}
	return m
}

// RendererConfig resolves the theme and selected variant for renderers. It
// returns nil, nil when no theme is configured.
func (t ThemeConfig) RendererConfig() (*theme.RendererConfig, error) {
	manifest := t.Manifest()
	if manifest == nil {
		return nil, nil
	}
	cfg, err := render.SelectTheme(manifest, t.Variant)
	if err != nil {
		return nil, fmt.Errorf("config: theme: %w", err)
	}
	return cfg, nil
}

func (t ThemeConfig) validate() error {
	variant := strings.TrimSpace(t.Variant)
	if variant == "" {
		return nil
	}
	if !t.Enabled() {
		return fmt.Errorf("%w: theme.variant %q requires theme.name", ErrInvalid, variant)
	}
	if _, ok := t.Variants[variant]; !ok {
		return fmt.Errorf("%w: theme %q has no variant %q", ErrInvalid, t.Name, variant)
	}
	return nil
}

// splitAsset cuts a stylesheet reference at its last slash so go-theme's
// prefix join rebuilds the same URL.
func splitAsset(ref string) (prefix, file string) {
	i := strings.LastIndex(ref, "/")
	if i < 0 {
		return "", ref
	}
	if i == 0 {
		// one trailing slash is trimmed from the prefix before joining
		return "//", ref[1:]
	}
	return ref[:i], ref[i+1:]
}

func copyTokens(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

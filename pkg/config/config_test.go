package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wishlist-console/pkg/config"
)

func envMap(values map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	if cfg.API.Timeout != 10*time.Second || !cfg.API.Validate {
		t.Fatalf("unexpected api defaults %+v", cfg.API)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Fatalf("unexpected server defaults %+v", cfg.Server)
	}
	if err := cfg.Validate(); !errors.Is(err, config.ErrMissingBaseURL) {
		t.Fatalf("validate = %v, want ErrMissingBaseURL", err)
	}
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	for _, key := range []string{config.EnvAPIURL, config.EnvAPITimeout, config.EnvRateLimit, config.EnvRateBurst, config.EnvAddr, config.EnvMetrics} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvThemeVariant, "dark")

	cfg, err := config.Load(filepath.Join("testdata", "console.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wantAPI := config.APIConfig{
		BaseURL:   "http://localhost:5000",
		Timeout:   3 * time.Second,
		RateLimit: 5,
		Burst:     2,
		Validate:  false,
	}
	if diff := cmp.Diff(wantAPI, cfg.API); diff != "" {
		t.Fatalf("api mismatch (-want +got):\n%s", diff)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" || !cfg.Server.Metrics {
		t.Fatalf("unexpected server %+v", cfg.Server)
	}
	// untouched keys keep their defaults
	if got := cfg.Server.Hints["item_price"]; got != "Whole units only" {
		t.Fatalf("hint = %q", got)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParse_RejectsBadYAML(t *testing.T) {
	if _, err := config.Parse([]byte("api: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := config.Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		config.EnvAPIURL:       "https://wishlists.example.com/",
		config.EnvAPITimeout:   "750ms",
		config.EnvRateLimit:    "2.5",
		config.EnvRateBurst:    "4",
		config.EnvAddr:         ":9000",
		config.EnvMetrics:      "true",
		config.EnvThemeVariant: "",
	}))
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}

	if cfg.API.BaseURL != "https://wishlists.example.com/" ||
		cfg.API.Timeout != 750*time.Millisecond ||
		cfg.API.RateLimit != 2.5 ||
		cfg.API.Burst != 4 {
		t.Fatalf("unexpected api %+v", cfg.API)
	}
	if cfg.Server.Addr != ":9000" || !cfg.Server.Metrics {
		t.Fatalf("unexpected server %+v", cfg.Server)
	}
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	for _, key := range []string{config.EnvAPITimeout, config.EnvRateLimit, config.EnvRateBurst, config.EnvMetrics} {
		cfg := config.Default()
		if err := cfg.ApplyEnv(envMap(map[string]string{key: "bogus"})); err == nil {
			t.Fatalf("%s: expected error", key)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("WISHLIST_ADDR=:7070\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(config.EnvAddr, "")
	os.Unsetenv(config.EnvAddr)

	if err := config.LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv(config.EnvAddr); got != ":7070" {
		t.Fatalf("WISHLIST_ADDR = %q", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		cfg := config.Default()
		cfg.API.BaseURL = "http://localhost:5000"
		return cfg
	}

	cases := map[string]func(*config.Config){
		"relative url":     func(c *config.Config) { c.API.BaseURL = "/wishlists" },
		"negative rate":    func(c *config.Config) { c.API.RateLimit = -1 },
		"negative burst":   func(c *config.Config) { c.API.Burst = -1 },
		"negative timeout": func(c *config.Config) { c.API.Timeout = -time.Second },
		"negative idle":    func(c *config.Config) { c.Server.IdleTimeout = -time.Second },
		"unknown variant": func(c *config.Config) {
			c.Theme = config.ThemeConfig{Name: "acme", Variant: "neon"}
		},
		"variant without theme": func(c *config.Config) { c.Theme.Variant = "dark" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, config.ErrInvalid) {
				t.Fatalf("validate = %v, want ErrInvalid", err)
			}
		})
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestThemeRendererConfig(t *testing.T) {
	cfg, err := config.Parse([]byte(`
theme:
  name: acme
  variant: dark
  stylesheet: /static/acme.css
  tokens:
    brand: "#123456"
    surface: "#ffffff"
  variants:
    dark:
      surface: "#111111"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	rc, err := cfg.Theme.RendererConfig()
	if err != nil {
		t.Fatalf("renderer config: %v", err)
	}
	if rc.Theme != "acme" || rc.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", rc.Theme, rc.Variant)
	}
	want := map[string]string{"--brand": "#123456", "--surface": "#111111"}
	if diff := cmp.Diff(want, rc.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := rc.AssetURL("stylesheet"); got != "/static/acme.css" {
		t.Fatalf("stylesheet = %q", got)
	}
}

func TestThemeRendererConfig_StylesheetURLs(t *testing.T) {
	for _, ref := range []string{
		"/static/acme.css",
		"/acme.css",
		"https://cdn.example.com/themes/acme.css",
		"acme.css",
	} {
		tc := config.ThemeConfig{Name: "acme", Stylesheet: ref}
		rc, err := tc.RendererConfig()
		if err != nil {
			t.Fatalf("%s: renderer config: %v", ref, err)
		}
		if got := rc.AssetURL("stylesheet"); got != ref {
			t.Fatalf("stylesheet = %q, want %q", got, ref)
		}
	}
}

func TestThemeRendererConfig_NoTheme(t *testing.T) {
	rc, err := config.Default().Theme.RendererConfig()
	if err != nil || rc != nil {
		t.Fatalf("expected nil config, got %v, %v", rc, err)
	}
}

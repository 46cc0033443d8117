package render_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wishlist-console/pkg/render"
)

func testManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "wishlist",
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent": "#2563eb",
			"flash":  "#fef3c7",
		},
		Templates: map[string]string{
			"page": "page.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "wishlist.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"accent": "#93c5fd",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "wishlist.dark.css",
					},
				},
			},
		},
	}
}

func TestSelectTheme_RejectsUnknownVariant(t *testing.T) {
	if _, err := render.SelectTheme(testManifest(), "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := render.SelectTheme(nil, ""); err == nil {
		t.Fatalf("expected nil manifest error")
	}
}

func TestSelectTheme_MergesVariant(t *testing.T) {
	cfg, err := render.SelectTheme(testManifest(), "dark")
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}

	wantVars := map[string]string{"--accent": "#93c5fd", "--flash": "#fef3c7"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/wishlist.dark.css" {
		t.Fatalf("asset url: %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
	if cfg.Theme != "wishlist" || cfg.Variant != "dark" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestSelectTheme_BaseVariant(t *testing.T) {
	cfg, err := render.SelectTheme(testManifest(), "  ")
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}
	wantVars := map[string]string{"--accent": "#2563eb", "--flash": "#fef3c7"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/wishlist.css" {
		t.Fatalf("asset url: %q", got)
	}
}

func TestCSSVarsStyle_IsSorted(t *testing.T) {
	got := render.CSSVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	want := ":root {\n  --a: 1;\n  --b: 2;\n}"
	if got != want {
		t.Fatalf("style mismatch\nwant: %q\n got: %q", want, got)
	}
	if render.CSSVarsStyle(nil) != "" {
		t.Fatalf("expected empty style for no vars")
	}
	if !strings.HasPrefix(render.CSSVarsStyle(map[string]string{"--x": "y"}), ":root") {
		t.Fatalf("expected :root rule")
	}
}

package vanilla_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-wishlist-console/pkg/apispec"
	"github.com/goliatone/go-wishlist-console/pkg/render"
	"github.com/goliatone/go-wishlist-console/pkg/renderers/vanilla"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
	"github.com/goliatone/go-wishlist-console/pkg/wishlist"
	theme "github.com/goliatone/go-theme"
)

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	r, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderPage(t *testing.T, r *vanilla.Renderer, page *surface.Page, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(context.Background(), page, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_EmptyPageExposesElementContract(t *testing.T) {
	r := newRenderer(t)
	html := renderPage(t, r, surface.NewPage(), render.RenderOptions{})

	if r.ContentType() != "text/html; charset=utf-8" || r.Name() != "vanilla" {
		t.Fatalf("unexpected renderer identity")
	}
	for _, element := range surface.AllFields() {
		assertContains(t, html, `id="`+element+`"`, `name="`+element+`"`)
	}
	for _, action := range surface.Actions() {
		assertContains(t, html, `id="`+action.Button()+`" name="action" value="`+string(action)+`"`)
	}
	assertContains(t, html,
		`<div id="flash_message"`,
		`<table id="wishlist_results" class="wishlist-table" hidden>`,
		`<table id="wishlist_items" class="wishlist-table" hidden>`,
		`<title>Wishlist Demo REST API Service</title>`,
		`action="/"`,
	)
}

func TestRenderer_RendersTablesAndFlash(t *testing.T) {
	r := newRenderer(t)
	page := surface.NewPage()
	page.Flash = "Success"
	page.Set(surface.FieldWishlistName, `gifts & "more"`)
	page.Set(surface.FieldWishlistEnabled, "true")
	page.Results = []wishlist.Wishlist{{ID: 3, Name: "gifts", UserID: 9, CreatedAt: "2024-01-01", LastUpdated: "2024-01-02", Enabled: true}}
	page.ShowResults = true
	page.Items = []wishlist.Item{{ID: 1, WishlistID: 3, Name: "dune", Category: "books", Price: 12, Description: "**signed** <script>alert(1)</script>"}}
	page.ItemsTitle = "Items in Wishlist 3"
	page.ShowItems = true

	html := renderPage(t, r, page, render.RenderOptions{Title: "Wishlists"})

	assertContains(t, html,
		`>Success</div>`,
		`value="gifts &amp; &quot;more&quot;"`,
		`<option value="true" selected>true</option>`,
		`<table id="wishlist_results" class="wishlist-table">`,
		`<td>3</td><td>gifts</td><td>9</td><td>2024-01-01</td><td>2024-01-02</td><td>true</td>`,
		`<h3 id="items_title">Items in Wishlist 3</h3>`,
		`<td>1</td><td>dune</td><td>books</td><td>12</td>`,
		`<strong>signed</strong>`,
		`<title>Wishlists</title>`,
	)
	if strings.Contains(html, "<script>") {
		t.Fatalf("description markup must be sanitized\n%s", html)
	}
}

func TestRenderer_AnnotatesInputsFromForms(t *testing.T) {
	forms, err := surface.Forms(apispec.MustDefault())
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	html := renderPage(t, newRenderer(t), surface.NewPage(), render.RenderOptions{Forms: forms})

	assertContains(t, html,
		`<input type="text" id="wishlist_name" name="wishlist_name" value="" maxlength="64"`,
		`<input type="number" id="item_price" name="item_price" value="" min="0"`,
	)
}

func TestRenderer_ThemeAndStyles(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "wishlist",
		Version: "1.0.0",
		Tokens:  map[string]string{"accent": "#123456"},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files:  map[string]string{"stylesheet": "wishlist.css"},
		},
	}
	cfg, err := render.SelectTheme(manifest, "")
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}
	r := newRenderer(t, vanilla.WithDefaultStyles(), vanilla.WithStylesheet("/custom.css"))
	html := renderPage(t, r, surface.NewPage(), render.RenderOptions{Theme: cfg})

	assertContains(t, html,
		`<link rel="stylesheet" href="/custom.css">`,
		`<link rel="stylesheet" href="/assets/wishlist.css">`,
		`--accent: #123456;`,
		`data-theme="wishlist"`,
		`.wishlist-flash`,
	)
}

func TestRenderer_ActionSubset(t *testing.T) {
	html := renderPage(t, newRenderer(t), surface.NewPage(), render.RenderOptions{
		Actions: []surface.Action{surface.ActionSearch},
	})
	assertContains(t, html, `id="search-btn"`)
	if strings.Contains(html, `id="create-btn"`) || strings.Contains(html, `id="create-item-btn"`) {
		t.Fatalf("unexpected buttons rendered\n%s", html)
	}
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".wishlist-page") {
		t.Fatalf("stylesheet missing page rules")
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := vanilla.RenderMarkdown("a [link](http://example.com) and <b>raw</b>")
	if !strings.Contains(got, `href="http://example.com"`) {
		t.Fatalf("expected link, got %q", got)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("raw html must be dropped, got %q", got)
	}
	if vanilla.RenderMarkdown("   ") != "" {
		t.Fatalf("expected empty output for blank input")
	}
}

func TestRenderer_TemplatesDirOverridesBundle(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	page := `<h1>{{ title }}</h1><p>{{ flash }}</p>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.tmpl"), []byte(page), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	r := newRenderer(t, vanilla.WithTemplatesDir(dir))
	p := surface.NewPage()
	p.Flash = "Success"
	got := renderPage(t, r, p, render.RenderOptions{Title: "Custom"})
	if got != "<h1>Custom</h1><p>Success</p>" {
		t.Fatalf("render = %q", got)
	}
}

func TestRenderer_TemplatesDirMissingPage(t *testing.T) {
	r := newRenderer(t, vanilla.WithTemplatesDir(t.TempDir()))
	if _, err := r.Render(context.Background(), surface.NewPage(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected an error for a directory without templates")
	}
}

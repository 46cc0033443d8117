package console_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	console "github.com/goliatone/go-wishlist-console"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
	"github.com/goliatone/go-wishlist-console/pkg/testsupport"
)

func TestRenderPage_CreatesAndRendersHTML(t *testing.T) {
	api, srv := testsupport.StartFakeAPI(t)
	t.Setenv("WISHLIST_API_URL", srv.URL)

	cfg, err := console.LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	page := surface.NewPage()
	page.Set(surface.FieldWishlistName, "garden")
	page.Set(surface.FieldWishlistUID, "3")

	out, err := console.RenderPage(context.Background(), cfg, surface.ActionCreate, page, "")
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if !strings.Contains(string(out), "<!DOCTYPE html>") {
		t.Fatalf("expected HTML output")
	}
	if _, ok := api.Wishlist(1); !ok {
		t.Fatalf("expected wishlist to be created")
	}
}

func TestLoadConfig_RequiresBaseURL(t *testing.T) {
	t.Setenv("WISHLIST_API_URL", "")
	if _, err := console.LoadConfig(""); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestEmbeddedFiles(t *testing.T) {
	if _, err := fs.Stat(console.EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("page template: %v", err)
	}
	if _, err := fs.Stat(console.AssetsFS(), "wishlist.css"); err != nil {
		t.Fatalf("stylesheet: %v", err)
	}
}

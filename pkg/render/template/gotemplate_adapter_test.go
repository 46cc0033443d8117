package template_test

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-wishlist-console/pkg/render/template/gotemplate"
	"github.com/goliatone/go-wishlist-console/pkg/testsupport"
	"github.com/goliatone/go-wishlist-console/pkg/wishlist"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func TestEngine_Render(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	if err := engine.Render(&buf, "hello", map[string]any{"name": "Ada"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, "hello", buf.String())
}

func TestEngine_Globals(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobals(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	got, err := engine.RenderString("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, "use-global", got)
}

func TestEngine_Filter(t *testing.T) {
	engine := newEngine(t)
	err := engine.EnsureFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.Filter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter to be rejected")
	}

	got, err := engine.RenderString("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, "use-filter", got)
}

func TestEngine_StructsUseJSONNames(t *testing.T) {
	engine := newEngine(t)
	data := map[string]any{
		"wishlist": wishlist.Wishlist{
			Name:   "gifts",
			UserID: 7,
			Items:  []wishlist.Item{{Name: " book "}, {Name: "pen"}},
		},
	}

	got, err := engine.RenderString("struct.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, "struct", got)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestEngine_RenderErrors(t *testing.T) {
	engine := newEngine(t)
	if err := engine.Render(&bytes.Buffer{}, "missing", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
	if err := engine.Render(failingWriter{}, "hello", map[string]any{"name": "x"}); err == nil {
		t.Fatalf("expected writer error")
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

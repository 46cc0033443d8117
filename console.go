// Package console is the top-level entry point of the wishlist console. It
// re-exports the orchestrator so callers can embed the console with a single
// import.
package console

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-wishlist-console/pkg/config"
	"github.com/goliatone/go-wishlist-console/pkg/orchestrator"
	"github.com/goliatone/go-wishlist-console/pkg/renderers/vanilla"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

// Config aliases config.Config.
type Config = config.Config

// Page aliases surface.Page.
type Page = surface.Page

// Action aliases surface.Action.
type Action = surface.Action

// LoadConfig reads defaults, the optional YAML file at path and the
// environment, then validates the result.
func LoadConfig(path string) (Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(cfg Config, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(cfg, options...)
}

// RenderPage runs action against page and renders the result with the named
// renderer ("vanilla" for HTML, "tui" for text). An empty action renders the
// page unchanged.
func RenderPage(ctx context.Context, cfg Config, action Action, page *Page, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	o, err := orchestrator.New(cfg, options...)
	if err != nil {
		return nil, err
	}
	return o.Generate(ctx, orchestrator.Request{
		Action:   action,
		Page:     page,
		Renderer: rendererName,
	})
}

// EmbeddedTemplates exposes the built-in page templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet for mounting under /assets/.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

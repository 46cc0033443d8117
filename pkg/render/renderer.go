package render

import (
	"context"

	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

// Renderer converts a surface Page into a byte representation (HTML, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page *surface.Page, options RenderOptions) ([]byte, error)
}

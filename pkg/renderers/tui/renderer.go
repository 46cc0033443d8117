package tui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/goliatone/go-wishlist-console/pkg/render"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

// Renderer prints a Page as plain text: flash line, form values, then the
// visible tables.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer returns a text renderer.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page *surface.Page, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == nil {
		page = surface.NewPage()
	}

	var buf bytes.Buffer
	if opts.Title != "" {
		fmt.Fprintf(&buf, "%s%s\n\n", r.theme.TitlePrefix, opts.Title)
	}
	if page.Flash != "" {
		fmt.Fprintf(&buf, "%s%s\n\n", r.theme.FlashPrefix, page.Flash)
	}

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, element := range surface.AllFields() {
		fmt.Fprintf(tw, "%s:\t%s\n", surface.Label(element), page.Get(element))
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("tui: render fields: %w", err)
	}

	if page.ShowResults {
		fmt.Fprintf(&buf, "\n%sSearch Results\n", r.theme.TitlePrefix)
		tw = tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tName\tUser ID\tCreated At\tLast Updated\tEnabled")
		for _, w := range page.Results {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
				w.ID, w.Name, w.UserID, w.CreatedAt, w.LastUpdated, strconv.FormatBool(w.Enabled))
		}
		if err := tw.Flush(); err != nil {
			return nil, fmt.Errorf("tui: render results: %w", err)
		}
	}

	if page.ShowItems {
		fmt.Fprintf(&buf, "\n%s%s\n", r.theme.TitlePrefix, page.ItemsTitle)
		tw = tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tName\tCategory\tPrice\tDescription")
		for _, item := range page.Items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
				item.ID, item.Name, item.Category, item.Price, item.Description)
		}
		if err := tw.Flush(); err != nil {
			return nil, fmt.Errorf("tui: render items: %w", err)
		}
	}

	return buf.Bytes(), nil
}

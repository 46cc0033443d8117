package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/goliatone/go-wishlist-console/pkg/model"
	"github.com/goliatone/go-wishlist-console/pkg/render"
	rendertemplate "github.com/goliatone/go-wishlist-console/pkg/render/template"
	gotemplate "github.com/goliatone/go-wishlist-console/pkg/render/template/gotemplate"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
	"github.com/goliatone/go-wishlist-console/pkg/wishlist"
)

const (
	defaultTitle  = "Wishlist Demo REST API Service"
	pageTemplate  = "templates/page.tmpl"
	defaultAction = "/"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS   fs.FS
	templatesDir string
	inlineStyles bool
	stylesheets  []string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk instead of the
// embedded bundle. The directory must hold templates/page.tmpl and
// templates/field.tmpl. An empty dir keeps the bundle.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(dir)
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the page head.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet. May be repeated.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// Renderer renders the wishlist page as HTML.
type Renderer struct {
	templates    rendertemplate.Renderer
	inlineStyles bool
	stylesheets  []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	source := gotemplate.WithFS(cfg.templateFS)
	if cfg.templatesDir != "" {
		source = gotemplate.WithDir(cfg.templatesDir)
	}
	engine, err := gotemplate.New(source)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}
	if err := engine.EnsureFilter("sanitized_markdown", markdownFilter); err != nil {
		return nil, fmt.Errorf("vanilla renderer: register markdown filter: %w", err)
	}

	return &Renderer{
		templates:    engine,
		inlineStyles: cfg.inlineStyles,
		stylesheets:  append([]string(nil), cfg.stylesheets...),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page *surface.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == nil {
		page = surface.NewPage()
	}

	var buf bytes.Buffer
	if err := r.templates.Render(&buf, pageTemplate, r.view(page, options)); err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return buf.Bytes(), nil
}

type fieldView struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Value       string   `json:"value"`
	Kind        string   `json:"kind"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required"`
	MaxLength   string   `json:"max_length,omitempty"`
	Min         string   `json:"min,omitempty"`
	Description string   `json:"description,omitempty"`
}

type actionView struct {
	Name   string `json:"name"`
	Button string `json:"button"`
	Label  string `json:"label"`
}

type resultRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UserID      string `json:"user_id"`
	CreatedAt   string `json:"created_at"`
	LastUpdated string `json:"last_updated"`
	Enabled     string `json:"is_enabled"`
}

type itemRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

type themeView struct {
	Name       string `json:"name,omitempty"`
	Variant    string `json:"variant,omitempty"`
	Style      string `json:"style,omitempty"`
	Stylesheet string `json:"stylesheet,omitempty"`
}

func (r *Renderer) view(page *surface.Page, options render.RenderOptions) map[string]any {
	title := options.Title
	if title == "" {
		title = defaultTitle
	}
	formAction := options.FormAction
	if formAction == "" {
		formAction = defaultAction
	}

	var wishlistActions, itemActions []actionView
	for _, action := range options.ActionsOrDefault() {
		view := actionView{Name: string(action), Button: action.Button(), Label: action.Label()}
		if isItemAction(action) {
			itemActions = append(itemActions, view)
			continue
		}
		wishlistActions = append(wishlistActions, view)
	}

	data := map[string]any{
		"title":            title,
		"form_action":      formAction,
		"flash":            page.Flash,
		"wishlist_fields":  fieldViews(page, surface.WishlistFields, options),
		"item_fields":      fieldViews(page, surface.ItemFields, options),
		"wishlist_actions": wishlistActions,
		"item_actions":     itemActions,
		"results_visible":  page.ShowResults,
		"results":          resultRows(page.Results),
		"items_visible":    page.ShowItems,
		"items_title":      page.ItemsTitle,
		"items":            itemRows(page.Items),
		"classes":          chromeClasses(),
		"stylesheets":      r.stylesheets,
		"theme":            themeFrom(options),
	}
	if r.inlineStyles {
		data["inline_styles"] = defaultStylesheet()
	}
	return data
}

func isItemAction(action surface.Action) bool {
	switch action {
	case surface.ActionCreateItem, surface.ActionRetrieveItem, surface.ActionUpdateItem,
		surface.ActionDeleteItem, surface.ActionClearItem:
		return true
	default:
		return false
	}
}

func fieldViews(page *surface.Page, elements []string, options render.RenderOptions) []fieldView {
	out := make([]fieldView, 0, len(elements))
	for _, element := range elements {
		view := fieldView{
			ID:    element,
			Label: surface.Label(element),
			Value: page.Get(element),
			Kind:  "text",
		}
		if field, ok := options.FieldConstraints(element); ok {
			applyConstraints(&view, field)
		}
		if element == surface.FieldWishlistEnabled {
			view.Kind = "select"
			view.Options = []string{"true", "false"}
		}
		out = append(out, view)
	}
	return out
}

func applyConstraints(view *fieldView, field model.Field) {
	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		view.Kind = "number"
	}
	view.Description = field.Description
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMaxLength:
			view.MaxLength = rule.Params["value"]
		case model.ValidationRuleMin:
			view.Min = rule.Params["value"]
		}
	}
}

func resultRows(results []wishlist.Wishlist) []resultRow {
	rows := make([]resultRow, 0, len(results))
	for _, w := range results {
		rows = append(rows, resultRow{
			ID:          strconv.FormatInt(w.ID, 10),
			Name:        w.Name,
			UserID:      strconv.FormatInt(w.UserID, 10),
			CreatedAt:   w.CreatedAt,
			LastUpdated: w.LastUpdated,
			Enabled:     strconv.FormatBool(w.Enabled),
		})
	}
	return rows
}

func itemRows(items []wishlist.Item) []itemRow {
	rows := make([]itemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow{
			ID:          strconv.FormatInt(item.ID, 10),
			Name:        item.Name,
			Category:    item.Category,
			Price:       strconv.FormatInt(item.Price, 10),
			Description: item.Description,
		})
	}
	return rows
}

func themeFrom(options render.RenderOptions) themeView {
	cfg := options.Theme
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   render.CSSVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL("stylesheet")
	}
	return view
}

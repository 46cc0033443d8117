package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wishlist-console/pkg/apispec"
	"github.com/goliatone/go-wishlist-console/pkg/client"
	"github.com/goliatone/go-wishlist-console/pkg/config"
	"github.com/goliatone/go-wishlist-console/pkg/model"
	"github.com/goliatone/go-wishlist-console/pkg/render"
	"github.com/goliatone/go-wishlist-console/pkg/renderers/tui"
	"github.com/goliatone/go-wishlist-console/pkg/renderers/vanilla"
	"github.com/goliatone/go-wishlist-console/pkg/server"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator.
type Option func(*Orchestrator)

// WithSpec injects a pre-loaded OpenAPI document instead of reading
// config.API.Spec or the embedded one.
func WithSpec(spec *apispec.Spec) Option {
	return func(o *Orchestrator) {
		o.spec = spec
	}
}

// WithAPI replaces the HTTP client, mostly for tests.
func WithAPI(api surface.API) Option {
	return func(o *Orchestrator) {
		o.api = api
	}
}

// WithHTTPClient sets the transport used by the generated client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Orchestrator) {
		o.httpClient = c
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithMetricsRegistry records client and server metrics on reg. When unset
// and config.Server.Metrics is true a fresh registry is created.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(o *Orchestrator) {
		o.metrics = reg
	}
}

// WithFormDecorators registers decorators run over every form model after it
// is built from the API document.
func WithFormDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator holds the assembled console.
type Orchestrator struct {
	cfg             config.Config
	spec            *apispec.Spec
	api             surface.API
	httpClient      *http.Client
	surface         *surface.Surface
	forms           map[surface.Action]model.FormModel
	theme           *theme.RendererConfig
	registry        *render.Registry
	defaultRenderer string
	metrics         *prometheus.Registry
	decorators      []model.Decorator
}

// New validates cfg and assembles the console.
func New(cfg config.Config, options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		cfg:             cfg,
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if err := o.applyDefaults(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orchestrator) applyDefaults() error {
	if o.api == nil {
		if err := o.cfg.Validate(); err != nil {
			return err
		}
	}
	if o.metrics == nil && o.cfg.Server.Metrics {
		o.metrics = prometheus.NewRegistry()
	}

	if o.spec == nil {
		spec, err := loadSpec(o.cfg.API.Spec)
		if err != nil {
			return err
		}
		o.spec = spec
	}

	forms, err := surface.Forms(o.spec)
	if err != nil {
		return fmt.Errorf("orchestrator: build forms: %w", err)
	}
	if err := o.applyDecorators(forms); err != nil {
		return err
	}
	o.forms = forms

	if o.api == nil {
		c, err := client.New(o.cfg.API.BaseURL, o.clientOptions()...)
		if err != nil {
			return fmt.Errorf("orchestrator: %w", err)
		}
		o.api = c
	}
	o.surface = surface.New(o.api)

	themeCfg, err := o.cfg.Theme.RendererConfig()
	if err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}
	o.theme = themeCfg

	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	if !o.registry.Has(defaultRendererName) {
		html, err := vanilla.New(
			vanilla.WithStylesheet("/assets/"+vanilla.StylesheetName),
			vanilla.WithTemplatesDir(o.cfg.Server.Templates),
		)
		if err != nil {
			return fmt.Errorf("orchestrator: %w", err)
		}
		if err := o.registry.Register(html); err != nil {
			return fmt.Errorf("orchestrator: %w", err)
		}
	}
	text := tui.NewRenderer(tui.Theme{})
	if !o.registry.Has(text.Name()) {
		if err := o.registry.Register(text); err != nil {
			return fmt.Errorf("orchestrator: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDecorators(forms map[surface.Action]model.FormModel) error {
	decorators := o.decorators
	if len(o.cfg.Server.Hints) > 0 {
		decorators = append([]model.Decorator{model.Hints(o.cfg.Server.Hints)}, decorators...)
	}
	if len(decorators) == 0 {
		return nil
	}
	decorate := model.Chain(decorators...)
	for _, action := range surface.Actions() {
		form, ok := forms[action]
		if !ok {
			continue
		}
		if err := decorate.Decorate(&form); err != nil {
			return fmt.Errorf("orchestrator: decorate %s form: %w", action, err)
		}
		forms[action] = form
	}
	return nil
}

func (o *Orchestrator) clientOptions() []client.Option {
	opts := []client.Option{
		client.WithTimeout(o.cfg.API.Timeout),
	}
	if o.httpClient != nil {
		opts = append(opts, client.WithHTTPClient(o.httpClient))
	}
	if o.cfg.API.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(o.cfg.API.RateLimit, o.cfg.API.Burst))
	}
	if o.cfg.API.Validate {
		opts = append(opts, client.WithValidator(o.spec))
	}
	if o.metrics != nil {
		opts = append(opts, client.WithMetrics(o.metrics))
	}
	return opts
}

func loadSpec(path string) (*apispec.Spec, error) {
	if path == "" {
		spec, err := apispec.Default()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load embedded api document: %w", err)
		}
		return spec, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read api document: %w", err)
	}
	spec, err := apispec.Load(context.Background(), data)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load api document %s: %w", path, err)
	}
	return spec, nil
}

// Config returns the configuration the console was built from.
func (o *Orchestrator) Config() config.Config { return o.cfg }

// Surface returns the control surface.
func (o *Orchestrator) Surface() *surface.Surface { return o.surface }

// Spec returns the API description the console validates against.
func (o *Orchestrator) Spec() *apispec.Spec { return o.spec }

// Forms returns the per-action form models.
func (o *Orchestrator) Forms() map[surface.Action]model.FormModel { return o.forms }

// Theme returns the resolved theme, or nil.
func (o *Orchestrator) Theme() *theme.RendererConfig { return o.theme }

// Metrics returns the metrics registry, or nil when metrics are disabled.
func (o *Orchestrator) Metrics() *prometheus.Registry { return o.metrics }

// Registry returns the renderer registry.
func (o *Orchestrator) Registry() *render.Registry { return o.registry }

// Request describes one action run plus the rendering of its result.
type Request struct {
	// Action to run. Empty renders the page as is.
	Action surface.Action
	// Page is mutated in place. Nil starts from an empty page.
	Page *surface.Page
	// Renderer names the renderer; empty uses the default.
	Renderer string
}

// Generate runs req.Action against req.Page and renders the result.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page := req.Page
	if page == nil {
		page = surface.NewPage()
	}
	if req.Action != "" {
		if err := o.surface.Do(ctx, req.Action, page); err != nil {
			return nil, err
		}
	}

	name := req.Renderer
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer.Render(ctx, page, o.renderOptions())
}

func (o *Orchestrator) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Title:      o.cfg.Server.Title,
		Forms:      o.forms,
		Theme:      o.theme,
		FormAction: "/",
	}
}

// Server builds the web console. Extra options are applied after the ones
// derived from configuration.
func (o *Orchestrator) Server(extra ...server.Option) (*server.Server, error) {
	renderer, err := o.registry.Get(defaultRendererName)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	sc := o.cfg.Server
	opts := []server.Option{
		server.WithAddr(sc.Addr),
		server.WithTimeouts(sc.ReadTimeout, sc.WriteTimeout, sc.IdleTimeout),
		server.WithShutdownTimeout(sc.ShutdownTimeout),
		server.WithAssets(vanilla.AssetsFS()),
		server.WithTitle(sc.Title),
		server.WithForms(o.forms),
		server.WithTheme(o.theme),
		server.WithRenderers(o.registry),
	}
	if o.metrics != nil {
		opts = append(opts, server.WithMetrics(o.metrics))
	}
	return server.New(o.surface, renderer, append(opts, extra...)...)
}

// Session builds a terminal session. Extra options are applied after the
// ones derived from configuration.
func (o *Orchestrator) Session(extra ...tui.Option) (*tui.Session, error) {
	opts := []tui.Option{
		tui.WithForms(o.forms),
		tui.WithTitle(o.cfg.Server.Title),
	}
	return tui.NewSession(o.surface, append(opts, extra...)...)
}

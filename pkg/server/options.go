package server

import (
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-wishlist-console/pkg/model"
	"github.com/goliatone/go-wishlist-console/pkg/render"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 30 * time.Second
)

// Options configures a Server. Use the With* helpers.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Registry enables /metrics and the request metrics middleware.
	Registry *prometheus.Registry
	// Assets is served under /assets/ when set.
	Assets fs.FS
	// AccessLog receives combined-format access log lines. Nil disables it.
	AccessLog io.Writer

	// Renderers, when set, lets an Accept header pick an alternative
	// rendering such as text/plain.
	Renderers *render.Registry

	Title string
	Theme *theme.RendererConfig
	Forms map[surface.Action]model.FormModel
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		Addr:            defaultAddr,
		ReadTimeout:     defaultReadTimeout,
		WriteTimeout:    defaultWriteTimeout,
		IdleTimeout:     defaultIdleTimeout,
		ShutdownTimeout: defaultShutdownTimeout,
		AccessLog:       os.Stdout,
	}
}

// NewOptions applies fns over the defaults and clamps invalid values.
func NewOptions(fns ...Option) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.Addr) == "" {
		opts.Addr = defaultAddr
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	return opts
}

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Options) {
		o.Addr = addr
	}
}

// WithTimeouts sets the http.Server read, write and idle timeouts.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(o *Options) {
		o.ReadTimeout = read
		o.WriteTimeout = write
		o.IdleTimeout = idle
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ShutdownTimeout = d
	}
}

// WithMetrics exposes reg on /metrics and records request metrics on it.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(o *Options) {
		o.Registry = reg
	}
}

// WithAssets serves files under /assets/.
func WithAssets(files fs.FS) Option {
	return func(o *Options) {
		o.Assets = files
	}
}

// WithAccessLog writes the access log to w. Nil disables it.
func WithAccessLog(w io.Writer) Option {
	return func(o *Options) {
		o.AccessLog = w
	}
}

// WithRenderers enables Accept based renderer negotiation.
func WithRenderers(registry *render.Registry) Option {
	return func(o *Options) {
		o.Renderers = registry
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithTheme passes a resolved theme to the renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Options) {
		o.Theme = cfg
	}
}

// WithForms passes field constraints to the renderer.
func WithForms(forms map[surface.Action]model.FormModel) Option {
	return func(o *Options) {
		o.Forms = forms
	}
}

package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "go-wishlist-console"
)

// BodyValidator checks a request payload before it is sent. *apispec.Spec
// satisfies it.
type BodyValidator interface {
	ValidateBody(operationID string, payload any) error
}

// Options collects client configuration. Use the With* helpers.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	RateLimit  float64
	Burst      int
	Validator  BodyValidator
	Registerer prometheus.Registerer
	UserAgent  string
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent,
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
	if opts.Timeout < 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit < 0 {
		opts.RateLimit = 0
	}
	if opts.RateLimit > 0 && opts.Burst <= 0 {
		opts.Burst = 1
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = defaultUserAgent
	}
	return opts
}

// WithHTTPClient overrides the transport. The client is copied; Timeout is
// only applied when the copy has none.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = c
	}
}

// WithTimeout bounds every request. Zero disables the client-level timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// Zero disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *Options) {
		o.RateLimit = rps
		o.Burst = burst
	}
}

// WithValidator validates request bodies before they are sent.
func WithValidator(v BodyValidator) Option {
	return func(o *Options) {
		o.Validator = v
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *Options) {
		o.Registerer = reg
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		o.UserAgent = ua
	}
}

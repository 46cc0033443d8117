package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-wishlist-console/pkg/render"
	"github.com/goliatone/go-wishlist-console/pkg/surface"
)

// ErrNilSurface is returned by New when no surface is supplied.
var ErrNilSurface = errors.New("server: surface is nil")

// Server is the web console.
type Server struct {
	opts     Options
	surface  *surface.Surface
	renderer render.Renderer
	metrics  *metrics
	router   *mux.Router
	handler  http.Handler
}

// New wires routes and middleware around s. renderer must produce the HTML
// page (see renderers/vanilla).
func New(s *surface.Surface, renderer render.Renderer, fns ...Option) (*Server, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	if renderer == nil {
		return nil, errors.New("server: renderer is nil")
	}

	srv := &Server{
		opts:     NewOptions(fns...),
		surface:  s,
		renderer: renderer,
		router:   mux.NewRouter(),
	}
	if srv.opts.Registry != nil {
		m, err := newMetrics(srv.opts.Registry)
		if err != nil {
			return nil, fmt.Errorf("server: register metrics: %w", err)
		}
		srv.metrics = m
	}

	srv.routes()
	srv.handler = srv.wrap(srv.router)
	return srv, nil
}

// Handler exposes the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr reports the configured listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

func (s *Server) routes() {
	r := s.router
	r.Use(requestID)
	if s.metrics != nil {
		r.Use(s.metrics.monitor)
	}

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/", handlers.ContentTypeHandler(
		http.HandlerFunc(s.handleAction),
		"application/x-www-form-urlencoded",
		"multipart/form-data",
	)).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet, http.MethodHead)

	if s.opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
	}
	if s.opts.Assets != nil {
		r.PathPrefix("/assets/").
			Handler(http.StripPrefix("/assets/", http.FileServer(http.FS(s.opts.Assets)))).
			Methods(http.MethodGet, http.MethodHead)
	}
}

func (s *Server) wrap(h http.Handler) http.Handler {
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.Default()),
		handlers.PrintRecoveryStack(true),
	)(h)
	if s.opts.AccessLog != nil {
		h = handlers.CombinedLoggingHandler(s.opts.AccessLog, h)
	}
	return h
}

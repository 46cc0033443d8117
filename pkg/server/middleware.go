package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-wishlist-console/internal/promreg"
	"github.com/goliatone/go-wishlist-console/pkg/client"
)

// RequestIDHeader carries the request id in and out of the console.
const RequestIDHeader = client.RequestIDHeader

// requestID reuses an inbound X-Request-ID or mints one, echoing it on the
// response. Calls to the wishlist service made while handling the request
// carry the same id.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := client.ContextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	actions  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wishlist_console_http_requests_total",
				Help: "Total number of HTTP requests served by the console",
			},
			[]string{"path", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wishlist_console_http_request_duration_seconds",
				Help:    "Duration of HTTP requests served by the console",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wishlist_console_actions_total",
				Help: "Button presses handled, by action and flash outcome",
			},
			[]string{"action", "outcome"},
		),
	}
	var err error
	if m.requests, err = promreg.Register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.duration, err = promreg.Register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.actions, err = promreg.Register(reg, m.actions); err != nil {
		return nil, err
	}
	return m, nil
}

// monitor records request counts and latency labelled by route template.
func (m *metrics) monitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		path := routeTemplate(r)
		m.requests.WithLabelValues(path, r.Method, strconv.Itoa(ww.statusCode)).Inc()
		m.duration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (m *metrics) action(action, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action, outcome).Inc()
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tpl
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

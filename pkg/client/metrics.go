package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-wishlist-console/internal/promreg"
)

// Metrics records request counts and latency per operation.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors on reg. Collectors already
// registered by another client are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_client_requests_total",
			Help: "Requests sent to the wishlist service",
		},
		[]string{"operation", "method", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wishlist_client_request_duration_seconds",
			Help:    "Latency of requests sent to the wishlist service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "method"},
	)

	var err error
	if requests, err = promreg.Register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = promreg.Register(reg, duration); err != nil {
		return nil, err
	}
	return &Metrics{requests: requests, duration: duration}, nil
}

func (m *Metrics) observe(op, method string, status int, started time.Time) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(op, method, label).Inc()
	m.duration.WithLabelValues(op, method).Observe(time.Since(started).Seconds())
}

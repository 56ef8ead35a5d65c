package router

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures router metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "verbosity").
	Namespace string

	// Subsystem is the metrics subsystem (default: "router").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures router metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the router's Prometheus collectors. Share one Metrics between
// all routers of a process; registering twice panics.
type Metrics struct {
	navigations *prometheus.CounterVec
	redirects   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates and registers router metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "verbosity",
		Subsystem: "router",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by resolved route and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "outcome"}),

		redirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redirects_total",
			Help:        "Total number of guard redirects followed, by final route",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation duration in seconds, including redirects and the view swap",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
	}
}

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeNoRoute      = "no_route"
	OutcomeRedirectLoop = "redirect_loop"
	OutcomeError        = "error"
)

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNoRoute):
		return OutcomeNoRoute
	case errors.Is(err, ErrRedirectLoop):
		return OutcomeRedirectLoop
	default:
		return OutcomeError
	}
}

// observe records one navigation. Unmatched paths are labeled with an empty
// route so path values never become label values.
func (m *Metrics) observe(route, result string, redirects int, d time.Duration) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(route, result).Inc()
	if redirects > 0 {
		m.redirects.WithLabelValues(route).Add(float64(redirects))
	}
	m.duration.WithLabelValues(route).Observe(d.Seconds())
}

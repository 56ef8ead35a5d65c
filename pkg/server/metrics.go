package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures session metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "verbosity").
	Namespace string

	// Subsystem is the metrics subsystem (default: "session").
	Subsystem string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures session metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the session Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	active      prometheus.Gauge
	total       prometheus.Counter
	receivedOps *prometheus.CounterVec
	sentOps     *prometheus.CounterVec
}

// NewMetrics creates and registers session metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "verbosity",
		Subsystem: "session",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "active",
			Help:      "Number of open sessions",
		}),
		total: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "created_total",
			Help:      "Total number of sessions accepted",
		}),
		receivedOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "messages_received_total",
			Help:      "Total number of client messages received, by op",
		}, []string{"op"}),
		sentOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "messages_sent_total",
			Help:      "Total number of server messages sent, by op",
		}, []string{"op"}),
	}
}

func (m *Metrics) opened() {
	if m == nil {
		return
	}
	m.active.Inc()
	m.total.Inc()
}

func (m *Metrics) closed() {
	if m == nil {
		return
	}
	m.active.Dec()
}

func (m *Metrics) received(op string) {
	if m == nil {
		return
	}
	m.receivedOps.WithLabelValues(op).Inc()
}

func (m *Metrics) sent(op string) {
	if m == nil {
		return
	}
	m.sentOps.WithLabelValues(op).Inc()
}

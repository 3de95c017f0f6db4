// Package metrics provides Prometheus metrics export for the summarizer and item store.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports service metrics in Prometheus format.
type PrometheusExporter struct {
	registry *prometheus.Registry

	// Summarize metrics
	summarizeRequests *prometheus.CounterVec
	summarizeLatency  *prometheus.HistogramVec

	// Item metrics
	itemOperations *prometheus.CounterVec
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.summarizeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alemeno",
			Subsystem: "ml",
			Name:      "summarize_requests_total",
			Help:      "Total number of summarize calls by result source",
		},
		[]string{"source"},
	)

	e.summarizeLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "alemeno",
			Subsystem: "ml",
			Name:      "summarize_latency_seconds",
			Help:      "Summarize latency in seconds by result source",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"source"},
	)

	e.itemOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alemeno",
			Subsystem: "store",
			Name:      "item_operations_total",
			Help:      "Total number of item operations",
		},
		[]string{"operation", "status"},
	)

	registry.MustRegister(
		e.summarizeRequests,
		e.summarizeLatency,
		e.itemOperations,
	)

	return e
}

// RecordSummarize records one summarize call.
func (e *PrometheusExporter) RecordSummarize(source string, latency time.Duration) {
	e.summarizeRequests.WithLabelValues(source).Inc()
	e.summarizeLatency.WithLabelValues(source).Observe(latency.Seconds())
}

// RecordItemOperation records an item store operation. Status is one of
// success, invalid, not_found or error.
func (e *PrometheusExporter) RecordItemOperation(operation, status string) {
	e.itemOperations.WithLabelValues(operation, status).Inc()
}

// Handler returns the HTTP handler for the metrics endpoint.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

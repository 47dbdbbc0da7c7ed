// Package metrics provides Prometheus metrics for the unistroke
// recognition service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recognition outcome labels.
const (
	OutcomeMatched    = "matched"
	OutcomeDegenerate = "degenerate_path"
	OutcomeTooShort   = "too_short"
	OutcomeNoTemplate = "no_templates"
)

// Manager holds all Prometheus metrics for the service.
type Manager struct {
	registry *prometheus.Registry

	recognitions       *prometheus.CounterVec
	recognitionLatency prometheus.Histogram
	templatesLoaded    prometheus.Gauge

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates a Manager with its own registry.
func New() *Manager {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Manager{
		registry: registry,
		recognitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unistroke",
			Name:      "recognitions_total",
			Help:      "Recognition attempts by outcome.",
		}, []string{"outcome"}),
		recognitionLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "unistroke",
			Name:      "recognition_duration_seconds",
			Help:      "Time spent normalizing and matching one stroke.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		templatesLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "unistroke",
			Name:      "templates_loaded",
			Help:      "Number of templates currently loaded for matching.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unistroke",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "unistroke",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Handler returns the HTTP handler exposing the metrics.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRecognition counts one recognition attempt and its duration.
func (m *Manager) RecordRecognition(outcome string, duration time.Duration) {
	m.recognitions.WithLabelValues(outcome).Inc()
	m.recognitionLatency.Observe(duration.Seconds())
}

// SetTemplatesLoaded updates the loaded-template gauge.
func (m *Manager) SetTemplatesLoaded(n int) {
	m.templatesLoaded.Set(float64(n))
}

// RecordHTTPRequest counts one HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

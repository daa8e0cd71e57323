// Package metrics provides Prometheus metrics for the ninebox calibration service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the ninebox service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Session lifecycle
	sessionsStarted prometheus.Counter
	sessionsClosed  prometheus.Counter
	activeSessions  prometheus.Gauge

	// Calibration activity
	moves       prometheus.Counter
	reverts     prometheus.Counter
	noteUpdates prometheus.Counter
	exports     prometheus.Counter

	// Intelligence
	analysisDuration prometheus.Histogram
	insights         *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ninebox",
		subsystem:        "calibration",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.sessionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Total number of calibration sessions started",
	})
	m.sessionsClosed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_closed_total",
		Help:      "Total number of calibration sessions closed",
	})
	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_sessions",
		Help:      "Number of sessions currently in progress",
	})

	m.moves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "moves_total",
		Help:      "Total number of grid moves applied",
	})
	m.reverts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reverts_total",
		Help:      "Total number of moves that returned a person to the original cell",
	})
	m.noteUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "note_updates_total",
		Help:      "Total number of notes edits",
	})
	m.exports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Total number of roster exports",
	})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_duration_milliseconds",
		Help:      "Histogram of full intelligence analysis duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.insights = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "insights_total",
			Help:      "Total number of anomaly insights emitted, by severity",
		},
		[]string{"severity"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers on the global manager.

// RecordSessionStarted increments the session start counter.
func RecordSessionStarted() {
	globalManager.sessionsStarted.Inc()
}

// RecordSessionClosed increments the session close counter.
func RecordSessionClosed() {
	globalManager.sessionsClosed.Inc()
}

// UpdateActiveSessions sets the in-progress session gauge.
func UpdateActiveSessions(n int) {
	globalManager.activeSessions.Set(float64(n))
}

// RecordMove increments the move counter.
func RecordMove() {
	globalManager.moves.Inc()
}

// RecordRevert increments the revert counter.
func RecordRevert() {
	globalManager.reverts.Inc()
}

// RecordNoteUpdate increments the notes-edit counter.
func RecordNoteUpdate() {
	globalManager.noteUpdates.Inc()
}

// RecordExport increments the export counter.
func RecordExport() {
	globalManager.exports.Inc()
}

// RecordAnalysis observes one full analysis duration.
func RecordAnalysis(durationMs float64) {
	globalManager.analysisDuration.Observe(durationMs)
}

// RecordInsight counts one emitted insight by severity.
func RecordInsight(severity string) {
	globalManager.insights.WithLabelValues(severity).Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the code hunt server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Request latency buckets in milliseconds. Puzzles answer in well under a
// millisecond, so the low end is dense.
var latencyBucketsMs = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000}

// Size buckets shared by the payload histograms. Puzzle inputs are small.
var sizeBuckets = []float64{0, 1, 2, 4, 8, 16, 20, 32, 64, 128}

// Manager manages all Prometheus metrics for the server.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestBytes    *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	// Puzzle Metrics
	puzzlesSolved *prometheus.CounterVec
	puzzleErrors  *prometheus.CounterVec
	packetSize    prometheus.Histogram
	herdSize      *prometheus.HistogramVec
	textLength    prometheus.Histogram

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "codehunt",
		subsystem:        "server",
		histogramBuckets: latencyBucketsMs,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestBytes = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_body_bytes",
			Help:        "Size of request bodies in bytes",
			Buckets:     prometheus.ExponentialBuckets(16, 4, 8),
			ConstLabels: constLabels,
		},
		[]string{"endpoint"},
	)

	m.httpInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_in_flight",
		Help:        "Number of HTTP requests currently being served",
		ConstLabels: constLabels,
	})

	m.puzzlesSolved = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "puzzles_solved_total",
			Help:        "Total number of puzzle answers produced, by puzzle",
			ConstLabels: constLabels,
		},
		[]string{"puzzle"},
	)

	m.puzzleErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "puzzle_errors_total",
			Help:        "Total number of rejected puzzle inputs, by puzzle and kind",
			ConstLabels: constLabels,
		},
		[]string{"puzzle", "kind"},
	)

	m.packetSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "packet_segments",
		Help:        "Number of integers in day 1 packets",
		Buckets:     sizeBuckets,
		ConstLabels: constLabels,
	})

	m.herdSize = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "herd_size",
			Help:        "Number of reindeer per day 4 request",
			Buckets:     sizeBuckets,
			ConstLabels: constLabels,
		},
		[]string{"puzzle"},
	)

	m.textLength = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "text_length_bytes",
		Help:        "Length of day 6 text bodies in bytes",
		Buckets:     prometheus.ExponentialBuckets(16, 4, 8),
		ConstLabels: constLabels,
	})

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type and severity",
			ConstLabels: constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by endpoint",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: constLabels,
	})
}

// Enabled reports whether the manager records anything.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RecordHTTPRequest increments the HTTP request counter.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRequestBytes observes a request body size.
func (m *Manager) RecordRequestBytes(endpoint string, n int64) {
	if !m.enabled {
		return
	}
	m.httpRequestBytes.WithLabelValues(endpoint).Observe(float64(n))
}

// AddInFlight moves the in-flight gauge by delta.
func (m *Manager) AddInFlight(delta float64) {
	if !m.enabled {
		return
	}
	m.httpInFlight.Add(delta)
}

// RecordPuzzleSolved counts an answered puzzle.
func (m *Manager) RecordPuzzleSolved(puzzle string) {
	if !m.enabled {
		return
	}
	m.puzzlesSolved.WithLabelValues(puzzle).Inc()
}

// RecordPuzzleError counts a rejected puzzle input.
func (m *Manager) RecordPuzzleError(puzzle, kind string) {
	if !m.enabled {
		return
	}
	m.puzzleErrors.WithLabelValues(puzzle, kind).Inc()
}

// RecordPacketSize observes the length of a day 1 packet.
func (m *Manager) RecordPacketSize(n int) {
	if !m.enabled {
		return
	}
	m.packetSize.Observe(float64(n))
}

// RecordHerdSize observes the number of reindeer in a request.
func (m *Manager) RecordHerdSize(puzzle string, n int) {
	if !m.enabled {
		return
	}
	m.herdSize.WithLabelValues(puzzle).Observe(float64(n))
}

// RecordTextLength observes the length of a day 6 text.
func (m *Manager) RecordTextLength(n int) {
	if !m.enabled {
		return
	}
	m.textLength.Observe(float64(n))
}

// RecordError counts an error by type, severity and endpoint.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystem sets the system gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// Global returns the process-wide manager bound to GetRegistry.
func Global() *Manager {
	return globalManager
}

// Init replaces the global manager with one built from opts on a fresh
// custom registry and returns it. Call it once at startup, before handlers
// capture Global or GetRegistry.
func Init(opts ...Option) *Manager {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(customRegistry))...)
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

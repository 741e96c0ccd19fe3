// Package metrics provides Prometheus metrics for the activities service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metric naming.
const (
	defaultNamespace = "mergington"
	defaultSubsystem = "activities"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Roster metrics
	signups          *prometheus.CounterVec
	removals         *prometheus.CounterVec
	rejections       *prometheus.CounterVec
	participants     *prometheus.GaugeVec
	activities       prometheus.Gauge
	totalParticipant prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics manager

// customRegistry keeps the default Go collectors out of /metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.signups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "signups_total",
		Help:        "Total number of successful signups by activity",
		ConstLabels: m.constLabels,
	}, []string{"activity"})

	m.removals = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "removals_total",
		Help:        "Total number of participants removed by activity",
		ConstLabels: m.constLabels,
	}, []string{"activity"})

	m.rejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rejections_total",
		Help:        "Roster operations rejected, by operation and reason",
		ConstLabels: m.constLabels,
	}, []string{"operation", "reason"})

	m.participants = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "participants",
		Help:        "Current number of participants per activity",
		ConstLabels: m.constLabels,
	}, []string{"activity"})

	m.activities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "activity_count",
		Help:        "Number of activities in the directory",
		ConstLabels: m.constLabels,
	})

	m.totalParticipant = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "participants_total",
		Help:        "Number of enrolments across all activities",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "HTTP error responses by endpoint, method and error type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "HTTP error responses by error type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Current heap allocation in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutine_count",
		Help:        "Current number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
}

// RecordSignup counts a successful signup.
func (m *Manager) RecordSignup(activity string) { m.signups.WithLabelValues(activity).Inc() }

// RecordRemoval counts a successful removal.
func (m *Manager) RecordRemoval(activity string) { m.removals.WithLabelValues(activity).Inc() }

// RecordRejection counts a rejected roster operation.
func (m *Manager) RecordRejection(operation, reason string) {
	m.rejections.WithLabelValues(operation, reason).Inc()
}

// UpdateParticipants sets the roster size gauge of one activity.
func (m *Manager) UpdateParticipants(activity string, count int) {
	m.participants.WithLabelValues(activity).Set(float64(count))
}

// UpdateActivityCount sets the directory size gauge.
func (m *Manager) UpdateActivityCount(count int) { m.activities.Set(float64(count)) }

// UpdateTotalParticipants sets the enrolment total gauge.
func (m *Manager) UpdateTotalParticipants(count int) { m.totalParticipant.Set(float64(count)) }

// RecordHTTPRequest counts one served request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError counts one error response.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string) {
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystem records runtime memory, goroutine and GC figures.
func (m *Manager) UpdateSystem(allocBytes uint64, goroutines int, avgGCPauseMs float64) {
	m.systemMemoryUsage.Set(float64(allocBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// Package-level helpers forward to the global manager.

func RecordSignup(activity string)                  { globalManager.RecordSignup(activity) }
func RecordRemoval(activity string)                 { globalManager.RecordRemoval(activity) }
func RecordRejection(operation, reason string)      { globalManager.RecordRejection(operation, reason) }
func UpdateParticipants(activity string, n int)     { globalManager.UpdateParticipants(activity, n) }
func UpdateActivityCount(count int)                 { globalManager.UpdateActivityCount(count) }
func UpdateTotalParticipants(count int)             { globalManager.UpdateTotalParticipants(count) }
func RecordHTTPError(endpoint, method, t, s string) { globalManager.RecordHTTPError(endpoint, method, t, s) }

func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

func UpdateSystem(allocBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(allocBytes, goroutines, avgGCPauseMs)
}

// GetRegistry returns the registry backing the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

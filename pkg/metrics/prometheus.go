// Package metrics provides Prometheus metrics for the crease analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Report metrics
	reportRuns    *prometheus.CounterVec
	reportLatency *prometheus.HistogramVec
	reportRows    *prometheus.GaugeVec
	reportErrors  *prometheus.CounterVec

	// Dataset metrics
	datasetRows         *prometheus.GaugeVec
	datasetLoads        prometheus.Counter
	datasetLoadFailures prometheus.Counter
	datasetLoadLatency  prometheus.Histogram
	datasetLoadedUnix   prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     prometheus.Counter

	// Error metrics
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "crease",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.reportRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_runs_total",
		Help:      "Total number of report executions by report and backend",
	}, []string{"report", "backend"})

	m.reportLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_latency_milliseconds",
		Help:      "Report execution latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"report", "backend"})

	m.reportRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_rows",
		Help:      "Rows returned by the last execution of a report",
	}, []string{"report"})

	m.reportErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_errors_total",
		Help:      "Total number of failed report executions",
	}, []string{"report"})

	m.datasetRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Rows per table in the loaded dataset",
	}, []string{"table"})

	m.datasetLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loads_total",
		Help:      "Total number of successful dataset loads",
	})

	m.datasetLoadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_failures_total",
		Help:      "Total number of failed dataset loads",
	})

	m.datasetLoadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_latency_milliseconds",
		Help:      "Dataset load latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.datasetLoadedUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loaded_unix",
		Help:      "Unix time of the last successful dataset load",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter",
	})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors by component and type",
	}, []string{"component", "error_type"})
}

// RecordReportRun records one report execution.
func (m *Manager) RecordReportRun(report, backend string, latencyMs float64, rows int) {
	m.reportRuns.WithLabelValues(report, backend).Inc()
	m.reportLatency.WithLabelValues(report, backend).Observe(latencyMs)
	m.reportRows.WithLabelValues(report).Set(float64(rows))
}

// RecordReportError counts a failed report execution.
func (m *Manager) RecordReportError(report string) {
	m.reportErrors.WithLabelValues(report).Inc()
}

// RecordDatasetLoad records a successful load and the resulting table sizes.
func (m *Manager) RecordDatasetLoad(latencyMs float64, loadedUnix float64, rows map[string]int) {
	m.datasetLoads.Inc()
	m.datasetLoadLatency.Observe(latencyMs)
	m.datasetLoadedUnix.Set(loadedUnix)
	for table, n := range rows {
		m.datasetRows.WithLabelValues(table).Set(float64(n))
	}
}

// RecordDatasetLoadFailure counts a failed load.
func (m *Manager) RecordDatasetLoadFailure() {
	m.datasetLoadFailures.Inc()
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func (m *Manager) RecordRateLimited() {
	m.httpRateLimited.Inc()
}

// RecordError counts an error by component.
func (m *Manager) RecordError(component, errorType string) {
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// Package-level helpers delegate to the global manager.

// RecordReportRun records one report execution on the global manager.
func RecordReportRun(report, backend string, latencyMs float64, rows int) {
	globalManager.RecordReportRun(report, backend, latencyMs, rows)
}

// RecordReportError counts a failed report execution on the global manager.
func RecordReportError(report string) { globalManager.RecordReportError(report) }

// RecordDatasetLoad records a successful load on the global manager.
func RecordDatasetLoad(latencyMs float64, loadedUnix float64, rows map[string]int) {
	globalManager.RecordDatasetLoad(latencyMs, loadedUnix, rows)
}

// RecordDatasetLoadFailure counts a failed load on the global manager.
func RecordDatasetLoadFailure() { globalManager.RecordDatasetLoadFailure() }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordRateLimited counts a rate limited request on the global manager.
func RecordRateLimited() { globalManager.RecordRateLimited() }

// RecordError counts an error on the global manager.
func RecordError(component, errorType string) { globalManager.RecordError(component, errorType) }

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

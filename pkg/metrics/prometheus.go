// Package metrics provides Prometheus metrics for the activities sign-up service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Roster metrics
	signups         *prometheus.CounterVec
	cancellations   *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	enrollment      *prometheus.GaugeVec
	activitiesTotal prometheus.Gauge
	storeLatency    *prometheus.HistogramVec

	// Journal pipeline metrics
	journalSize       prometheus.Gauge
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueEnqueueError *prometheus.CounterVec
	workerCount       prometheus.Gauge
	workerProcessed   prometheus.Counter
	workerErrors      prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mergington",
		subsystem:        "activities",
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

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.signups = m.counterVec("signups_total", "Accepted sign-ups by activity", "activity")
	m.cancellations = m.counterVec("cancellations_total", "Accepted cancellations by activity", "activity")
	m.rejections = m.counterVec("rejections_total", "Rejected roster operations by operation and reason", "operation", "reason")
	m.enrollment = promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "enrollment",
		Help:        "Current number of participants per activity",
		ConstLabels: m.constLabels,
	}, []string{"activity"})
	m.activitiesTotal = m.gauge("activities_total", "Number of activities in the catalog")
	m.storeLatency = m.histogramVec("store_latency_milliseconds", "Store operation latency in milliseconds", "operation")

	m.journalSize = m.gauge("journal_size", "Number of roster events retained in the journal")
	m.queueSize = m.gauge("queue_size", "Current number of roster events waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the roster event queue")
	m.queueEnqueueError = m.counterVec("queue_enqueue_errors_total", "Roster events dropped at enqueue by reason", "reason")
	m.workerCount = m.gauge("worker_count", "Number of journal workers")
	m.workerProcessed = m.counter("worker_processed_total", "Roster events written to the journal")
	m.workerErrors = m.counter("worker_errors_total", "Roster events the journal rejected")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint, method and type", "endpoint", "method", "error_type")
	m.errorsByType = m.counterVec("errors_by_type_total", "HTTP errors by type and severity", "error_type", "severity")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordSignup counts an accepted sign-up.
func RecordSignup(activity string) {
	globalManager.signups.WithLabelValues(activity).Inc()
}

// RecordCancellation counts an accepted cancellation.
func RecordCancellation(activity string) {
	globalManager.cancellations.WithLabelValues(activity).Inc()
}

// RecordRejection counts a rejected signup or cancel.
func RecordRejection(operation, reason string) {
	globalManager.rejections.WithLabelValues(operation, reason).Inc()
}

// UpdateEnrollment sets the participant gauge of one activity.
func UpdateEnrollment(activity string, participants int) {
	globalManager.enrollment.WithLabelValues(activity).Set(float64(participants))
}

// UpdateActivitiesTotal sets the catalog size.
func UpdateActivitiesTotal(count int) {
	globalManager.activitiesTotal.Set(float64(count))
}

// RecordStoreLatency observes the latency of a store operation.
func RecordStoreLatency(operation string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(operation).Observe(latencyMs)
}

// UpdateJournalSize sets the journal size.
func UpdateJournalSize(size int) {
	globalManager.journalSize.Set(float64(size))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError counts an event dropped at enqueue.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueError.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the number of journal workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessed counts an event written to the journal.
func RecordWorkerProcessed() {
	globalManager.workerProcessed.Inc()
}

// RecordWorkerError counts an event the journal rejected.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint counts an HTTP error per endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType counts an HTTP error per type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

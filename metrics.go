package restchain

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle
// and the response cache. It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheSize   *prometheus.GaugeVec

	errorsTotal *prometheus.CounterVec
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "restchain_requests_total",
				Help: "Total number of HTTP requests made",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restchain_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "restchain_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
			[]string{"method", "endpoint"},
		),
		cacheHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "restchain_cache_hits_total",
				Help: "Total number of responses served from the cache",
			},
			[]string{"method", "endpoint"},
		),
		cacheMisses: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "restchain_cache_misses_total",
				Help: "Total number of cache lookups that missed",
			},
			[]string{"method", "endpoint"},
		),
		cacheSize: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "restchain_cache_size",
				Help: "Number of entries currently stored in the cache",
			},
			[]string{"name"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "restchain_errors_total",
				Help: "Total number of client errors by type",
			},
			[]string{"type", "method", "endpoint"},
		),
	}
}

// RecordRequestStart marks a request as in flight.
func (m *MetricsCollector) RecordRequestStart(method, endpoint string) {
	m.requestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordRequestEnd marks a request as no longer in flight.
func (m *MetricsCollector) RecordRequestEnd(method, endpoint string) {
	m.requestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordRequest records a completed request with its status and duration.
func (m *MetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.requestsTotal.WithLabelValues(method, status, endpoint).Inc()
	m.requestDuration.WithLabelValues(method, status, endpoint).Observe(duration.Seconds())
}

// RecordCacheHit records a response served from the cache.
func (m *MetricsCollector) RecordCacheHit(method, endpoint string) {
	m.cacheHits.WithLabelValues(method, endpoint).Inc()
}

// RecordCacheMiss records a cache lookup that missed.
func (m *MetricsCollector) RecordCacheMiss(method, endpoint string) {
	m.cacheMisses.WithLabelValues(method, endpoint).Inc()
}

// RecordCacheSize records the current number of cache entries.
func (m *MetricsCollector) RecordCacheSize(name string, size int) {
	m.cacheSize.WithLabelValues(name).Set(float64(size))
}

// RecordError records a client error by type.
func (m *MetricsCollector) RecordError(errorType, method, endpoint string) {
	m.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "film", "genre", "person", "search"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of cache backend errors (degrades to miss)",
		},
		[]string{"cache_type", "operation"},
	)

	// ETL Metrics
	ETLTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_ticks_total",
			Help: "Total number of orchestrator ticks by stream",
		},
		[]string{"stream"}, // "film_self", "film_genre", "film_person", "genre"
	)

	ETLRecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_records_processed_total",
			Help: "Total number of documents loaded per stream",
		},
		[]string{"stream"},
	)

	ETLDocumentsIndexed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_documents_indexed_total",
			Help: "Total number of documents bulk-loaded into the search index",
		},
		[]string{"index"}, // "movies", "genres"
	)

	ETLTickDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "etl_tick_duration_seconds",
			Help:    "Duration of a single orchestrator tick",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stream"},
	)

	ETLErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_errors_total",
			Help: "Total number of ETL errors by stream and error kind",
		},
		[]string{"stream", "kind"},
	)

	ETLWatermark = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "etl_watermark_unix_seconds",
			Help: "Current committed watermark per stream, as a unix timestamp",
		},
		[]string{"stream"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	// Retry Metrics
	RetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of retry attempts by operation",
		},
		[]string{"operation"},
	)

	RetryExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_exhausted_total",
			Help: "Total number of operations that exhausted their retry budget",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheHit records a cache hit for the given cache type.
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheError records a cache backend error for the given cache type and operation.
func RecordCacheError(cacheType, operation string) {
	CacheErrors.WithLabelValues(cacheType, operation).Inc()
}

// RecordETLTick records a completed orchestrator tick for a stream.
func RecordETLTick(stream string, duration time.Duration, recordsProcessed int) {
	ETLTicksTotal.WithLabelValues(stream).Inc()
	ETLTickDuration.WithLabelValues(stream).Observe(duration.Seconds())
	if recordsProcessed > 0 {
		ETLRecordsProcessed.WithLabelValues(stream).Add(float64(recordsProcessed))
	}
}

// RecordETLDocumentsIndexed records the number of documents bulk-loaded into an index.
func RecordETLDocumentsIndexed(index string, count int) {
	ETLDocumentsIndexed.WithLabelValues(index).Add(float64(count))
}

// RecordETLError records an ETL error by stream and error kind.
func RecordETLError(stream, kind string) {
	ETLErrors.WithLabelValues(stream, kind).Inc()
}

// SetETLWatermark records the current committed watermark for a stream.
func SetETLWatermark(stream string, unixSeconds float64) {
	ETLWatermark.WithLabelValues(stream).Set(unixSeconds)
}

// RecordRetryAttempt records a retry attempt for an operation.
func RecordRetryAttempt(operation string) {
	RetryAttempts.WithLabelValues(operation).Inc()
}

// RecordRetryExhausted records that an operation exhausted its retry budget.
func RecordRetryExhausted(operation string) {
	RetryExhausted.WithLabelValues(operation).Inc()
}

// RecordCircuitBreakerRequest records a request outcome through a circuit breaker.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// SetCircuitBreakerState records the current state of a circuit breaker.
// state: 0=closed, 1=half-open, 2=open.
func SetCircuitBreakerState(name string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments both binaries built from this module: the Query API
(HTTP and cache metrics) and the ETL pipeline (tick, record, and watermark
metrics). Metrics register with the default Prometheus registry; neither
binary mounts a /metrics handler for it.

# Available Metrics

HTTP Metrics:
  - api_requests_total: total requests (counter), labels method/endpoint/status_code
  - api_request_duration_seconds: request latency (histogram), labels method/endpoint
  - api_active_requests: in-flight requests (gauge)

Cache Metrics:
  - cache_hits_total / cache_misses_total: labels cache_type (film, genre, person, search)
  - cache_errors_total: labels cache_type, operation

ETL Metrics:
  - etl_ticks_total: orchestrator ticks, labels stream
  - etl_records_processed_total: documents loaded, labels stream
  - etl_documents_indexed_total: documents bulk-loaded, labels index
  - etl_tick_duration_seconds: per-tick latency, labels stream
  - etl_errors_total: labels stream, kind (matches the error taxonomy's Kind values)
  - etl_watermark_unix_seconds: current committed watermark per stream

Circuit Breaker / Retry Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open, labels name
  - circuit_breaker_requests_total: labels name, result
  - retry_attempts_total / retry_exhausted_total: labels operation

# Usage

	http.Handle("/metrics", promhttp.Handler())

Recording is done by the owning package: internal/middleware for HTTP,
internal/etl for pipeline ticks, internal/cacheport for cache hit/miss,
internal/backoff for retry and circuit breaker state.
*/
package metrics

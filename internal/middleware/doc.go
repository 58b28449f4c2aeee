/*
Package middleware provides HTTP middleware for the Query API.

Key Components:

  - RequestID: generates/propagates X-Request-ID and a correlation ID into
    the request context for structured logging.
  - PrometheusMetrics: records request counts, latency, and in-flight gauges.

# Middleware Stack

	http.HandleFunc("/api/v1/films",
	    middleware.PrometheusMetrics(
	        middleware.RequestID(
	            handler,
	        ),
	    ),
	)

# Usage Example - Request ID

	http.HandleFunc("/api/v1/films", middleware.RequestID(handler))

	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	}

# Usage Example - Metrics

	http.HandleFunc("/api/v1/films", middleware.PrometheusMetrics(handler))

# Thread Safety

Both middlewares are stateless per request; RequestID relies on
context.Context immutability and PrometheusMetrics on the Prometheus
client library's internal synchronization.

See Also:

  - internal/logging: context-propagated correlation/request IDs
  - internal/metrics: Prometheus metric definitions
*/
package middleware

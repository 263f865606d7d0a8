// Package middleware provides net/http middleware for the inspection
// server.
//
// This package includes:
//   - OpenTelemetry request tracing
//   - Prometheus request metrics
//   - Structured request logging with log/slog
//
// All three work with any http.Handler and read the matched route pattern
// from chi when one is available, so labels and span names stay low
// cardinality:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Tracing(middleware.WithTracerName("vreconcile")))
//	r.Use(middleware.Prometheus(middleware.WithNamespace("vreconcile")))
//	r.Use(middleware.Logging(logger))
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - <namespace>_http_requests_total: requests by route, method and status
//   - <namespace>_http_request_duration_seconds: latency by route
//   - <namespace>_http_requests_in_flight: requests being served
//
// Expose them with promhttp:
//
//	r.Handle("/metrics", promhttp.Handler())
package middleware

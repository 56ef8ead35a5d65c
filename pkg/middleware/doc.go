// Package middleware provides HTTP middleware for verbosity servers.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//
// Both are plain func(http.Handler) http.Handler values and label requests
// with the chi route pattern, so they are meant to be installed on a chi
// router (see server.WithMiddleware).
//
// # OpenTelemetry Middleware
//
//	srv, _ := server.New(cfg, factory,
//	    server.WithMiddleware(middleware.OpenTelemetry(
//	        middleware.WithTracerName("my-app"),
//	        middleware.WithFilter(func(r *http.Request) bool {
//	            return r.URL.Path != "/healthz"
//	        }),
//	    )),
//	)
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before starting the server.
//
// # Prometheus Metrics
//
//	reg := prometheus.NewRegistry()
//	srv, _ := server.New(cfg, factory,
//	    server.WithMiddleware(middleware.Prometheus(middleware.WithRegistry(reg))),
//	)
//
// Metrics collected:
//   - verbosity_http_requests_total: requests by route, method and status
//   - verbosity_http_request_duration_seconds: request duration by route and method
package middleware

// Package prometheus renders goGuard metrics in the Prometheus text exposition
// format without depending on the Prometheus client library.
//
// [PrometheusExporter.Handler] is meant to be mounted on the host's router,
// typically at /metrics.
//
// # What this package must NOT do
//
//   - Register a global collector or start an HTTP server.
//   - Mutate Guard state.
package prometheus

// Package observability provides an OpenTelemetry metrics hook for
// fling. The MetricsHook implements lifecycle hook interfaces to record
// system-wide counters for task submission, success, and failure, plus
// a run-duration histogram.
//
// For per-run tracing and metrics, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability

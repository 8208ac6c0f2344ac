// Package server exposes the operation registry over a small JSON HTTP API.
//
// Routes:
//
//	POST /v1/eval   evaluate {"op", "operands", "radix", "output_radix"}
//	GET  /v1/ops    list operations with arity and usage
//	GET  /healthz   liveness
//	GET  /metrics   Prometheus exposition
//
// Every evaluation runs under the configured timeout, is bounded by the
// operand size limit of SecurityConfig, feeds the Prometheus collector and
// is wrapped in an OpenTelemetry span.
package server

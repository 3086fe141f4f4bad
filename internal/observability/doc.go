// Package observability provides logging and metrics functionality
// for the routing engine.
//
// Logging is structured and backed by zap. Metrics are Prometheus
// collectors on the default registry so that one exposition endpoint
// carries the serving, matcher, and cache metrics. Match and cache
// spans use the OpenTelemetry API directly; installing a tracer
// provider is left to the embedding host.
package observability

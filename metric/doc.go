// Package metric wraps Prometheus registration for ringbuf components.
//
// A MetricsRegistry owns its own prometheus.Registry and tracks what each
// component registered, rejecting duplicates with errors.ErrAlreadyRegistered
// instead of panicking:
//
//	registry := metric.NewMetricsRegistry(metric.WithRuntimeCollectors())
//	rb, err := ringbuf.New[int](1024, ringbuf.WithMetrics[int](registry, "samples"))
//
// Server exposes the registry over HTTP at the configured path (default
// /metrics) together with a /health endpoint.
package metric

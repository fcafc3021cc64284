package ringbuf

import (
	"log/slog"

	"github.com/c360/ringbuf/metric"
)

// Option configures buffer behavior using the functional options pattern.
type Option[T any] func(*bufferOptions[T])

// bufferOptions holds internal configuration for buffer instances.
// Statistics are always collected and are not an option.
type bufferOptions[T any] struct {
	dropCallback DropCallback[T]

	// metricsReg is optional; when set, statistics are also exported to Prometheus
	metricsReg *metric.MetricsRegistry

	// component labels metrics and log records
	component string

	logger *slog.Logger
}

// WithDropCallback sets a function called for every element released by
// eviction or Reset. Elements taken with Remove are not reported.
func WithDropCallback[T any](callback DropCallback[T]) Option[T] {
	return func(opts *bufferOptions[T]) {
		opts.dropCallback = callback
	}
}

// WithMetrics enables Prometheus export of buffer activity, labelled with component.
// The option is ignored if registry is nil or component is empty.
func WithMetrics[T any](registry *metric.MetricsRegistry, component string) Option[T] {
	return func(opts *bufferOptions[T]) {
		if registry != nil && component != "" {
			opts.metricsReg = registry
			opts.component = component
		}
	}
}

// WithLogger sets the logger used for debug records on eviction and empty
// reads. Without it the buffer does not log.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(opts *bufferOptions[T]) {
		opts.logger = logger
	}
}

func applyOptions[T any](options ...Option[T]) *bufferOptions[T] {
	opts := &bufferOptions[T]{}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}

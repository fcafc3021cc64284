package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/c360/ringbuf/errors"
)

// MetricsRegistrar defines the interface for registering component metrics
type MetricsRegistrar interface {
	RegisterCounter(component, metricName string, counter prometheus.Counter) error
	RegisterGauge(component, metricName string, gauge prometheus.Gauge) error
	Unregister(component, metricName string) bool
}

var _ MetricsRegistrar = (*MetricsRegistry)(nil)

// MetricsRegistry manages the registration and lifecycle of metrics.
// Each registry owns a dedicated Prometheus registry, so several buffers in
// one process (or one test binary) never collide on the global default.
type MetricsRegistry struct {
	prometheusRegistry *prometheus.Registry
	registeredMetrics  map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// RegistryOption configures a MetricsRegistry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	runtimeCollectors bool
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() RegistryOption {
	return func(o *registryOptions) {
		o.runtimeCollectors = true
	}
}

// NewMetricsRegistry creates a new, empty metrics registry.
func NewMetricsRegistry(opts ...RegistryOption) *MetricsRegistry {
	var o registryOptions
	for _, opt := range opts {
		opt(&o)
	}

	registry := &MetricsRegistry{
		prometheusRegistry: prometheus.NewRegistry(),
		registeredMetrics:  make(map[string]prometheus.Collector),
	}

	if o.runtimeCollectors {
		registry.prometheusRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return registry
}

// PrometheusRegistry returns the underlying Prometheus registry
func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// RegisterCounter registers a counter metric for a component
func (r *MetricsRegistry) RegisterCounter(component, metricName string, counter prometheus.Counter) error {
	return r.register("RegisterCounter", component, metricName, counter)
}

// RegisterGauge registers a gauge metric for a component
func (r *MetricsRegistry) RegisterGauge(component, metricName string, gauge prometheus.Gauge) error {
	return r.register("RegisterGauge", component, metricName, gauge)
}

func (r *MetricsRegistry) register(method, component, metricName string, c prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricKey(component, metricName)

	if _, exists := r.registeredMetrics[key]; exists {
		return errors.WrapInvalid(errors.ErrAlreadyRegistered, "MetricsRegistry", method,
			fmt.Sprintf("register metric %s for component %s", metricName, component))
	}

	if err := r.prometheusRegistry.Register(c); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if stderrors.As(err, &alreadyRegErr) {
			return errors.WrapInvalid(err, "MetricsRegistry", method,
				fmt.Sprintf("prometheus conflict for metric %s", metricName))
		}
		return errors.WrapFatal(err, "MetricsRegistry", method, "register collector with prometheus")
	}

	r.registeredMetrics[key] = c
	return nil
}

// Unregister removes a metric from the registry
func (r *MetricsRegistry) Unregister(component, metricName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := metricKey(component, metricName)

	collector, exists := r.registeredMetrics[key]
	if !exists {
		return false
	}

	success := r.prometheusRegistry.Unregister(collector)
	if success {
		delete(r.registeredMetrics, key)
	}

	return success
}

// Registered reports whether a metric is registered for the component.
func (r *MetricsRegistry) Registered(component, metricName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.registeredMetrics[metricKey(component, metricName)]
	return ok
}

func metricKey(component, metricName string) string {
	return component + "." + metricName
}

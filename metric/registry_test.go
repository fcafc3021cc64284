package metric

import (
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ringbuf/errors"
)

func gatheredNames(t *testing.T, registry *MetricsRegistry) map[string]bool {
	t.Helper()
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(metricFamilies))
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}
	return names
}

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.Empty(t, gatheredNames(t, registry))
}

func TestNewMetricsRegistry_RuntimeCollectors(t *testing.T) {
	registry := NewMetricsRegistry(WithRuntimeCollectors())

	names := gatheredNames(t, registry)
	assert.True(t, names["go_goroutines"], "Go collector should be registered")
}

func TestMetricsRegistry_RegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	err := registry.RegisterCounter("test-component", "test_counter", counter)
	require.NoError(t, err)

	counter.Inc()

	assert.True(t, gatheredNames(t, registry)["test_counter"], "Counter should be registered in Prometheus registry")
	assert.True(t, registry.Registered("test-component", "test_counter"))
}

func TestMetricsRegistry_RegisterGauge(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "A test gauge",
	})

	err := registry.RegisterGauge("test-component", "test_gauge", gauge)
	require.NoError(t, err)

	gauge.Set(42.0)

	assert.True(t, gatheredNames(t, registry)["test_gauge"], "Gauge should be registered in Prometheus registry")
}

func TestMetricsRegistry_PreventDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	counter1 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter",
	})
	counter2 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter",
	})

	require.NoError(t, registry.RegisterCounter("component1", "duplicate_counter", counter1))

	// Same component and name is rejected by the registry itself
	err := registry.RegisterCounter("component1", "duplicate_counter", counter2)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAlreadyRegistered)
	assert.True(t, errors.IsInvalid(err))

	// Different component, same fully-qualified name conflicts in Prometheus
	err = registry.RegisterCounter("component2", "duplicate_counter", counter2)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestMetricsRegistry_Unregister(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "unregister_gauge",
		Help: "A gauge to unregister",
	})
	require.NoError(t, registry.RegisterGauge("component", "unregister_gauge", gauge))

	assert.True(t, registry.Unregister("component", "unregister_gauge"))
	assert.False(t, registry.Registered("component", "unregister_gauge"))
	assert.False(t, registry.Unregister("component", "unregister_gauge"), "second unregister should report false")

	// Name is free again
	require.NoError(t, registry.RegisterGauge("component", "unregister_gauge", gauge))
}

func TestMetricsRegistry_ConcurrentRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Name: fmt.Sprintf("concurrent_counter_%d", i),
				Help: "Concurrent counter",
			})
			errs <- registry.RegisterCounter("component", fmt.Sprintf("counter_%d", i), counter)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, gatheredNames(t, registry), 20)
}

package ringbuf

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/ringbuf/metric"
)

// ringMetrics holds Prometheus metrics for one buffer.
type ringMetrics struct {
	registry  *metric.MetricsRegistry
	component string
	names     []string
	capacity  float64

	inserts    prometheus.Counter
	removes    prometheus.Counter
	evictions  prometheus.Counter
	emptyReads prometheus.Counter

	length      prometheus.Gauge
	utilization prometheus.Gauge
}

// newRingMetrics creates and registers buffer metrics with the provided registry.
func newRingMetrics(registry *metric.MetricsRegistry, component string, capacity int) (*ringMetrics, error) {
	labels := prometheus.Labels{"component": component}

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringbuf",
			Subsystem:   "buffer",
			Name:        name,
			ConstLabels: labels,
			Help:        help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringbuf",
			Subsystem:   "buffer",
			Name:        name,
			ConstLabels: labels,
			Help:        help,
		})
	}

	m := &ringMetrics{
		registry:    registry,
		component:   component,
		capacity:    float64(capacity),
		inserts:     counter("inserts_total", "Total number of insert operations"),
		removes:     counter("removes_total", "Total number of successful remove operations"),
		evictions:   counter("evictions_total", "Total number of elements evicted by inserts into a full buffer"),
		emptyReads:  counter("empty_reads_total", "Total number of remove operations on an empty buffer"),
		length:      gauge("length", "Current number of elements in the buffer"),
		utilization: gauge("utilization", "Buffer utilization as a fraction of capacity (0.0 to 1.0)"),
	}

	collectors := []struct {
		name  string
		gauge bool
		c     prometheus.Collector
	}{
		{"buffer_inserts", false, m.inserts},
		{"buffer_removes", false, m.removes},
		{"buffer_evictions", false, m.evictions},
		{"buffer_empty_reads", false, m.emptyReads},
		{"buffer_length", true, m.length},
		{"buffer_utilization", true, m.utilization},
	}

	for _, c := range collectors {
		var err error
		if c.gauge {
			err = registry.RegisterGauge(component, c.name, c.c.(prometheus.Gauge))
		} else {
			err = registry.RegisterCounter(component, c.name, c.c.(prometheus.Counter))
		}
		if err != nil {
			// roll back so a failed New leaves the registry unchanged
			m.unregister()
			return nil, err
		}
		m.names = append(m.names, c.name)
	}

	return m, nil
}

// unregister removes every collector registered for this buffer.
func (m *ringMetrics) unregister() {
	for _, name := range m.names {
		m.registry.Unregister(m.component, name)
	}
	m.names = nil
}

func (m *ringMetrics) recordInsert(evicted bool, n int) {
	m.inserts.Inc()
	if evicted {
		m.evictions.Inc()
	}
	m.updateLen(n)
}

func (m *ringMetrics) recordRemove(n int) {
	m.removes.Inc()
	m.updateLen(n)
}

func (m *ringMetrics) recordEmptyRead() {
	m.emptyReads.Inc()
}

func (m *ringMetrics) updateLen(n int) {
	m.length.Set(float64(n))
	m.utilization.Set(float64(n) / m.capacity)
}

// Package metrics exposes Prometheus instrumentation for user directory
// operations.
package metrics

import (
	"Userdir/internal/model"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "userdir"

// Metrics owns a private registry so tests can build independent instances.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_operations_total",
			Help:      "User store operations by operation and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "user_operation_duration_seconds",
			Help:      "User store operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	m.registry.MustRegister(
		m.operations,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one finished operation. result is "ok" on success or the
// error kind otherwise.
func (m *Metrics) Observe(operation string, started time.Time, err error) {
	m.operations.WithLabelValues(operation, Result(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// Result maps an operation error to its result label.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	return model.KindOf(err).String()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

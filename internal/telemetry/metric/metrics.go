// Package metric provides Prometheus metrics for treetable tooling.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "treetable"

// Registry holds all application metrics and implements
// treetable.Observer.
type Registry struct {
	reg *prometheus.Registry

	opsTotal   *prometheus.CounterVec
	opDuration *prometheus.HistogramVec

	tableSize     prometheus.Gauge
	tableCapacity prometheus.Gauge
	growthsTotal  prometheus.Counter
}

// NewRegistry creates a metrics registry with all collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		opsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ops_total",
			Help:      "Table operations by operation and outcome.",
		}, []string{"op", "status"}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "op_duration_seconds",
			Help:      "Table operation latency, including guard wait time.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"op"}),
		tableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Current number of entries in the table.",
		}),
		tableCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "buckets",
			Help:      "Current bucket count (table capacity).",
		}),
		growthsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "growths_total",
			Help:      "Capacity growths triggered by inserts.",
		}),
	}

	reg.MustRegister(
		r.opsTotal,
		r.opDuration,
		r.tableSize,
		r.tableCapacity,
		r.growthsTotal,
	)
	return r
}

// ObserveOp implements treetable.Observer.
func (r *Registry) ObserveOp(op string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.opsTotal.WithLabelValues(op, status).Inc()
	r.opDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveTable implements treetable.Observer.
func (r *Registry) ObserveTable(size, capacity int) {
	r.tableSize.Set(float64(size))
	r.tableCapacity.Set(float64(capacity))
}

// ObserveGrowth implements treetable.Observer.
func (r *Registry) ObserveGrowth() {
	r.growthsTotal.Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gather exposes the underlying gatherer for tests.
func (r *Registry) Gather() ([]*GatheredFamily, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}
	out := make([]*GatheredFamily, 0, len(families))
	for _, f := range families {
		out = append(out, &GatheredFamily{Name: f.GetName(), Metrics: len(f.GetMetric())})
	}
	return out, nil
}

// GatheredFamily is a flattened view of one gathered metric family.
type GatheredFamily struct {
	Name    string
	Metrics int
}

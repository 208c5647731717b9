package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the collectors of a running layout.
type Registry struct {
	TicksTotal      prometheus.Counter
	TickDuration    prometheus.Histogram
	MaxDisplacement prometheus.Gauge
	Nodes           prometheus.Gauge
	Edges           prometheus.Gauge
	ParameterValue  *prometheus.GaugeVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}
	r.TicksTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "depgraph_layout_ticks_total",
		Help: "Total number of simulation ticks",
	})
	r.TickDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "depgraph_layout_tick_duration_seconds",
		Help:    "Duration of a single simulation tick in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
	r.MaxDisplacement = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "depgraph_layout_max_displacement",
		Help: "Largest distance a node moved during the last tick",
	})
	r.Nodes = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "depgraph_layout_nodes",
		Help: "Number of nodes in the simulated graph",
	})
	r.Edges = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "depgraph_layout_edges",
		Help: "Number of edges in the simulated graph",
	})
	r.ParameterValue = promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
		Name: "depgraph_layout_parameter",
		Help: "Current value of a simulation parameter",
	}, []string{"name"})
	return r
}

func (r *Registry) RecordTick(duration time.Duration, maxDisplacement float64) {
	r.TicksTotal.Inc()
	r.TickDuration.Observe(duration.Seconds())
	r.MaxDisplacement.Set(maxDisplacement)
}

func (r *Registry) SetGraphSize(nodes, edges int) {
	r.Nodes.Set(float64(nodes))
	r.Edges.Set(float64(edges))
}

func (r *Registry) SetParameter(name string, value float64) {
	r.ParameterValue.WithLabelValues(name).Set(value)
}

func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

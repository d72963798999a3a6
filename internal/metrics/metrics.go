package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records engine activity as Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	Runs               *prometheus.CounterVec
	RunDuration        prometheus.Histogram
	RunSymbols         prometheus.Histogram
	ValidationFailures *prometheus.CounterVec
}

// New creates a Collector with its own registry, so several collectors can
// coexist in one process (tests, embedded servers).
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of simulations by verdict",
			},
			[]string{"verdict"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "automata_run_duration_seconds",
				Help:    "Duration of simulations including compilation",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
		RunSymbols: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "automata_run_symbols",
				Help:    "Number of input symbols per simulation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_validation_failures_total",
				Help: "Total number of documents that failed to build, by kind",
			},
			[]string{"kind"},
		),
	}
	c.registry.MustRegister(c.Runs, c.RunDuration, c.RunSymbols, c.ValidationFailures)
	return c
}

// Hooks returns lifecycle hooks that feed the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunComplete: func(ctx context.Context, e *domain.RunEvent) {
			verdict := "rejected"
			if e.Accepted {
				verdict = "accepted"
			}
			c.Runs.WithLabelValues(verdict).Inc()
			c.RunDuration.Observe(e.Duration.Seconds())
			c.RunSymbols.Observe(float64(e.Symbols))
		},
		OnBuildFailed: func(ctx context.Context, e *domain.BuildEvent) {
			c.ValidationFailures.WithLabelValues(e.Kind).Inc()
		},
	}
}

// Handler serves the collector's registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry for additional collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service collectors on a private registry so tests can
// build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	TrialsTotal   prometheus.Counter
	TrialDraws    prometheus.Histogram
	HTTPDurations *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		TrialsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_trials_total",
			Help: "Total simulation trials executed.",
		}),
		TrialDraws: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sim_trial_draws",
			Help:    "Draws needed per trial.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		}),
		HTTPDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	reg.MustRegister(
		m.TrialsTotal,
		m.TrialDraws,
		m.HTTPDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records one finished simulation run.
func (m *Metrics) ObserveRun(samples []int) {
	m.TrialsTotal.Add(float64(len(samples)))
	for _, v := range samples {
		m.TrialDraws.Observe(float64(v))
	}
}

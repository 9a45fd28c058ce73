package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/naseer2426/rekog/internal/rekog"
)

var _ rekog.Recorder = &Metrics{}

// Metrics exports rewrite pipeline counters on its own registry.
type Metrics struct {
	registry *prometheus.Registry
	urls     *prometheus.CounterVec
	rewrites *prometheus.CounterVec
	fetch    prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		urls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rekog_urls_total",
			Help: "URLs processed, by outcome.",
		}, []string{"outcome"}),
		rewrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rekog_rewrites_total",
			Help: "Messages processed, by result.",
		}, []string{"result"}),
		fetch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rekog_fetch_duration_seconds",
			Help:    "Time spent fetching candidate images.",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2},
		}),
	}
	m.registry.MustRegister(
		m.urls,
		m.rewrites,
		m.fetch,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveURL(outcome string) {
	m.urls.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRewrite(result string) {
	m.rewrites.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	m.fetch.Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

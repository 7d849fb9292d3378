// Package metrics exposes the cart counters on a private Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restaurant"

type Metrics struct {
	registry *prometheus.Registry

	CheckoutTotal    *prometheus.CounterVec
	CheckoutDuration prometheus.Histogram
	MutationsTotal   *prometheus.CounterVec
	LoadRecovered    prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		CheckoutTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "checkout_total",
				Help:      "Checkouts by outcome.",
			},
			[]string{"outcome"},
		),
		CheckoutDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "checkout_duration_seconds",
				Help:      "Time spent submitting an order.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		MutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "mutations_total",
				Help:      "Cart mutations written to storage by operation.",
			},
			[]string{"operation"},
		),
		LoadRecovered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "load_recovered_total",
				Help:      "Loads that fell back to an empty cart after a read or decode failure.",
			},
		),
	}
	registry.MustRegister(
		m.CheckoutTotal,
		m.CheckoutDuration,
		m.MutationsTotal,
		m.LoadRecovered,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

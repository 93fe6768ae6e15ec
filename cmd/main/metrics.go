package main

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RenderMetrics records page render timings and failures.
type RenderMetrics struct {
	registry       *prom.Registry
	renderDuration *prom.HistogramVec
	renderFailures *prom.CounterVec
}

// NewRenderMetrics registers the site metrics on a fresh registry.
func NewRenderMetrics() *RenderMetrics {
	m := &RenderMetrics{
		registry: prom.NewRegistry(),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "tablesinfo",
			Name:      "page_render_duration_seconds",
			Help:      "Time spent composing and serializing a page",
			Buckets:   prom.DefBuckets,
		}, []string{"page"}),
		renderFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tablesinfo",
			Name:      "page_render_failures_total",
			Help:      "Pages that could not be composed, by page",
		}, []string{"page"}),
	}
	m.registry.MustRegister(m.renderDuration, m.renderFailures)
	return m
}

// ObserveRender records one render attempt of page.
func (m *RenderMetrics) ObserveRender(page string, d time.Duration, err error) {
	if err != nil {
		m.renderFailures.WithLabelValues(page).Inc()
		return
	}
	m.renderDuration.WithLabelValues(page).Observe(d.Seconds())
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *RenderMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

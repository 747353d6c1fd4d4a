package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes reported in piechart_requests_total.
const (
	outcomeRendered   = "rendered"
	outcomeCached     = "cached"
	outcomeBadRequest = "bad_request"
	outcomeError      = "error"
)

type metrics struct {
	requests  *prometheus.CounterVec
	duration  prometheus.Histogram
	cacheHits prometheus.Counter
}

func newMetrics(reg *prometheus.Registry) *metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "piechart_requests_total",
			Help: "Chart requests by outcome.",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "piechart_render_duration_seconds",
			Help:    "Time spent rendering and encoding a chart.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "piechart_cache_hits_total",
			Help: "Chart requests served from the response cache.",
		}),
	}
}

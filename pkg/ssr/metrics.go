package ssr

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "regions"

type metrics struct {
	pagesTotal     *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	regionErrors   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		pagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Pages served, by route pattern and outcome",
		}, []string{"route", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_duration_seconds",
			Help:      "Time to load, flush and render a page",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		regionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "region_errors_total",
			Help:      "Outlets that failed validation or rendering",
		}, []string{"route", "region"}),
	}
}

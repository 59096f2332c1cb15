// Package bus pkg/bus/metrics.go
package bus

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	publishedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hubview_bus_published_total",
		Help: "Total envelopes published on the event bus.",
	})
	droppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hubview_bus_dropped_total",
		Help: "Envelopes evicted from subscriber backlogs.",
	})
	subscriberGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hubview_bus_subscribers",
		Help: "Current number of bus subscribers.",
	})
)

func init() {
	prometheus.MustRegister(publishedTotal, droppedTotal, subscriberGauge)
}

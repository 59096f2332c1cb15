// Package poller pkg/poller/metrics.go
package poller

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	samplesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hubview_collector_samples_total",
		Help: "Samples appended by the collector.",
	})
	relayConnectsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hubview_relay_connects_total",
		Help: "Hub event stream connections opened by the relay.",
	})
)

func init() {
	prometheus.MustRegister(samplesTotal, relayConnectsTotal)
}

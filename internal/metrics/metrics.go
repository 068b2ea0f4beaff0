// Package metrics exposes prometheus collectors for the registry and HTTP
// layers, grounded in Voskan-arena-cache (a sharded, per-shard-locked cache
// that reports via prometheus/client_golang — the closest operational
// analog to the symbol registry anywhere in the pack) and in
// jinterlante1206-AleutianLocal, which pairs prometheus with gin the same
// way cmd/server does here. This is an operational add-on: it observes the
// core, it never participates in its semantics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors the HTTP layer updates per request and the
// gauge that tracks live symbol count, which the HTTP layer sets after each
// successful append.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LiveSymbols     prometheus.Gauge
	Appends         prometheus.Counter
	Queries         prometheus.Counter
}

// New registers all collectors against reg and returns the bundle. Pass
// prometheus.NewRegistry() for test isolation, or
// prometheus.DefaultRegisterer for the running service.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hft",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by route and status class.",
		}, []string{"route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hft",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request handling latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		LiveSymbols: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hft",
			Name:      "registry_live_symbols",
			Help:      "Number of symbols currently tracked by the registry.",
		}),
		Appends: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hft",
			Name:      "registry_appends_total",
			Help:      "Count of successful append operations across all symbols.",
		}),
		Queries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hft",
			Name:      "registry_queries_total",
			Help:      "Count of successful suffix-stats queries across all symbols.",
		}),
	}
}

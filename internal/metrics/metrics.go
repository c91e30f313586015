// Package metrics provides the centralized Prometheus registry for the
// Diamond Edge service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "diamond_edge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ScoringPassesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scoring_passes_total",
		Help:      "Total number of slate scoring passes",
	})
	PicksGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "picks_generated_total",
		Help:      "Total number of edge results produced",
	})
	PropsRankedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "props_ranked_total",
		Help:      "Total number of prop candidates ranked",
	})
	SlateWarningsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slate_warnings_total",
		Help:      "Total number of malformed records skipped during scoring",
	})
	FetchErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_errors_total",
		Help:      "Total number of upstream fetch failures",
	}, []string{"source"})
	StatsCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_hits_total",
		Help:      "Total number of stats cache hits",
	})
	StatsCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_misses_total",
		Help:      "Total number of stats cache misses",
	})
)

// Gauge metrics
var (
	LastSlateSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_slate_size",
		Help:      "Number of matchups in the most recent scoring pass",
	})
	WebsocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_clients",
		Help:      "Number of connected dashboard websocket clients",
	})
	TopEdgePct = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "top_edge_pct",
		Help:      "Largest absolute edge percentage in the latest slate",
	})
)

// Histogram metrics
var (
	GenerationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of pick and prop generation runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	}, []string{"kind"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ScoringPassesTotal)
		registry.MustRegister(PicksGeneratedTotal)
		registry.MustRegister(PropsRankedTotal)
		registry.MustRegister(SlateWarningsTotal)
		registry.MustRegister(FetchErrorsTotal)
		registry.MustRegister(StatsCacheHitsTotal)
		registry.MustRegister(StatsCacheMissesTotal)

		registry.MustRegister(LastSlateSize)
		registry.MustRegister(WebsocketClients)
		registry.MustRegister(TopEdgePct)

		registry.MustRegister(GenerationDuration)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}

// Package metrics provides the centralized Prometheus metrics registry for the analysis engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RacesAnalyzedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_advisor",
		Name:      "races_analyzed_total",
		Help:      "Total number of races analyzed",
	})
	RacesAcceptedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_advisor",
		Name:      "races_accepted_total",
		Help:      "Total number of races accepted by the quality gate",
	})
	RaceErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_advisor",
		Name:      "race_errors_total",
		Help:      "Total number of per-race analysis or persistence errors",
	})
	WeatherCallsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_advisor",
		Name:      "weather_calls_total",
		Help:      "Total number of external weather API calls",
	})
	WeatherCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "turf_advisor",
		Name:      "weather_cache_hits_total",
		Help:      "Weather cache hits by tier",
	}, []string{"tier"})
	WeatherCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_advisor",
		Name:      "weather_cache_misses_total",
		Help:      "Weather cache full misses",
	})
	NarrativeFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_advisor",
		Name:      "narrative_fallbacks_total",
		Help:      "Total number of template fallbacks after failed completions",
	})
)

// Gauge metrics
var (
	WeatherBudgetRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "turf_advisor",
		Name:      "weather_budget_remaining",
		Help:      "Remaining external weather calls for the current day",
	})
	BatchDurationSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "turf_advisor",
		Name:      "batch_duration_seconds",
		Help:      "Duration of the most recent daily batch run",
	})
)

// Histogram metrics
var (
	QualityScores = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "turf_advisor",
		Name:      "quality_score",
		Help:      "Distribution of race quality scores across batch runs",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
)

// Registry returns the process-wide registry, registering all metrics
// on first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			RacesAnalyzedTotal,
			RacesAcceptedTotal,
			RaceErrorsTotal,
			WeatherCallsTotal,
			WeatherCacheHitsTotal,
			WeatherCacheMissesTotal,
			NarrativeFallbacksTotal,
			WeatherBudgetRemaining,
			BatchDurationSeconds,
			QualityScores,
		)
	})
	return registry
}

// Handler returns an HTTP handler exposing the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the weather
// pipeline and its provider client.
type Metrics struct {
	// Provider client metrics.
	ProviderRequests *prometheus.CounterVec   // labels: endpoint={current,onecall,forecast,geocode,probe}, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: endpoint

	// Orchestrator metrics.
	Queries          *prometheus.CounterVec // labels: outcome={unified,legacy,error}
	ForecastFallback prometheus.Counter
	SynthesizedDays  prometheus.Counter

	// Geocoding suggestion metrics.
	GeocodeLookups *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache   *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.Queries,
		m.ForecastFallback,
		m.SynthesizedDays,
		m.GeocodeLookups,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "provider_requests_total",
			Help:      "OpenWeatherMap API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_dash",
			Name:      "provider_request_duration_seconds",
			Help:      "OpenWeatherMap API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "weather_queries_total",
			Help:      "Location weather queries by outcome.",
		}, []string{"outcome"}),
		ForecastFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "forecast_fallback_total",
			Help:      "Queries where the unified forecast failed and the legacy source was used.",
		}),
		SynthesizedDays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "synthesized_days_total",
			Help:      "Extended-forecast days synthesized because no real data was available.",
		}),
		GeocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "geocode_lookups_total",
			Help:      "Geocoding suggestion lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		catalogFetchTotal,
		catalogFetchDuration,
		catalogPlansServed,
	)
}

var (
	// Count of catalog fetches grouped by source and result.
	// source: upstream|fallback
	// result: ok|error
	catalogFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetch_total",
			Help: "Plan catalog fetches by source and result.",
		},
		[]string{"source", "result"},
	)

	catalogFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Duration of plan catalog fetches in seconds.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"source"},
	)

	catalogPlansServed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_plans_served",
			Help: "Number of plans in the last successfully served catalog.",
		},
	)
)

func IncCatalogFetch(source, result string) {
	catalogFetchTotal.WithLabelValues(norm(source), norm(result)).Inc()
}

func ObserveCatalogFetch(source string, seconds float64) {
	catalogFetchDuration.WithLabelValues(norm(source)).Observe(seconds)
}

func SetCatalogPlansServed(n int) {
	catalogPlansServed.Set(float64(n))
}

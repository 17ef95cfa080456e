package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		checkoutSubmitTotal,
		checkoutSubmitDuration,
	)
}

var (
	// Count of webhook submissions grouped by kind and result.
	// kind: lead|registration
	// result: ok|rejected|error|no_redirect
	checkoutSubmitTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_submit_total",
			Help: "Checkout webhook submissions by kind and result.",
		},
		[]string{"kind", "result"},
	)

	checkoutSubmitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "checkout_submit_duration_seconds",
			Help:    "Duration of checkout webhook submissions in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"kind"},
	)
)

func IncCheckoutSubmit(kind, result string) {
	checkoutSubmitTotal.WithLabelValues(norm(kind), norm(result)).Inc()
}

func ObserveCheckoutSubmit(kind string, seconds float64) {
	checkoutSubmitDuration.WithLabelValues(norm(kind)).Observe(seconds)
}

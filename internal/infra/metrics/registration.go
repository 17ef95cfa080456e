package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		quotaLookupTotal,
		quotaDegradedTotal,
		funnelSessionsTotal,
	)
}

var (
	// result: ok|error
	quotaLookupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_lookup_total",
			Help: "Dependent registry lookups by result.",
		},
		[]string{"result"},
	)

	quotaDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quota_degraded_total",
			Help: "Quota answers served optimistically because the registry failed.",
		},
	)

	// event: opened|transition|closed|expired_miss
	funnelSessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_sessions_total",
			Help: "Funnel session lifecycle events.",
		},
		[]string{"event"},
	)
)

func IncQuotaLookup(result string) {
	quotaLookupTotal.WithLabelValues(norm(result)).Inc()
}

func IncQuotaDegraded() {
	quotaDegradedTotal.Inc()
}

func IncFunnelSession(event string) {
	funnelSessionsTotal.WithLabelValues(norm(event)).Inc()
}

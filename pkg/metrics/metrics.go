package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BookmarkRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "linkmark", Name: "bookmark_requests_total", Help: "Number of bookmark API requests by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "linkmark", Name: "auth_failures_total", Help: "Number of rejected requests by failure reason."},
		[]string{"reason"},
	)
	IdentityCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "linkmark", Name: "identity_cache_total", Help: "Identity cache lookups by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(BookmarkRequests)
	reg.MustRegister(AuthFailures)
	reg.MustRegister(IdentityCache)
}

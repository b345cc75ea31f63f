package igdb

import "github.com/prometheus/client_golang/prometheus"

var (
	// tokenRefreshes counts real OAuth exchanges by outcome. With the
	// single-flight guard working, this stays far below request volume.
	tokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "igdb_token_refreshes_total",
			Help: "Total OAuth client-credential exchanges performed.",
		},
		[]string{"outcome"},
	)

	// upstreamRequests counts metadata queries by mode and response status
	// ("error" when the provider was not reached). A rise in 429s here is the
	// operator's signal that the quota is under pressure.
	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "igdb_upstream_requests_total",
			Help: "Total IGDB metadata queries by mode and status.",
		},
		[]string{"mode", "status"},
	)
)

func init() {
	prometheus.MustRegister(tokenRefreshes, upstreamRequests)
}

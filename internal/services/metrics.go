package services

import "github.com/prometheus/client_golang/prometheus"

// cacheResults counts single-lookup cache outcomes. "error" covers storage
// failures and undecodable payloads, both of which degrade to a miss.
var cacheResults = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "game_cache_lookups_total",
		Help: "Result-cache lookups by outcome (hit, miss, error).",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(cacheResults)
}

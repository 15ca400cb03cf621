// Package metrics exposes the gateway's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_rounds_total",
		Help: "Settled rounds by game type and result.",
	}, []string{"game_type", "result"})

	RoundSettleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_round_settle_failures_total",
		Help: "Rounds that resolved locally but failed to report to the ledger.",
	}, []string{"game_type"})

	LedgerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_ledger_failures_total",
		Help: "Failed ledger calls by operation.",
	}, []string{"op"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_cache_hits_total",
		Help: "Read-through cache hits by key class.",
	}, []string{"key"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_cache_misses_total",
		Help: "Read-through cache misses by key class.",
	}, []string{"key"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})
)

// Package coingecko
package coingecko

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kardiachain/cryptoverse-backend/types"
)

var (
	requestsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coingecko_requests_total",
		Help: "Upstream market data requests by endpoint and result",
	}, []string{"endpoint", "result"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coingecko_request_duration_seconds",
		Help:    "Time spent waiting for upstream market data",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
	}, []string{"endpoint"})

	breakerStateMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coingecko_breaker_open",
		Help: "1 while the upstream circuit breaker is open",
	})
)

func observe(endpoint string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
		var fe *types.FetchError
		if asFetchError(err, &fe) {
			result = fe.Kind.String()
		}
	}
	requestsMetric.WithLabelValues(endpoint, result).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

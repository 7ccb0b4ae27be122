package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Quote metrics
	QuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reserve_quote_requests_total",
			Help: "Total number of unstake quote requests",
		},
		[]string{"kind", "status"},
	)

	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reserve_quote_duration_seconds",
			Help:    "Unstake quote duration in seconds, RPC round trip included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	QuoteFeeBps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reserve_quote_fee_bps",
		Help:    "Total unstake fee of successful quotes in basis points",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 800},
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reserve_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reserve_http_in_flight_requests",
			Help: "HTTP requests currently being served, by route group",
		},
		[]string{"group"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reserve_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

const (
	StatusOK                 = "ok"
	StatusNotEnoughLiquidity = "not_enough_liquidity"
	StatusBadRequest         = "bad_request"
	StatusError              = "error"
)

package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmixer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodmixer_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RecommendationsServed counts recommendation lists returned, by scoring policy.
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmixer_recommendations_served_total",
			Help: "Total number of recommendation lists served",
		},
		[]string{"policy"},
	)

	// OrdersPlaced counts simulated orders by bar.
	OrdersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodmixer_orders_placed_total",
			Help: "Total number of simulated orders placed",
		},
		[]string{"bar"},
	)
)

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodiego_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodiego_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodiego_orders_created_total",
			Help: "Total orders placed.",
		},
	)
	PaymentIntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodiego_payment_intents_total",
			Help: "Payment intent requests by outcome (created, demo, invalid, failed).",
		},
		[]string{"outcome"},
	)
	PageCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodiego_page_cache_lookups_total",
			Help: "Page cache lookups by result (hit, miss).",
		},
		[]string{"result"},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestsTotal counts HTTP requests by method, route pattern, and status code.
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests handled.",
	},
	[]string{"method", "path", "status"},
)

// RequestDuration observes request latency by method and route pattern.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// ItemsInStore tracks the current number of stored items.
var ItemsInStore = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "items_in_store",
		Help: "Current number of items in the store.",
	},
)

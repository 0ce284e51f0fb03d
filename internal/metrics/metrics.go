package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal counts requests by method, path and status code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gemura_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration observes request latency by method and path.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "gemura_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// PayrollBatchesTotal counts payroll generation runs by outcome.
var PayrollBatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gemura_payroll_batches_total",
		Help: "Total number of payroll batches generated",
	},
	[]string{"outcome"},
)

package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Duration of HTTP requests in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path", "status"})

var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of HTTP requests.",
}, []string{"method", "path", "status"})

var RegisteredUsersGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "app_total_users",
	Help: "Total number of registered users in the application.",
})

// Store Metrics
var StoreOperationDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "store_operation_duration_seconds",
	Help:    "Duration of user store operations in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"query_type", "repository"})

var StoreOperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "store_operation_errors_total",
	Help: "Total number of failed user store operations.",
}, []string{"query_type", "repository"})

// Streaming Metrics
var StreamedBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "streamed_bytes_total",
	Help: "Total number of media bytes streamed to clients.",
}, []string{"status"})

// Package metrics provides Prometheus metrics collection for the storefront service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CheckoutRequestsTotal tracks Storefront API round trips by operation.
	CheckoutRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_requests_total",
			Help: "Total number of Storefront API checkout operations",
		},
		[]string{"operation", "status"},
	)

	// CheckoutRequestDuration tracks Storefront API round-trip duration.
	CheckoutRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "checkout_request_duration_seconds",
			Help:    "Storefront API round-trip duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"operation"},
	)

	// IssueDownloadsTotal tracks signed URL issuance for magazine PDFs.
	IssueDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "issue_downloads_total",
			Help: "Total number of issue download URLs issued",
		},
		[]string{"kind"},
	)

	// IssueUploadsTotal tracks issue PDF uploads.
	IssueUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "issue_uploads_total",
			Help: "Total number of issue uploads",
		},
		[]string{"status"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCheckoutRequest records metrics for a Storefront API round trip.
func RecordCheckoutRequest(operation string, duration time.Duration, status string) {
	CheckoutRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	CheckoutRequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordIssueDownload records the issuance of a signed download URL.
// kind is "latest" or "number".
func RecordIssueDownload(kind string) {
	IssueDownloadsTotal.WithLabelValues(kind).Inc()
}

// RecordIssueUpload records an issue upload attempt.
func RecordIssueUpload(status string) {
	IssueUploadsTotal.WithLabelValues(status).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

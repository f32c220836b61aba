package prometheus

import (
	"time"

	"autoparts-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Store operation metrics
	StoreOperationDuration prometheus.HistogramVec

	// Product metrics
	ProductOperationsCounter prometheus.CounterVec

	// Category metrics
	CategoryOperationsCounter prometheus.CounterVec

	// Brand metrics
	BrandOperationsCounter prometheus.CounterVec

	// Real-time channel metrics
	RealtimeClientsGauge prometheus.Gauge
	RealtimeEventsTotal  prometheus.CounterVec

	// Upload metrics
	UploadedFilesCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Store operation metrics
	StoreOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_store_operation_duration_seconds",
			Help:    "Duration of document-store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Product metrics
	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	// Category metrics
	CategoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_category_operations_total",
			Help: "Total number of category operations",
		},
		[]string{"operation"},
	)

	// Brand metrics
	BrandOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_brand_operations_total",
			Help: "Total number of brand operations",
		},
		[]string{"operation"},
	)

	// Real-time channel metrics
	RealtimeClientsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_realtime_clients",
			Help: "Number of currently connected real-time clients",
		},
	)

	RealtimeEventsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_realtime_events_total",
			Help: "Total number of broadcast real-time events",
		},
		[]string{"event"},
	)

	// Upload metrics
	UploadedFilesCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_uploaded_files_total",
			Help: "Total number of uploaded image files",
		},
	)
}

// TrackStoreOperation returns a function that records the duration of a
// document-store operation
func TrackStoreOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		StoreOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCategoryOperation increments the counter for category operations
func RecordCategoryOperation(operation string) {
	CategoryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordBrandOperation increments the counter for brand operations
func RecordBrandOperation(operation string) {
	BrandOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordRealtimeEvent increments the counter for broadcast events
func RecordRealtimeEvent(event string) {
	RealtimeEventsTotal.WithLabelValues(event).Inc()
}

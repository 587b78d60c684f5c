package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// TransformsTotal tracks the total number of response transformations
	TransformsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedapi_transforms_total",
			Help: "Total number of response transformations",
		},
		[]string{"key", "shape", "status"}, // shape: item, collection; status: success, failed
	)

	// TransformDuration measures transformation duration in seconds
	TransformDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "embedapi_transform_duration_seconds",
			Help:    "Response transformation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		},
		[]string{"shape"},
	)

	// TransformersRegistered tracks the number of rules registered on the
	// registry serving the API. Other registries, such as the CLI's, leave it alone.
	TransformersRegistered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "embedapi_transformers_registered",
			Help: "Number of transformation rules registered on the serving registry",
		},
	)

	// StoreOperations counts article store operations
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedapi_store_operations_total",
			Help: "Total number of article store operations",
		},
		[]string{"operation", "status"},
	)

	// ErrorsTotal counts total number of errors
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedapi_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordTransform records a completed transformation
func RecordTransform(key, shape, status string, duration float64) {
	TransformsTotal.WithLabelValues(key, shape, status).Inc()
	TransformDuration.WithLabelValues(shape).Observe(duration)
}

// SetTransformersRegistered records the current registration count
func SetTransformersRegistered(count int) {
	TransformersRegistered.Set(float64(count))
}

// RecordStoreOperation records an article store operation
func RecordStoreOperation(operation, status string) {
	StoreOperations.WithLabelValues(operation, status).Inc()
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "catalog_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "catalog_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// Media batch items by outcome
	MediaBatchItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "catalog_api",
			Name:      "media_batch_items_total",
			Help:      "Media batch items by action and outcome",
		},
		[]string{"action", "status"},
	)

	// Storage operations
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "catalog_api",
			Name:      "storage_operations_total",
			Help:      "Total storage backend operations",
		},
		[]string{"backend", "operation", "status"},
	)

	StorageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "catalog_api",
			Name:      "storage_duration_seconds",
			Help:      "Storage operation duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"backend", "operation"},
	)

	// Directories removed by cascading deletes
	DirectoriesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "catalog_api",
			Name:      "directories_deleted_total",
			Help:      "Directories removed, including cascaded descendants",
		},
	)

	// Translation cache lookups
	TranslationCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "catalog_api",
			Name:      "translation_cache_total",
			Help:      "Translation cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordMediaBatch records the outcome of a media batch.
func RecordMediaBatch(action string, applied, failed int) {
	MediaBatchItemsTotal.WithLabelValues(action, "applied").Add(float64(applied))
	MediaBatchItemsTotal.WithLabelValues(action, "failed").Add(float64(failed))
}

// RecordStorageOperation records a storage backend call
func RecordStorageOperation(backend, operation, status string, durationSec float64) {
	StorageOperationsTotal.WithLabelValues(backend, operation, status).Inc()
	StorageDuration.WithLabelValues(backend, operation).Observe(durationSec)
}

// RecordDirectoriesDeleted counts directories removed by one delete.
func RecordDirectoriesDeleted(n int) {
	DirectoriesDeletedTotal.Add(float64(n))
}

// RecordTranslationCache records a cache hit, miss or error.
func RecordTranslationCache(outcome string) {
	TranslationCacheTotal.WithLabelValues(outcome).Inc()
}

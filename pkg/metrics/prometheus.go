package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RowsImported    *prometheus.CounterVec
	RowsSkipped     *prometheus.CounterVec
	BatchErrors     prometheus.Counter
	ImportDuration  *prometheus.HistogramVec
	ChangesDetected *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the default registerer
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates new prometheus metrics on the given registerer;
// tests pass a fresh registry to avoid duplicate registration
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RowsImported: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_imported_total",
			Help:      "The total number of CSV rows reconciled into the store",
		}, []string{"source"}),
		RowsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "The total number of CSV rows skipped during import",
		}, []string{"source", "reason"}),
		BatchErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_errors_total",
			Help:      "The total number of import batches that failed to persist",
		}),
		ImportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Time taken to import one CSV source",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		ChangesDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_detected_total",
			Help:      "The total number of schedule changes detected",
		}, []string{"status"}),
	}
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Loader holds the ingestion run metrics, registered on a per-run
// registry rather than the global one so repeated runs start clean.
type Loader struct {
	RowsRead      prometheus.Counter
	RowsRejected  *prometheus.CounterVec
	RecordsLoaded prometheus.Counter
	BatchDuration prometheus.Histogram
	LoadFailures  prometheus.Counter
}

// NewLoader creates and registers the ingestion metrics.
func NewLoader(reg prometheus.Registerer) *Loader {
	m := &Loader{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paylens",
			Name:      "loader_rows_read_total",
			Help:      "Raw rows read from the disclosure workbook",
		}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paylens",
			Name:      "loader_rows_rejected_total",
			Help:      "Rows dropped during validation, by reason",
		}, []string{"reason"}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paylens",
			Name:      "loader_records_loaded_total",
			Help:      "Canonical records written to the search store",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "paylens",
			Name:      "loader_batch_duration_seconds",
			Help:      "Bulk load batch duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paylens",
			Name:      "loader_load_failures_total",
			Help:      "Bulk load batches that failed",
		}),
	}
	reg.MustRegister(m.RowsRead, m.RowsRejected, m.RecordsLoaded, m.BatchDuration, m.LoadFailures)
	return m
}

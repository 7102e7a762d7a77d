package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"tooldir/internal/domain"
)

type PrometheusMetrics struct {
	queryDuration  prometheus.Histogram
	queryResults   prometheus.Histogram
	importRecords  *prometheus.CounterVec
	persistenceOps *prometheus.CounterVec
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		queryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tooldir_query_duration_seconds",
				Help:    "Duration of result set computations in seconds",
				Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			},
		),
		queryResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tooldir_query_results",
				Help:    "Number of tools in computed result sets",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
		importRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tooldir_import_records_total",
				Help: "Total number of imported records by outcome",
			},
			[]string{"outcome"},
		),
		persistenceOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tooldir_persistence_ops_total",
				Help: "Total number of preference slot operations by operation and status",
			},
			[]string{"op", "status"},
		),
	}
}

func (m *PrometheusMetrics) ObserveQuery(duration time.Duration, results int) {
	m.queryDuration.Observe(duration.Seconds())
	m.queryResults.Observe(float64(results))
}

func (m *PrometheusMetrics) ObserveImport(report domain.ImportReport) {
	m.importRecords.WithLabelValues("added").Add(float64(report.Added))
	m.importRecords.WithLabelValues("updated").Add(float64(report.Updated))
	m.importRecords.WithLabelValues("skipped").Add(float64(report.Skipped))
}

func (m *PrometheusMetrics) ObservePersistence(op domain.PersistenceOp, status domain.PersistenceStatus) {
	m.persistenceOps.WithLabelValues(string(op), string(status)).Inc()
}

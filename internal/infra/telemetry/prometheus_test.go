package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tooldir/internal/domain"
)

func TestNewPrometheusMetrics_UsesProvidedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewPrometheusMetrics(registry)
	m.ObserveQuery(2*time.Millisecond, 4)
	m.ObserveImport(domain.ImportReport{Added: 1})
	m.ObservePersistence(domain.PersistenceOpSave, domain.PersistenceStatusOK)

	metrics, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(metrics))
	for _, m := range metrics {
		names = append(names, m.GetName())
	}

	assert.Contains(t, names, "tooldir_query_duration_seconds")
	assert.Contains(t, names, "tooldir_query_results")
	assert.Contains(t, names, "tooldir_import_records_total")
	assert.Contains(t, names, "tooldir_persistence_ops_total")
}

func TestPrometheusMetrics_ObserveImport(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	m.ObserveImport(domain.ImportReport{Added: 2, Updated: 1, Skipped: 3})
	m.ObserveImport(domain.ImportReport{Added: 1})

	assert.InDelta(t, 3, testutil.ToFloat64(m.importRecords.WithLabelValues("added")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.importRecords.WithLabelValues("updated")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.importRecords.WithLabelValues("skipped")), 0)
}

func TestPrometheusMetrics_ObservePersistence(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	m.ObservePersistence(domain.PersistenceOpSave, domain.PersistenceStatusFailed)
	m.ObservePersistence(domain.PersistenceOpSave, domain.PersistenceStatusFailed)
	m.ObservePersistence(domain.PersistenceOpLoad, domain.PersistenceStatusFallback)

	assert.InDelta(t, 2, testutil.ToFloat64(m.persistenceOps.WithLabelValues("save", "failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.persistenceOps.WithLabelValues("load", "fallback")), 0)
}

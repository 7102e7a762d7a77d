package domain

import "time"

// PersistenceOp labels a preference store operation.
type PersistenceOp string

const (
	// PersistenceOpLoad is a slot read at startup.
	PersistenceOpLoad PersistenceOp = "load"
	// PersistenceOpSave is a slot write after a mutation.
	PersistenceOpSave PersistenceOp = "save"
)

// PersistenceStatus labels the outcome of a preference store operation.
type PersistenceStatus string

const (
	// PersistenceStatusOK indicates the value was read or written.
	PersistenceStatusOK PersistenceStatus = "ok"
	// PersistenceStatusMissing indicates the slot was absent and the default was used.
	PersistenceStatusMissing PersistenceStatus = "missing"
	// PersistenceStatusFallback indicates a corrupt or unreadable slot was replaced by its default.
	PersistenceStatusFallback PersistenceStatus = "fallback"
	// PersistenceStatusFailed indicates a write was lost.
	PersistenceStatusFailed PersistenceStatus = "failed"
)

// Metrics records engine observations.
type Metrics interface {
	ObserveQuery(duration time.Duration, results int)
	ObserveImport(report ImportReport)
	ObservePersistence(op PersistenceOp, status PersistenceStatus)
}

// NoopMetrics discards all observations.
type NoopMetrics struct{}

func (NoopMetrics) ObserveQuery(time.Duration, int) {}
func (NoopMetrics) ObserveImport(ImportReport) {}
func (NoopMetrics) ObservePersistence(PersistenceOp, PersistenceStatus) {}

package prefstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tooldir/internal/domain"
	"tooldir/internal/infra/telemetry"
)

// Slots reads and writes named JSON preference values. Reads never fail:
// an absent, unreadable or corrupt slot yields the caller's default. Writes
// never fail either; a lost write is logged and the in-memory state stays
// authoritative until the next successful save.
type Slots struct {
	backend Backend
	logger  *zap.Logger
	metrics domain.Metrics
}

func NewSlots(backend Backend, logger *zap.Logger, metrics domain.Metrics) *Slots {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = domain.NoopMetrics{}
	}
	return &Slots{
		backend: backend,
		logger:  logger.Named("prefstore"),
		metrics: metrics,
	}
}

// Load decodes the slot into a T, or returns def.
func Load[T any](s *Slots, key string, def T) T {
	raw, found, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn("preference slot unreadable, using default",
			telemetry.SlotField(key),
			telemetry.EventField(telemetry.EventSlotFallback),
			zap.Error(err),
		)
		s.metrics.ObservePersistence(domain.PersistenceOpLoad, domain.PersistenceStatusFallback)
		return def
	}
	if !found {
		s.metrics.ObservePersistence(domain.PersistenceOpLoad, domain.PersistenceStatusMissing)
		return def
	}
	value, err := decodeSlot[T](raw)
	if err != nil {
		s.logger.Warn("preference slot corrupt, using default",
			telemetry.SlotField(key),
			telemetry.EventField(telemetry.EventSlotFallback),
			zap.Error(err),
		)
		s.metrics.ObservePersistence(domain.PersistenceOpLoad, domain.PersistenceStatusFallback)
		return def
	}
	s.metrics.ObservePersistence(domain.PersistenceOpLoad, domain.PersistenceStatusOK)
	return value
}

func decodeSlot[T any](raw []byte) (T, error) {
	var value T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return value, errors.New("empty slot value")
	}
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return value, fmt.Errorf("decode slot: %w", err)
	}
	return value, nil
}

// Save encodes value and writes it to the slot. It reports whether the write landed.
func (s *Slots) Save(key string, value any) bool {
	data, err := json.Marshal(value)
	if err == nil {
		err = s.backend.Put(key, data)
	}
	if err != nil {
		s.logger.Warn("preference slot write lost",
			telemetry.SlotField(key),
			telemetry.EventField(telemetry.EventSlotWriteFailed),
			zap.Error(err),
		)
		s.metrics.ObservePersistence(domain.PersistenceOpSave, domain.PersistenceStatusFailed)
		return false
	}
	s.metrics.ObservePersistence(domain.PersistenceOpSave, domain.PersistenceStatusOK)
	return true
}

// Snapshot returns every stored slot as raw JSON.
func (s *Slots) Snapshot() (map[string]json.RawMessage, error) {
	keys, err := s.backend.Keys()
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, found, err := s.backend.Get(key)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		if !json.Valid(raw) {
			// Corrupt slots are shown as the string they hold.
			quoted, _ := json.Marshal(string(raw))
			raw = quoted
		}
		out[key] = raw
	}
	return out, nil
}

// Ping reports whether the backend can still be read.
func (s *Slots) Ping() error {
	_, err := s.backend.Keys()
	return err
}

// Reset deletes every stored slot so the next load sees defaults.
func (s *Slots) Reset() error {
	keys, err := s.backend.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.backend.Delete(key); err != nil {
			return fmt.Errorf("reset slot %s: %w", key, err)
		}
	}
	s.logger.Info("preferences reset", zap.Int("slots", len(keys)))
	return nil
}

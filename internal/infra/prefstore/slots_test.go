package prefstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tooldir/internal/domain"
)

type failingBackend struct {
	*Memory
	getErr error
	putErr error
}

func (b *failingBackend) Get(key string) ([]byte, bool, error) {
	if b.getErr != nil {
		return nil, false, b.getErr
	}
	return b.Memory.Get(key)
}

func (b *failingBackend) Put(key string, value []byte) error {
	if b.putErr != nil {
		return b.putErr
	}
	return b.Memory.Put(key, value)
}

type recordingMetrics struct {
	domain.NoopMetrics
	persistence []domain.PersistenceStatus
}

func (m *recordingMetrics) ObservePersistence(_ domain.PersistenceOp, status domain.PersistenceStatus) {
	m.persistence = append(m.persistence, status)
}

func TestSlotsRoundTrip(t *testing.T) {
	slots := NewSlots(NewMemory(), nil, nil)

	require.True(t, slots.Save(domain.SlotFavorites, domain.NewStringSet("b", "a")))
	got := Load(slots, domain.SlotFavorites, domain.StringSet(nil))
	require.Equal(t, domain.StringSet{"a", "b"}, got)

	tools := domain.SeedTools()[:2]
	require.True(t, slots.Save(domain.SlotCatalog, tools))
	require.Equal(t, tools, Load(slots, domain.SlotCatalog, []domain.Tool(nil)))
}

func TestSlotsLoadMissingUsesDefault(t *testing.T) {
	metrics := &recordingMetrics{}
	slots := NewSlots(NewMemory(), zap.NewNop(), metrics)

	require.Equal(t, "fallback", Load(slots, domain.SlotQueryText, "fallback"))
	require.Equal(t, []domain.PersistenceStatus{domain.PersistenceStatusMissing}, metrics.persistence)
}

func TestSlotsLoadCorruptUsesDefault(t *testing.T) {
	backend := NewMemory()
	require.NoError(t, backend.Put(domain.SlotThemeDark, []byte(`{not json`)))
	require.NoError(t, backend.Put(domain.SlotCatalog, []byte(`null`)))
	require.NoError(t, backend.Put(domain.SlotQueryOnlyFavorites, []byte(`"yes"`)))

	core, logs := observer.New(zap.WarnLevel)
	metrics := &recordingMetrics{}
	slots := NewSlots(backend, zap.New(core), metrics)

	require.True(t, Load(slots, domain.SlotThemeDark, true))
	require.Equal(t, domain.SeedTools(), Load(slots, domain.SlotCatalog, domain.SeedTools()))
	require.False(t, Load(slots, domain.SlotQueryOnlyFavorites, false))

	require.Equal(t, 3, logs.FilterMessage("preference slot corrupt, using default").Len())
	require.Equal(t, []domain.PersistenceStatus{
		domain.PersistenceStatusFallback,
		domain.PersistenceStatusFallback,
		domain.PersistenceStatusFallback,
	}, metrics.persistence)
}

func TestSlotsLoadReadErrorUsesDefault(t *testing.T) {
	backend := &failingBackend{Memory: NewMemory(), getErr: errors.New("disk on fire")}
	slots := NewSlots(backend, nil, nil)

	require.Equal(t, domain.SortTrending, Load(slots, domain.SlotQuerySort, domain.SortTrending))
}

func TestSlotsSaveFailureIsSwallowed(t *testing.T) {
	backend := &failingBackend{Memory: NewMemory(), putErr: errors.New("quota exceeded")}
	core, logs := observer.New(zap.WarnLevel)
	metrics := &recordingMetrics{}
	slots := NewSlots(backend, zap.New(core), metrics)

	require.False(t, slots.Save(domain.SlotQueryText, "dns"))
	require.Equal(t, 1, logs.FilterMessage("preference slot write lost").Len())
	require.Equal(t, []domain.PersistenceStatus{domain.PersistenceStatusFailed}, metrics.persistence)
}

func TestSlotsSnapshotAndReset(t *testing.T) {
	backend := NewMemory()
	require.NoError(t, backend.Put(domain.SlotThemeDark, []byte(`true`)))
	require.NoError(t, backend.Put(domain.SlotQueryText, []byte(`{broken`)))
	slots := NewSlots(backend, nil, nil)

	snapshot, err := slots.Snapshot()
	require.NoError(t, err)
	require.JSONEq(t, `true`, string(snapshot[domain.SlotThemeDark]))
	require.JSONEq(t, `"{broken"`, string(snapshot[domain.SlotQueryText]))

	require.NoError(t, slots.Reset())
	keys, err := backend.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestSlotsPing(t *testing.T) {
	backend := NewMemory()
	slots := NewSlots(backend, nil, nil)
	require.NoError(t, slots.Ping())

	require.NoError(t, backend.Close())
	require.ErrorIs(t, slots.Ping(), domain.ErrStoreClosed)
}

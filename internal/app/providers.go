package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tooldir/internal/domain"
	"tooldir/internal/infra/filter"
	"tooldir/internal/infra/prefstore"
	"tooldir/internal/infra/telemetry"
)

// StoreOptions selects the preference backend.
type StoreOptions struct {
	Path      string
	Ephemeral bool
}

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

// NewBackend opens the bbolt preference store, or an in-memory one when
// opts.Ephemeral is set. An empty path resolves to the per-user default.
func NewBackend(opts StoreOptions, cfg Config, logger *zap.Logger) (prefstore.Backend, func(), error) {
	if opts.Ephemeral {
		backend := prefstore.NewMemory()
		return backend, func() { _ = backend.Close() }, nil
	}

	path := opts.Path
	if path == "" {
		path = cfg.StorePath
	}
	if path == "" {
		path = prefstore.ResolveDefaultPath()
	}
	store, err := prefstore.OpenStore(path)
	if err != nil {
		return nil, nil, domain.Wrap(domain.CodeUnavailable, "open preferences", err)
	}
	logger.Debug("preferences opened", telemetry.PathField(store.Path()))
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("preferences close failed", zap.Error(err))
		}
	}, nil
}

func NewSlots(backend prefstore.Backend, logger *zap.Logger, metrics domain.Metrics) *prefstore.Slots {
	return prefstore.NewSlots(backend, logger, metrics)
}

func NewEngine(cfg Config) *filter.Engine {
	return filter.NewEngine(cfg.Locale)
}

func ProvideSession(
	id SessionID,
	slots *prefstore.Slots,
	engine *filter.Engine,
	logger *zap.Logger,
	metrics domain.Metrics,
	cfg Config,
) *Session {
	return NewSession(SessionOptions{
		ID:            string(id),
		Slots:         slots,
		Engine:        engine,
		Logger:        logger,
		Metrics:       metrics,
		TagCloudLimit: cfg.TagCloudLimit,
	})
}

package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tooldir/internal/domain"
	"tooldir/internal/infra/prefstore"
	"tooldir/internal/infra/telemetry"
)

// Runtime is everything a command needs to serve one session.
type Runtime struct {
	Config   Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  domain.Metrics
	Slots    *prefstore.Slots
	Session  *Session
}

func NewRuntime(
	cfg Config,
	logger *zap.Logger,
	registry *prometheus.Registry,
	metrics domain.Metrics,
	slots *prefstore.Slots,
	session *Session,
) *Runtime {
	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Metrics:  metrics,
		Slots:    slots,
		Session:  session,
	}
}

// ResetPreferences deletes every stored slot.
func (r *Runtime) ResetPreferences() error {
	if err := r.Slots.Reset(); err != nil {
		return domain.Wrap(domain.CodeUnavailable, "reset preferences", err)
	}
	r.Logger.Info("preferences reset", telemetry.EventField(telemetry.EventPreferencesReset))
	return nil
}

// ServeObservability serves /metrics and /healthz until ctx is done. It
// returns immediately when no listen address is configured.
func (r *Runtime) ServeObservability(ctx context.Context) error {
	return telemetry.StartHTTPServer(ctx, telemetry.HTTPServerOptions{
		Addr:     r.Config.Observability.ListenAddress,
		Registry: r.Registry,
		Check: func(context.Context) error {
			return r.Slots.Ping()
		},
	}, r.Logger)
}

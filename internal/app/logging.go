package app

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tooldir/internal/infra/telemetry"
)

// SessionID identifies one process run in log lines.
type SessionID string

// LoggingConfig configures logging wiring.
type LoggingConfig struct {
	Logger    *zap.Logger
	SessionID string
	Source    string
}

// Logging bundles the logger and the session id attached to it.
type Logging struct {
	Logger    *zap.Logger
	SessionID SessionID
}

// NewLogging constructs logging dependencies.
func NewLogging(cfg LoggingConfig) Logging {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	source := cfg.Source
	if source == "" {
		source = telemetry.LogSourceCore
	}
	id := cfg.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	return Logging{
		Logger:    logger.With(zap.String(telemetry.FieldLogSource, source)),
		SessionID: SessionID(id),
	}
}

// NewLogger returns the logger from a Logging bundle.
func NewLogger(logging Logging) *zap.Logger {
	return logging.Logger
}

// NewSessionID returns the session id from a Logging bundle.
func NewSessionID(logging Logging) SessionID {
	return logging.SessionID
}

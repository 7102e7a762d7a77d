//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

var CoreInfraSet = wire.NewSet(
	NewLogging,
	NewLogger,
	NewSessionID,
	NewMetricsRegistry,
	NewMetrics,
)

var SessionSet = wire.NewSet(
	NewBackend,
	NewSlots,
	NewEngine,
	ProvideSession,
)

var RuntimeSet = wire.NewSet(
	CoreInfraSet,
	SessionSet,
	NewRuntime,
)

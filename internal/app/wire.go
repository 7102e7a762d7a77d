//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

func InitializeRuntime(cfg Config, logging LoggingConfig, store StoreOptions) (*Runtime, func(), error) {
	wire.Build(RuntimeSet)
	return nil, nil, nil
}

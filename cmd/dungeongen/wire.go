//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/dungeongen/internal/config"
	"github.com/cory-johannsen/dungeongen/internal/storage/postgres"
)

func initializeApp(cfg config.Config) (*App, func(), error) {
	wire.Build(provideLogger, provideScripts, provideGenerator, newApp)
	return nil, nil, nil
}

func initializeRepository(ctx context.Context, cfg config.Config) (*postgres.DungeonRepository, func(), error) {
	wire.Build(providePool, provideRepository)
	return nil, nil, nil
}

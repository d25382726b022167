package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeongen/internal/config"
	"github.com/cory-johannsen/dungeongen/internal/dungeon"
	"github.com/cory-johannsen/dungeongen/internal/observability"
	"github.com/cory-johannsen/dungeongen/internal/scripting"
	"github.com/cory-johannsen/dungeongen/internal/storage/postgres"
)

// tagScriptSet names the script set holding tag_room.
const tagScriptSet = "tagging"

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// provideScripts loads the tagging scripts when a script directory is configured.
func provideScripts(cfg config.Config, logger *zap.Logger) (*scripting.Manager, func(), error) {
	mgr := scripting.NewManager(logger)
	if cfg.Scripting.ScriptDir != "" {
		if err := mgr.Load(tagScriptSet, cfg.Scripting.ScriptDir, cfg.Scripting.InstructionLimit); err != nil {
			mgr.Close()
			return nil, nil, err
		}
	}
	return mgr, mgr.Close, nil
}

func provideGenerator(cfg config.Config, logger *zap.Logger, mgr *scripting.Manager) *dungeon.Generator {
	opts := []dungeon.Option{dungeon.WithRNGTrace(cfg.Generation.TraceRNG)}
	if cfg.Scripting.ScriptDir != "" {
		opts = append(opts, dungeon.WithTagger(luaTagger(mgr)))
	}
	return dungeon.NewGenerator(logger, opts...)
}

// luaTagger names rooms through the tag_room hook.
func luaTagger(mgr *scripting.Manager) dungeon.Tagger {
	return dungeon.TaggerFunc(func(index int, r dungeon.Room) string {
		return mgr.TagRoom(tagScriptSet, scripting.RoomInfo{
			Index:  index,
			StartX: r.StartX,
			StartZ: r.StartZ,
			Width:  r.Width,
			Depth:  r.Depth,
			Tag:    r.Tag,
		})
	})
}

func providePool(ctx context.Context, cfg config.Config) (*postgres.Pool, func(), error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return pool, pool.Close, nil
}

func provideRepository(pool *postgres.Pool) *postgres.DungeonRepository {
	return postgres.NewDungeonRepository(pool.DB())
}

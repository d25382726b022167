package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeongen/internal/config"
	"github.com/cory-johannsen/dungeongen/internal/dungeon"
	"github.com/cory-johannsen/dungeongen/internal/export"
	"github.com/cory-johannsen/dungeongen/internal/render"
	"github.com/cory-johannsen/dungeongen/internal/storage/postgres"
	"github.com/cory-johannsen/dungeongen/internal/zone"
)

// App generates dungeons and writes them out.
type App struct {
	cfg    config.Config
	logger *zap.Logger
	gen    *dungeon.Generator
	// repo is set when generated dungeons are saved.
	repo *postgres.DungeonRepository
}

func newApp(cfg config.Config, logger *zap.Logger, gen *dungeon.Generator) *App {
	return &App{cfg: cfg, logger: logger, gen: gen}
}

// batchParams returns count parameter sets. A fixed seed s yields seeds
// s, s+1, ...; seed 0 leaves every run to draw its own.
func batchParams(base dungeon.Params, count int) []dungeon.Params {
	params := make([]dungeon.Params, count)
	for i := range params {
		params[i] = base
		if base.Seed != 0 {
			params[i].Seed = base.Seed + int64(i)
		}
	}
	return params
}

// Run generates count dungeons and writes them to outPath, or to stdout
// when outPath is empty. With count > 1 and an outPath, each dungeon goes to
// its own file named by inserting -<i> before the extension.
func (a *App) Run(ctx context.Context, stdout io.Writer, count int, outPath string) error {
	params := batchParams(a.cfg.Generation.Params(), count)
	dungeons, err := dungeon.GenerateBatch(ctx, a.gen, params)
	if err != nil {
		return err
	}

	for i, d := range dungeons {
		if a.repo != nil {
			rec, err := a.repo.Create(ctx, params[i], d)
			if err != nil {
				return fmt.Errorf("saving dungeon %d: %w", i, err)
			}
			a.logger.Info("dungeon saved", zap.Stringer("id", rec.ID), zap.Int64("seed", d.Seed()))
		}

		if outPath == "" {
			if i > 0 {
				if err := a.separator(stdout); err != nil {
					return err
				}
			}
			if err := a.write(stdout, d); err != nil {
				return err
			}
			continue
		}

		path := outPath
		if count > 1 {
			path = indexedPath(outPath, i)
		}
		if err := a.writeFile(path, d); err != nil {
			return err
		}
		a.logger.Info("dungeon written", zap.String("path", path), zap.Int64("seed", d.Seed()))
	}
	return nil
}

func (a *App) writeFile(path string, d *dungeon.Dungeon) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := a.write(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *App) write(w io.Writer, d *dungeon.Dungeon) error {
	switch a.cfg.Output.Format {
	case "ascii":
		mode, err := render.ParseColorMode(a.cfg.Output.Color)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "seed %d, %dx%d, %d rooms\n", d.Seed(), d.Width(), d.Depth(), d.RoomCount()); err != nil {
			return err
		}
		return render.New(mode, w).Render(w, d)
	case "zone":
		z, err := zone.FromDungeon(d, fmt.Sprintf("dungeon_%d", d.Seed()), fmt.Sprintf("Dungeon %d", d.Seed()))
		if err != nil {
			return err
		}
		data, err := zone.Marshal(z)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		f, err := export.ParseFormat(a.cfg.Output.Format)
		if err != nil {
			return err
		}
		return export.Encode(w, d, f)
	}
}

// separator is written between dungeons sharing stdout.
func (a *App) separator(w io.Writer) error {
	var err error
	switch a.cfg.Output.Format {
	case "yaml", "zone":
		_, err = io.WriteString(w, "---\n")
	case "ascii":
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func indexedPath(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}

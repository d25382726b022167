// Package main provides the dungeongen command: it generates dungeons and
// writes them as ASCII maps, JSON or YAML documents, or MUD zone files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeongen/internal/config"
)

// options holds the flags that are not part of Config.
type options struct {
	count int
	out   string
	save  bool
}

func main() {
	start := time.Now()

	cfg, opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, cleanup, err := initializeApp(cfg)
	if err != nil {
		log.Fatalf("initializing: %v", err)
	}
	defer cleanup()

	if opts.save {
		repo, closeRepo, err := initializeRepository(ctx, cfg)
		if err != nil {
			app.logger.Fatal("connecting to database", zap.Error(err))
		}
		defer closeRepo()
		app.repo = repo
	}

	if err := app.Run(ctx, os.Stdout, opts.count, opts.out); err != nil {
		app.logger.Error("generation failed", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
	app.logger.Debug("done", zap.Duration("elapsed", time.Since(start)))
}

// parseArgs layers flags over the config file, the DUNGEON_ environment and
// the defaults, in that order of precedence.
//
// Postcondition: Returns a validated Config or a non-nil error.
func parseArgs(args []string) (config.Config, options, error) {
	fs := flag.NewFlagSet("dungeongen", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to configuration file; empty = defaults and environment only")
	seed := fs.Int64("seed", 0, "generation seed; 0 draws a fresh seed per dungeon")
	width := fs.Int("width", 0, "dungeon width (x); even values are bumped to odd")
	depth := fs.Int("depth", 0, "dungeon depth (z); even values are bumped to odd")
	format := fs.String("format", "", "output format: ascii, json, yaml or zone")
	color := fs.String("color", "", "ascii colour: auto, always or never")
	traceRNG := fs.Bool("trace-rng", false, "log every random draw at debug level")
	out := fs.String("out", "", "output file; empty writes to stdout")
	count := fs.Int("count", 1, "number of dungeons to generate")
	save := fs.Bool("save", false, "store generated dungeons in PostgreSQL")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, options{}, err
	}
	if *count < 1 {
		return config.Config{}, options{}, fmt.Errorf("-count must be >= 1, got %d", *count)
	}

	v := config.NewViper()
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, options{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			v.Set("generation.seed", *seed)
		case "width":
			v.Set("generation.width", *width)
		case "depth":
			v.Set("generation.depth", *depth)
		case "format":
			v.Set("output.format", *format)
		case "color":
			v.Set("output.color", *color)
		case "trace-rng":
			v.Set("generation.trace_rng", *traceRNG)
		}
	})

	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return config.Config{}, options{}, err
	}
	return cfg, options{count: *count, out: *out, save: *save}, nil
}

package dungeon

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeongen/internal/rng"
)

// Generator runs the full pipeline: validate, place the entrance and rooms,
// build the graph, reduce it to an MST and carve corridors.
//
// A Generator holds no per-run state and is safe for concurrent Generate
// calls as long as its Tagger is.
type Generator struct {
	logger   *zap.Logger
	tagger   Tagger
	traceRNG bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithTagger names rooms through t as they are placed.
func WithTagger(t Tagger) Option {
	return func(g *Generator) { g.tagger = t }
}

// WithRNGTrace logs every random draw at debug level.
func WithRNGTrace(enabled bool) Option {
	return func(g *Generator) { g.traceRNG = enabled }
}

// NewGenerator creates a Generator.
//
// Precondition: logger must be non-nil.
func NewGenerator(logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates p and builds a dungeon from a source seeded with
// p.Seed, or with a fresh seed when p.Seed is 0.
//
// Postcondition: Returns a fully built Dungeon whose Seed() reproduces it,
// or a *ConfigError and no Dungeon.
func (g *Generator) Generate(p Params) (*Dungeon, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Seed == 0 {
		p.Seed = rng.NewSeed()
	}
	var src rng.Source = rng.NewSeeded(p.Seed)
	if g.traceRNG {
		src = rng.NewLogged(src, g.logger.With(zap.Int64("seed", p.Seed)))
	}
	return g.run(p.Normalized(), src), nil
}

// GenerateWith validates p and builds a dungeon drawing from src. p.Seed is
// only recorded on the result.
//
// Precondition: src must be non-nil.
func (g *Generator) GenerateWith(p Params, src rng.Source) (*Dungeon, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return g.run(p.Normalized(), src), nil
}

func (g *Generator) run(p Params, src rng.Source) *Dungeon {
	start := time.Now()
	log := g.logger.With(zap.Int64("seed", p.Seed))

	d := CreateDungeon(p.Width, p.Depth)
	d.seed = p.Seed

	entrance := PlaceEntrance(d, p.EntranceSize)
	log.Debug("entrance placed", zap.Stringer("room", entrance))

	placed := placeRooms(d, p.MinRoomSize, p.MaxRoomSize, p.Tries, src, g.tagger)
	for i, r := range d.rooms[1:] {
		log.Debug("room placed", zap.Int("index", i+1), zap.Stringer("room", r))
	}
	if placed == 0 {
		log.Debug("room placement budget exhausted without placing a room", zap.Int("tries", p.Tries))
	}

	edges := BuildConnectivityGraph(d)
	for _, e := range edges {
		log.Debug("edge", zap.Stringer("edge", e))
	}

	mst := ComputeMST(edges, d.rooms)
	for _, e := range mst {
		log.Debug("mst", zap.Stringer("edge", e))
	}

	corridors := CarveCorridors(d, mst, edges, p.ExtraCorridorChance, src)
	for _, e := range corridors {
		log.Debug("corridor", zap.Stringer("edge", e))
	}

	log.Info("dungeon generated",
		zap.Int("width", d.Width()),
		zap.Int("depth", d.Depth()),
		zap.Int("rooms", d.RoomCount()),
		zap.Int("edges", len(edges)),
		zap.Int("mst", len(mst)),
		zap.Int("corridors", len(corridors)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return d
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/dungeongen/internal/config"
	"github.com/cory-johannsen/dungeongen/internal/dungeon"
	"github.com/cory-johannsen/dungeongen/internal/export"
	"github.com/cory-johannsen/dungeongen/internal/zone"
)

func testConfig(t *testing.T, args ...string) config.Config {
	t.Helper()
	cfg, _, err := parseArgs(args)
	require.NoError(t, err)
	return cfg
}

func testApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return newApp(cfg, logger, dungeon.NewGenerator(logger))
}

func TestParseArgs_FlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
generation:
  width: 41
  seed: 5
output:
  format: yaml
`), 0644))

	cfg, opts, err := parseArgs([]string{"-config", path, "-seed", "77", "-depth", "20", "-count", "3", "-out", "d.txt", "-save"})
	require.NoError(t, err)
	assert.Equal(t, 41, cfg.Generation.Width)
	assert.Equal(t, 20, cfg.Generation.Depth)
	assert.Equal(t, int64(77), cfg.Generation.Seed)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, options{count: 3, out: "d.txt", save: true}, opts)
}

func TestParseArgs_Invalid(t *testing.T) {
	_, _, err := parseArgs([]string{"-count", "0"})
	assert.Error(t, err)

	_, _, err = parseArgs([]string{"-format", "png"})
	assert.Error(t, err)

	_, _, err = parseArgs([]string{"-width", "2"})
	assert.Error(t, err)

	_, _, err = parseArgs([]string{"-config", "/nonexistent/cfg.yaml"})
	assert.Error(t, err)
}

func TestBatchParams(t *testing.T) {
	base := dungeon.DefaultParams()
	base.Seed = 10
	params := batchParams(base, 3)
	require.Len(t, params, 3)
	assert.Equal(t, []int64{10, 11, 12}, []int64{params[0].Seed, params[1].Seed, params[2].Seed})

	base.Seed = 0
	for _, p := range batchParams(base, 2) {
		assert.Zero(t, p.Seed)
	}
}

func TestRun_ASCIIToStdout(t *testing.T) {
	app := testApp(t, testConfig(t, "-seed", "3", "-color", "never"))

	var buf bytes.Buffer
	require.NoError(t, app.Run(context.Background(), &buf, 2, ""))

	out := buf.String()
	assert.Contains(t, out, "seed 3, 29x29")
	assert.Contains(t, out, "seed 4, 29x29")
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t, 2*(29+1)+1, strings.Count(out, "\n"), "two headers, two maps, one separator")
}

func TestRun_JSONFilesPerDungeon(t *testing.T) {
	app := testApp(t, testConfig(t, "-seed", "9", "-format", "json"))
	out := filepath.Join(t.TempDir(), "dungeon.json")

	require.NoError(t, app.Run(context.Background(), &bytes.Buffer{}, 2, out))

	for i, seed := range []int64{9, 10} {
		f, err := os.Open(indexedPath(out, i))
		require.NoError(t, err)
		d, err := export.Decode(f, export.FormatJSON)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, seed, d.Seed())
	}
}

func TestRun_ZoneFile(t *testing.T) {
	app := testApp(t, testConfig(t, "-seed", "12", "-format", "zone"))
	out := filepath.Join(t.TempDir(), "zone.yaml")

	require.NoError(t, app.Run(context.Background(), &bytes.Buffer{}, 1, out))

	z, err := zone.LoadZoneFromFile(out)
	require.NoError(t, err)
	assert.Equal(t, "dungeon_12", z.ID)
	assert.Equal(t, "room_0", z.StartRoom)
}

func TestIndexedPath(t *testing.T) {
	assert.Equal(t, "out/map-2.txt", indexedPath("out/map.txt", 2))
	assert.Equal(t, "map-0", indexedPath("map", 0))
}

func TestInitializeApp_WithShippedScripts(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	t.Setenv("DUNGEON_SCRIPTING_SCRIPT_DIR", filepath.Join(root, "content", "scripts", "tagging"))
	t.Setenv("DUNGEON_LOGGING_LEVEL", "error")
	cfg := testConfig(t, "-seed", "21", "-format", "json")

	app, cleanup, err := initializeApp(cfg)
	require.NoError(t, err)
	defer cleanup()

	d, err := app.gen.Generate(cfg.Generation.Params())
	require.NoError(t, err)
	rooms := d.Rooms()
	assert.Equal(t, dungeon.TagEntrance, rooms[0].Tag)
	for _, r := range rooms[1:] {
		switch {
		case r.Width*r.Depth >= 20:
			assert.Equal(t, "Hall", r.Tag)
		case r.Width == 1 || r.Depth == 1:
			assert.Equal(t, "Gallery", r.Tag)
		case r.Width*r.Depth <= 4:
			assert.Equal(t, "Closet", r.Tag)
		default:
			assert.Equal(t, dungeon.TagDefault, r.Tag)
		}
	}
}

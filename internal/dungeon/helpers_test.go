package dungeon_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
)

// drawParams draws a valid parameter set small enough to generate quickly.
func drawParams(t *rapid.T) dungeon.Params {
	width := dungeon.NormalizeDimension(rapid.IntRange(5, 41).Draw(t, "width"))
	depth := dungeon.NormalizeDimension(rapid.IntRange(5, 41).Draw(t, "depth"))
	maxSize := rapid.IntRange(1, dungeon.MaxRoomSizeLimit(width, depth)).Draw(t, "maxSize")
	minSize := rapid.IntRange(1, maxSize).Draw(t, "minSize")
	return dungeon.Params{
		Width:               width,
		Depth:               depth,
		EntranceSize:        rapid.IntRange(1, 3).Draw(t, "entranceSize"),
		MinRoomSize:         minSize,
		MaxRoomSize:         maxSize,
		Tries:               rapid.IntRange(0, 300).Draw(t, "tries"),
		ExtraCorridorChance: rapid.Float64Range(0, 1).Draw(t, "extraChance"),
		Seed:                rapid.Int64Range(1, 1<<40).Draw(t, "seed"),
	}
}

func mustGenerate(t require.TestingT, p dungeon.Params) *dungeon.Dungeon {
	d, err := dungeon.NewGenerator(zap.NewNop()).Generate(p)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

// handPlaced builds a width × depth dungeon holding exactly rooms.
func handPlaced(t *testing.T, width, depth int, rooms ...dungeon.Room) *dungeon.Dungeon {
	t.Helper()
	d := dungeon.CreateDungeon(width, depth)
	for _, r := range rooms {
		require.NoError(t, dungeon.PlaceRoom(d, r))
	}
	return d
}

// countingSource is a deterministic Source that records how often it is used.
type countingSource struct {
	calls int
	value float64
}

func (c *countingSource) Intn(n int) int {
	c.calls++
	return 0
}

func (c *countingSource) Float64() float64 {
	c.calls++
	return c.value
}

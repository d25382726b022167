package dungeon_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
)

func TestParams_DefaultsAreValid(t *testing.T) {
	assert.NoError(t, dungeon.DefaultParams().Validate())
}

func TestParams_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dungeon.Params)
		want   string
	}{
		{"non-positive width", func(p *dungeon.Params) { p.Width = 0 }, "dimensions must be positive"},
		{"too small", func(p *dungeon.Params) { p.Depth = 3 }, "dimensions must be at least"},
		{"zero entrance", func(p *dungeon.Params) { p.EntranceSize = 0 }, "entrance_size must be >= 1"},
		{"entrance too large", func(p *dungeon.Params) { p.EntranceSize = 30 }, "does not fit"},
		{"min above max", func(p *dungeon.Params) { p.MinRoomSize = 5; p.MaxRoomSize = 4 }, "must not exceed"},
		{"zero min", func(p *dungeon.Params) { p.MinRoomSize = 0 }, "min_room_size must be >= 1"},
		{"max cannot fit", func(p *dungeon.Params) { p.MaxRoomSize = 27 }, "cannot fit"},
		{"negative tries", func(p *dungeon.Params) { p.Tries = -1 }, "tries must be >= 0"},
		{"chance above one", func(p *dungeon.Params) { p.ExtraCorridorChance = 1.5 }, "extra_corridor_chance"},
		{"chance NaN", func(p *dungeon.Params) { p.ExtraCorridorChance = math.NaN() }, "extra_corridor_chance"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := dungeon.DefaultParams()
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, dungeon.ErrInvalidParams)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParams_ValidateReportsEveryViolation(t *testing.T) {
	p := dungeon.Params{Width: 11, Depth: 11, EntranceSize: 0, MinRoomSize: 0, MaxRoomSize: 0, Tries: -5, ExtraCorridorChance: -1}
	err := p.Validate()
	var cfgErr *dungeon.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Violations, 4)
}

func TestParams_EvenDimensionsValidatedAfterCoercion(t *testing.T) {
	p := dungeon.DefaultParams()
	p.Width, p.Depth = 4, 4
	p.MinRoomSize, p.MaxRoomSize = 1, 2
	assert.NoError(t, p.Validate(), "4x4 becomes 5x5")
	assert.Equal(t, 5, p.Normalized().Width)
}

// TestParams_MaxRoomSizeLimitIsTight verifies that the limit is the largest
// max size that still validates.
func TestParams_MaxRoomSizeLimitIsTight(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := dungeon.DefaultParams()
		p.Width = rapid.IntRange(5, 61).Draw(rt, "width")
		p.Depth = rapid.IntRange(5, 61).Draw(rt, "depth")
		p.MinRoomSize = 1
		n := p.Normalized()
		p.MaxRoomSize = dungeon.MaxRoomSizeLimit(n.Width, n.Depth)
		assert.NoError(rt, p.Validate())
		p.MaxRoomSize++
		assert.Error(rt, p.Validate())
	})
}

package dungeon_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
)

func TestBuildConnectivityGraph_CompleteAndSorted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := mustGenerate(rt, drawParams(rt))
		rooms := d.Rooms()
		n := len(rooms)

		edges := dungeon.BuildConnectivityGraph(d)
		require.Len(rt, edges, n*(n-1)/2)

		seen := make(map[[2]int]bool, len(edges))
		for i, e := range edges {
			assert.Less(rt, e.A, e.B)
			assert.False(rt, seen[[2]int{e.A, e.B}], "duplicate pair %d-%d", e.A, e.B)
			seen[[2]int{e.A, e.B}] = true

			dx := float64(rooms[e.A].CenterX() - rooms[e.B].CenterX())
			dz := float64(rooms[e.A].CenterZ() - rooms[e.B].CenterZ())
			assert.InDelta(rt, math.Sqrt(dx*dx+dz*dz), e.Distance, 1e-9)
			if i > 0 {
				assert.LessOrEqual(rt, edges[i-1].Distance, e.Distance)
			}
		}
	})
}

// TestBuildConnectivityGraph_TiesKeepPairOrder places three rooms in a row so
// that two edges share the same length.
func TestBuildConnectivityGraph_TiesKeepPairOrder(t *testing.T) {
	d := handPlaced(t, 21, 21,
		dungeon.NewRoom(1, 1, 3, 3, ""),
		dungeon.NewRoom(5, 1, 3, 3, ""),
		dungeon.NewRoom(9, 1, 3, 3, ""),
	)
	edges := dungeon.BuildConnectivityGraph(d)
	require.Len(t, edges, 3)

	assert.Equal(t, [2]int{0, 1}, [2]int{edges[0].A, edges[0].B})
	assert.Equal(t, [2]int{1, 2}, [2]int{edges[1].A, edges[1].B})
	assert.Equal(t, [2]int{0, 2}, [2]int{edges[2].A, edges[2].B})
	assert.Equal(t, 4.0, edges[0].Distance)
	assert.Equal(t, 4.0, edges[1].Distance)
	assert.Equal(t, 8.0, edges[2].Distance)
}

func TestBuildConnectivityGraph_FewerThanTwoRooms(t *testing.T) {
	d := dungeon.CreateDungeon(11, 11)
	assert.Empty(t, dungeon.BuildConnectivityGraph(d))
	dungeon.PlaceEntrance(d, 2)
	assert.Empty(t, dungeon.BuildConnectivityGraph(d))
}

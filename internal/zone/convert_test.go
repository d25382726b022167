package zone_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
	"github.com/cory-johannsen/dungeongen/internal/zone"
)

func generate(t require.TestingT, seed int64, chance float64) *dungeon.Dungeon {
	p := dungeon.DefaultParams()
	p.Seed = seed
	p.ExtraCorridorChance = chance
	d, err := dungeon.NewGenerator(zap.NewNop()).Generate(p)
	require.NoError(t, err)
	return d
}

func TestFromDungeon_TwoRooms(t *testing.T) {
	d := dungeon.CreateDungeon(11, 11)
	require.NoError(t, dungeon.PlaceRoom(d, dungeon.NewRoom(1, 1, 2, 2, dungeon.TagEntrance)))
	require.NoError(t, dungeon.PlaceRoom(d, dungeon.NewRoom(7, 1, 2, 2, "Crypt")))
	dungeon.CarveCorridors(d, []dungeon.Edge{dungeon.NewEdge(d.Rooms(), 0, 1)}, nil, 0, nil)

	z, err := zone.FromDungeon(d, "crypt", "The Crypt")
	require.NoError(t, err)

	assert.Equal(t, "room_0", z.StartRoom)
	assert.Equal(t, []string{"room_0", "room_1"}, z.Order)

	entrance := z.Rooms["room_0"]
	assert.Equal(t, "Entrance", entrance.Title)
	assert.Equal(t, "1,1,2,2", entrance.Properties["bounds"])
	assert.Equal(t, "2,2", entrance.Properties["center"])
	exit, ok := entrance.ExitForDirection(zone.East)
	require.True(t, ok)
	assert.Equal(t, "room_1", exit.TargetRoom)

	crypt := z.Rooms["room_1"]
	assert.Equal(t, "Crypt", crypt.Title)
	exit, ok = crypt.ExitForDirection(zone.West)
	require.True(t, ok)
	assert.Equal(t, "room_0", exit.TargetRoom)
}

func TestFromDungeon_RepeatedDirectionUsesPassage(t *testing.T) {
	d := dungeon.CreateDungeon(21, 11)
	require.NoError(t, dungeon.PlaceRoom(d, dungeon.NewRoom(1, 4, 2, 2, dungeon.TagEntrance)))
	require.NoError(t, dungeon.PlaceRoom(d, dungeon.NewRoom(8, 4, 2, 2, "")))
	require.NoError(t, dungeon.PlaceRoom(d, dungeon.NewRoom(15, 4, 2, 2, "")))
	rooms := d.Rooms()
	dungeon.CarveCorridors(d, []dungeon.Edge{
		dungeon.NewEdge(rooms, 0, 1),
		dungeon.NewEdge(rooms, 0, 2),
	}, nil, 0, nil)

	z, err := zone.FromDungeon(d, "row", "Row")
	require.NoError(t, err)

	first := z.Rooms["room_0"]
	require.Len(t, first.Exits, 2)
	assert.Equal(t, zone.East, first.Exits[0].Direction)
	assert.Equal(t, "room_1", first.Exits[0].TargetRoom)
	assert.Equal(t, zone.Direction("passage_1"), first.Exits[1].Direction)
	assert.Equal(t, "room_2", first.Exits[1].TargetRoom)

	exit, ok := z.Rooms["room_2"].ExitForDirection(zone.West)
	require.True(t, ok)
	assert.Equal(t, "room_0", exit.TargetRoom)
}

func TestFromDungeon_NoRooms(t *testing.T) {
	_, err := zone.FromDungeon(dungeon.CreateDungeon(9, 9), "empty", "Empty")
	assert.Error(t, err)
}

// TestFromDungeon_ExitsMirrorCorridors verifies that every corridor yields
// exactly one exit on each side and every exit has a way back.
func TestFromDungeon_ExitsMirrorCorridors(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := generate(rt, rapid.Int64Range(1, 1<<40).Draw(rt, "seed"), rapid.Float64Range(0, 1).Draw(rt, "chance"))
		z, err := zone.FromDungeon(d, "gen", "Generated")
		require.NoError(rt, err)
		require.Len(rt, z.Rooms, d.RoomCount())

		exits := 0
		for id, room := range z.Rooms {
			exits += len(room.Exits)
			for _, e := range room.Exits {
				back := 0
				for _, r := range z.Rooms[e.TargetRoom].Exits {
					if r.TargetRoom == id {
						back++
					}
				}
				assert.Equal(rt, 1, back, "%s -> %s", id, e.TargetRoom)
			}
		}
		assert.Equal(rt, 2*len(d.Corridors()), exits)
	})
}

func TestWriteFile_RoundTrip(t *testing.T) {
	z, err := zone.FromDungeon(generate(t, 21, 0.4), "gen", "Generated")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, zone.WriteFile(path, z))

	loaded, err := zone.LoadZoneFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, z, loaded)
}

package zone

import (
	"fmt"
	"strconv"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
)

// RoomID returns the zone room ID of dungeon room i.
func RoomID(i int) string {
	return fmt.Sprintf("room_%d", i)
}

// DirectionFromDelta returns the compass direction of a (dx, dz) offset.
// An axis dominating the other by more than a factor of two gives a cardinal
// direction, anything else a diagonal.
//
// Precondition: dx and dz must not both be zero.
func DirectionFromDelta(dx, dz int) Direction {
	ax, az := abs(dx), abs(dz)
	switch {
	case ax > 2*az:
		if dx > 0 {
			return East
		}
		return West
	case az > 2*ax:
		if dz > 0 {
			return North
		}
		return South
	case dz > 0 && dx > 0:
		return Northeast
	case dz > 0:
		return Northwest
	case dx > 0:
		return Southeast
	default:
		return Southwest
	}
}

// FromDungeon converts d into a zone. Every room becomes RoomID(i) and every
// corridor becomes a pair of exits pointing along the centre-to-centre
// direction. When a room already has an exit that way, the corridor uses the
// named exit "passage_<j>" on that side, j being the corridor index.
//
// Precondition: d must hold at least one room.
// Postcondition: Returns a validated Zone or a non-nil error.
func FromDungeon(d *dungeon.Dungeon, id, name string) (*Zone, error) {
	rooms := d.Rooms()
	if len(rooms) == 0 {
		return nil, fmt.Errorf("zone %q: dungeon has no rooms", id)
	}

	z := &Zone{
		ID:          id,
		Name:        name,
		Description: fmt.Sprintf("A %dx%d dungeon of %d rooms (seed %d).", d.Width(), d.Depth(), len(rooms), d.Seed()),
		StartRoom:   RoomID(0),
		Rooms:       make(map[string]*Room, len(rooms)),
		Order:       make([]string, 0, len(rooms)),
	}
	for i, r := range rooms {
		room := &Room{
			ID:          RoomID(i),
			ZoneID:      id,
			Title:       roomTitle(i, r),
			Description: fmt.Sprintf("A %d by %d chamber.", r.Width, r.Depth),
			Properties: map[string]string{
				"tag":    r.Tag,
				"bounds": fmt.Sprintf("%d,%d,%d,%d", r.StartX, r.StartZ, r.Width, r.Depth),
				"center": fmt.Sprintf("%d,%d", r.CenterX(), r.CenterZ()),
			},
		}
		z.Rooms[room.ID] = room
		z.Order = append(z.Order, room.ID)
	}

	for j, e := range d.Corridors() {
		a, b := rooms[e.A], rooms[e.B]
		dir := DirectionFromDelta(b.CenterX()-a.CenterX(), b.CenterZ()-a.CenterZ())
		passage := Direction("passage_" + strconv.Itoa(j))
		link(z.Rooms[RoomID(e.A)], dir, passage, RoomID(e.B))
		link(z.Rooms[RoomID(e.B)], dir.Opposite(), passage, RoomID(e.A))
	}

	if err := z.Validate(); err != nil {
		return nil, err
	}
	return z, nil
}

func link(from *Room, dir, fallback Direction, target string) {
	if _, taken := from.ExitForDirection(dir); taken {
		dir = fallback
	}
	from.Exits = append(from.Exits, Exit{Direction: dir, TargetRoom: target})
}

func roomTitle(i int, r dungeon.Room) string {
	switch {
	case r.Tag == dungeon.TagEntrance:
		return "Entrance"
	case r.Tag != dungeon.TagDefault && r.Tag != "":
		return r.Tag
	default:
		return "Chamber " + strconv.Itoa(i)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

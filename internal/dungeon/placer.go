package dungeon

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeongen/internal/rng"
)

// Tagger names a room just before it is placed. An empty result keeps
// TagDefault.
//
// Implementations shared across a batch must be safe for concurrent use.
type Tagger interface {
	TagRoom(index int, r Room) string
}

// TaggerFunc adapts a plain function to Tagger.
type TaggerFunc func(index int, r Room) string

// TagRoom calls f.
func (f TaggerFunc) TagRoom(index int, r Room) string {
	return f(index, r)
}

// EntranceRoom returns the entrance rectangle for a width × depth dungeon:
// a size × size room centred on the midpoint of the west or south edge,
// whichever lies along the longer axis.
func EntranceRoom(width, depth, size int) Room {
	startX, startZ := 0, 0
	if width >= depth {
		startX = width/2 - 1
	} else {
		startZ = depth/2 - 1
	}
	return NewRoom(startX, startZ, size, size, TagEntrance)
}

// PlaceEntrance adds the entrance room to an empty dungeon.
//
// Precondition: d has no rooms; the entrance fits inside the grid. Panics otherwise.
// Postcondition: d.Rooms()[0] is the entrance and its cells are visible Room cells.
func PlaceEntrance(d *Dungeon, size int) Room {
	if len(d.rooms) != 0 {
		panic("dungeon: entrance must be the first room placed")
	}
	entrance := EntranceRoom(d.Width(), d.Depth(), size)
	if entrance.EndX() > d.Width() || entrance.EndZ() > d.Depth() {
		panic(fmt.Sprintf("dungeon: entrance %s does not fit %dx%d grid", entrance, d.Width(), d.Depth()))
	}
	d.addRoom(entrance)
	return entrance
}

// PlaceRooms makes tries attempts to add a random room of side lengths in
// [minSize, maxSize]. A candidate is kept only if it lies inside the border
// and intersects no room placed before it.
//
// Precondition: 1 <= minSize <= maxSize <= min(Width, Depth)-3.
// Postcondition: Returns the number of rooms added (0..tries); no two rooms intersect.
func PlaceRooms(d *Dungeon, minSize, maxSize, tries int, src rng.Source) int {
	return placeRooms(d, minSize, maxSize, tries, src, nil)
}

func placeRooms(d *Dungeon, minSize, maxSize, tries int, src rng.Source, tagger Tagger) int {
	width, depth := d.Width(), d.Depth()
	placed := 0

	for i := 0; i < tries; i++ {
		w := rng.Range(src, minSize, maxSize+1)
		h := rng.Range(src, minSize, maxSize+1)
		startX := rng.Range(src, 1, width-w-1)
		startZ := rng.Range(src, 1, depth-h-1)

		if startX+w > width-1 || startZ+h > depth-1 {
			continue
		}

		candidate := NewRoom(startX, startZ, w, h, TagDefault)
		if d.overlapsAny(candidate) {
			continue
		}

		if tagger != nil {
			if tag := tagger.TagRoom(len(d.rooms), candidate); tag != "" {
				candidate.Tag = tag
			}
		}
		d.addRoom(candidate)
		placed++
	}
	return placed
}

func (d *Dungeon) overlapsAny(candidate Room) bool {
	for _, other := range d.rooms {
		if candidate.Intersects(other) {
			return true
		}
	}
	return false
}

// Errors returned by PlaceRoom.
var (
	ErrRoomOutOfBounds = errors.New("room outside dungeon")
	ErrRoomOverlaps    = errors.New("room overlaps an existing room")
)

// PlaceRoom adds a hand-authored room. The first room placed on an empty
// dungeon is its entrance.
//
// Postcondition: Returns nil and carves the room, or ErrRoomOutOfBounds /
// ErrRoomOverlaps and leaves d unchanged.
func PlaceRoom(d *Dungeon, r Room) error {
	if d.carved {
		return errors.New("dungeon already has corridors")
	}
	if r.Width <= 0 || r.Depth <= 0 || r.StartX < 0 || r.StartZ < 0 || r.EndX() > d.Width() || r.EndZ() > d.Depth() {
		return fmt.Errorf("%w: %s in %dx%d", ErrRoomOutOfBounds, r, d.Width(), d.Depth())
	}
	if d.overlapsAny(r) {
		return fmt.Errorf("%w: %s", ErrRoomOverlaps, r)
	}
	if r.Tag == "" {
		r.Tag = TagDefault
	}
	d.addRoom(r)
	return nil
}

package dungeon

import "fmt"

// Room tags assigned by the generator.
const (
	TagDefault  = "NA"
	TagEntrance = "Entrance"
)

// Room is an axis-aligned rectangle anchored at its lower-left corner.
//
// Rooms are values; a placed room is identified by its index in
// Dungeon.Rooms, never by comparing fields.
type Room struct {
	StartX int
	StartZ int
	Width  int
	Depth  int
	Tag    string
}

// NewRoom builds a room. An empty tag becomes TagDefault.
//
// Precondition: width > 0 and depth > 0. Panics otherwise.
func NewRoom(startX, startZ, width, depth int, tag string) Room {
	if width <= 0 || depth <= 0 {
		panic(fmt.Sprintf("dungeon: room size must be positive, got %dx%d", width, depth))
	}
	if tag == "" {
		tag = TagDefault
	}
	return Room{StartX: startX, StartZ: startZ, Width: width, Depth: depth, Tag: tag}
}

// CenterX returns the x coordinate of the room centre (floor division).
func (r Room) CenterX() int {
	return r.StartX + r.Width/2
}

// CenterZ returns the z coordinate of the room centre (floor division).
func (r Room) CenterZ() int {
	return r.StartZ + r.Depth/2
}

// Center returns the centre cell of the room.
func (r Room) Center() (x, z int) {
	return r.CenterX(), r.CenterZ()
}

// EndX is the first column past the room.
func (r Room) EndX() int { return r.StartX + r.Width }

// EndZ is the first row past the room.
func (r Room) EndZ() int { return r.StartZ + r.Depth }

// Contains reports whether cell (x, z) lies inside the room.
func (r Room) Contains(x, z int) bool {
	return x >= r.StartX && x < r.EndX() && z >= r.StartZ && z < r.EndZ()
}

// Intersects reports whether r and other overlap. Touching counts as
// overlapping: rooms with no wall cell between them intersect.
func (r Room) Intersects(other Room) bool {
	return !(r.EndX() < other.StartX || other.EndX() < r.StartX ||
		r.EndZ() < other.StartZ || other.EndZ() < r.StartZ)
}

// String returns a debug representation of the room.
func (r Room) String() string {
	return fmt.Sprintf("%s X: %d, Z: %d, Width: %d, Depth: %d", r.Tag, r.StartX, r.StartZ, r.Width, r.Depth)
}

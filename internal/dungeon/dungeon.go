package dungeon

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// MinDimension is the smallest width or depth a dungeon may have.
const MinDimension = 5

// Dungeon is the aggregate produced by the generation pipeline: the grid,
// the placed rooms (index 0 is the entrance) and the accepted corridors.
//
// Invariant: rooms only grow; corridors are assigned exactly once.
type Dungeon struct {
	grid      *grid
	rooms     []Room
	corridors []Edge
	carved    bool
	seed      int64
}

// NormalizeDimension bumps an even dimension to the next odd number so the
// grid has a single centre cell.
func NormalizeDimension(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// CreateDungeon returns an all-wall dungeon. Even dimensions are coerced to odd.
//
// Precondition: width > 0 and depth > 0. Panics otherwise.
// Postcondition: Width() and Depth() are odd; every cell is an invisible wall.
func CreateDungeon(width, depth int) *Dungeon {
	if width <= 0 || depth <= 0 {
		panic(fmt.Sprintf("dungeon: dimensions must be positive, got %dx%d", width, depth))
	}
	return &Dungeon{grid: newGrid(NormalizeDimension(width), NormalizeDimension(depth))}
}

// Width returns the number of columns.
func (d *Dungeon) Width() int { return d.grid.width }

// Depth returns the number of rows.
func (d *Dungeon) Depth() int { return d.grid.depth }

// Seed returns the seed the dungeon was generated from, or 0 if it was built
// by hand.
func (d *Dungeon) Seed() int64 { return d.seed }

// InBounds reports whether (x, z) is a grid coordinate.
func (d *Dungeon) InBounds(x, z int) bool { return d.grid.inBounds(x, z) }

// Cell returns the cell at (x, z).
//
// Precondition: InBounds(x, z). Panics otherwise.
func (d *Dungeon) Cell(x, z int) Cell { return d.grid.at(x, z) }

// Rooms returns a copy of the placed rooms in insertion order.
func (d *Dungeon) Rooms() []Room {
	out := make([]Room, len(d.rooms))
	copy(out, d.rooms)
	return out
}

// RoomCount returns the number of placed rooms.
func (d *Dungeon) RoomCount() int { return len(d.rooms) }

// Room returns the room at index i.
func (d *Dungeon) Room(i int) Room { return d.rooms[i] }

// Corridors returns a copy of the accepted corridor edges.
func (d *Dungeon) Corridors() []Edge {
	out := make([]Edge, len(d.corridors))
	copy(out, d.corridors)
	return out
}

// Entrance returns the first placed room.
//
// Postcondition: Returns (room, true) once PlaceEntrance has run, or (Room{}, false).
func (d *Dungeon) Entrance() (Room, bool) {
	if len(d.rooms) == 0 {
		return Room{}, false
	}
	return d.rooms[0], true
}

// SpawnPoint returns the cell a player starts on: the entrance centre.
func (d *Dungeon) SpawnPoint() (x, z int, ok bool) {
	entrance, ok := d.Entrance()
	if !ok {
		return 0, 0, false
	}
	x, z = entrance.Center()
	return x, z, true
}

// RoomAt returns the index of the room containing (x, z), or -1.
func (d *Dungeon) RoomAt(x, z int) int {
	for i, r := range d.rooms {
		if r.Contains(x, z) {
			return i
		}
	}
	return -1
}

// CountKind returns how many cells currently have the given kind.
func (d *Dungeon) CountKind(kind CellKind) int {
	n := 0
	for _, c := range d.grid.cells {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Connected reports whether every room is reachable from the entrance by
// 4-neighbour steps over passable cells. A dungeon with no rooms is not
// connected; a single room trivially is.
func (d *Dungeon) Connected() bool {
	if len(d.rooms) == 0 {
		return false
	}
	type point struct{ x, z int }

	sx, sz := d.rooms[0].Center()
	visited := mapset.New[point]()
	visited.Put(point{sx, sz})
	queue := []point{{sx, sz}}
	steps := [4]point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range steps {
			next := point{cur.x + s.x, cur.z + s.z}
			if !d.grid.inBounds(next.x, next.z) || visited.Has(next) {
				continue
			}
			if !d.grid.at(next.x, next.z).Passable() {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	for _, r := range d.rooms {
		if !visited.Has(point{r.CenterX(), r.CenterZ()}) {
			return false
		}
	}
	return true
}

// addRoom appends r and carves its cells to visible Room cells.
func (d *Dungeon) addRoom(r Room) {
	d.rooms = append(d.rooms, r)
	for x := r.StartX; x < r.EndX(); x++ {
		for z := r.StartZ; z < r.EndZ(); z++ {
			d.grid.set(x, z, KindRoom, true)
		}
	}
}

// carveCorridorCell turns a wall into a visible corridor; any other kind is
// left untouched.
func (d *Dungeon) carveCorridorCell(x, z int) {
	if d.grid.at(x, z).Kind == KindWall {
		d.grid.set(x, z, KindCorridor, true)
	}
}

func (d *Dungeon) endpoints(e Edge) (Room, Room) {
	if e.A < 0 || e.A >= len(d.rooms) || e.B < 0 || e.B >= len(d.rooms) {
		panic(fmt.Sprintf("dungeon: edge %d-%d references unknown room (have %d)", e.A, e.B, len(d.rooms)))
	}
	return d.rooms[e.A], d.rooms[e.B]
}

// Clone returns a deep copy of the dungeon.
func (d *Dungeon) Clone() *Dungeon {
	return &Dungeon{
		grid:      d.grid.clone(),
		rooms:     d.Rooms(),
		corridors: d.Corridors(),
		carved:    d.carved,
		seed:      d.seed,
	}
}

// ErrInvalidLayout is returned by Restore when the supplied data cannot form
// a dungeon.
var ErrInvalidLayout = errors.New("invalid dungeon layout")

// Restore rebuilds a finished dungeon from its serialized parts. cells are in
// x-major order (index x*depth + z).
//
// Postcondition: Returns a Dungeon equal to the one serialized, or an error
// wrapping ErrInvalidLayout.
func Restore(width, depth int, seed int64, rooms []Room, corridors []Edge, cells []Cell) (*Dungeon, error) {
	if width < MinDimension || depth < MinDimension || width%2 == 0 || depth%2 == 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be odd and >= %d", ErrInvalidLayout, width, depth, MinDimension)
	}
	if len(cells) != width*depth {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidLayout, len(cells), width*depth)
	}
	g := &grid{width: width, depth: depth, cells: make([]Cell, len(cells))}
	copy(g.cells, cells)

	for i, r := range rooms {
		if r.Width <= 0 || r.Depth <= 0 {
			return nil, fmt.Errorf("%w: room %d has size %dx%d", ErrInvalidLayout, i, r.Width, r.Depth)
		}
		if r.StartX < 0 || r.StartZ < 0 || r.EndX() > width || r.EndZ() > depth {
			return nil, fmt.Errorf("%w: room %d (%s) outside grid", ErrInvalidLayout, i, r)
		}
	}
	for _, e := range corridors {
		if e.A < 0 || e.A >= len(rooms) || e.B < 0 || e.B >= len(rooms) || e.A == e.B {
			return nil, fmt.Errorf("%w: corridor %s references unknown room", ErrInvalidLayout, e)
		}
	}

	d := &Dungeon{
		grid:      g,
		rooms:     make([]Room, len(rooms)),
		corridors: make([]Edge, len(corridors)),
		carved:    true,
		seed:      seed,
	}
	copy(d.rooms, rooms)
	copy(d.corridors, corridors)
	return d, nil
}

// Cells returns a copy of every cell in x-major order (index x*Depth() + z).
func (d *Dungeon) Cells() []Cell {
	out := make([]Cell, len(d.grid.cells))
	copy(out, d.grid.cells)
	return out
}

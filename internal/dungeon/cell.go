// Package dungeon implements the dungeon generation pipeline: a fixed-size
// grid of typed cells, rejection-sampled room placement, an all-pairs
// connectivity graph, Kruskal's minimum spanning tree and Manhattan-path
// corridor carving.
package dungeon

// CellKind is the type of a single grid cell.
type CellKind int

// Cell kinds. The zero value is KindWall.
const (
	KindWall CellKind = iota
	KindRoom
	KindCorridor
	KindDoor
)

// String returns the lower-case name of the kind.
func (k CellKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindRoom:
		return "room"
	case KindCorridor:
		return "corridor"
	case KindDoor:
		return "door"
	default:
		return "unknown"
	}
}

// ParseCellKind is the inverse of CellKind.String.
//
// Postcondition: Returns (kind, true) for a known name, or (KindWall, false).
func ParseCellKind(s string) (CellKind, bool) {
	switch s {
	case "wall":
		return KindWall, true
	case "room":
		return KindRoom, true
	case "corridor":
		return KindCorridor, true
	case "door":
		return KindDoor, true
	}
	return KindWall, false
}

// Cell is one square of the dungeon grid.
type Cell struct {
	Kind    CellKind
	Visible bool
}

// Passable reports whether a walker may stand on the cell.
func (c Cell) Passable() bool {
	return c.Kind == KindRoom || c.Kind == KindCorridor || c.Kind == KindDoor
}

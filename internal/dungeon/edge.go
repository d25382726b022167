package dungeon

import (
	"fmt"
	"math"
)

// Edge is a weighted, undirected connection candidate between two rooms,
// referenced by their indices in Dungeon.Rooms.
type Edge struct {
	A        int
	B        int
	Distance float64
}

// NewEdge connects rooms[a] and rooms[b], weighting the edge by the
// Euclidean distance between their centres.
//
// Precondition: a and b are valid indices into rooms.
func NewEdge(rooms []Room, a, b int) Edge {
	ra, rb := rooms[a], rooms[b]
	dx := float64(ra.CenterX() - rb.CenterX())
	dz := float64(ra.CenterZ() - rb.CenterZ())
	return Edge{A: a, B: b, Distance: math.Hypot(dx, dz)}
}

// key returns the unordered pair identifying the edge.
func (e Edge) key() edgeKey {
	if e.A > e.B {
		return edgeKey{lo: e.B, hi: e.A}
	}
	return edgeKey{lo: e.A, hi: e.B}
}

// String returns a debug representation of the edge.
func (e Edge) String() string {
	return fmt.Sprintf("%d-%d distance: %.3f", e.A, e.B, e.Distance)
}

type edgeKey struct {
	lo, hi int
}

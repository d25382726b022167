package dungeon

import "fmt"

// grid is a width × depth array of cells stored in x-major order.
//
// Invariant: len(cells) == width*depth; dimensions never change.
type grid struct {
	width int
	depth int
	cells []Cell
}

func newGrid(width, depth int) *grid {
	return &grid{
		width: width,
		depth: depth,
		cells: make([]Cell, width*depth),
	}
}

func (g *grid) inBounds(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.depth
}

func (g *grid) index(x, z int) int {
	if !g.inBounds(x, z) {
		panic(fmt.Sprintf("dungeon: cell (%d, %d) outside %dx%d grid", x, z, g.width, g.depth))
	}
	return x*g.depth + z
}

func (g *grid) at(x, z int) Cell {
	return g.cells[g.index(x, z)]
}

func (g *grid) set(x, z int, kind CellKind, visible bool) {
	i := g.index(x, z)
	g.cells[i] = Cell{Kind: kind, Visible: visible}
}

func (g *grid) clone() *grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &grid{width: g.width, depth: g.depth, cells: cells}
}

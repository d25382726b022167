package dungeon

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/dungeongen/internal/rng"
)

// SelectCorridors returns the MST edges followed by every other edge of all
// that wins an independent Bernoulli trial with probability extraChance.
// Trials run in the order of all; none are drawn when extraChance <= 0.
//
// Postcondition: result[:len(mst)] equals mst; no edge appears twice.
func SelectCorridors(mst, all []Edge, extraChance float64, src rng.Source) []Edge {
	selected := make([]Edge, 0, len(mst))
	seen := mapset.New[edgeKey]()
	for _, e := range mst {
		if seen.Has(e.key()) {
			continue
		}
		seen.Put(e.key())
		selected = append(selected, e)
	}
	if extraChance <= 0 {
		return selected
	}
	for _, e := range all {
		if seen.Has(e.key()) {
			continue
		}
		if src.Float64() < extraChance {
			seen.Put(e.key())
			selected = append(selected, e)
		}
	}
	return selected
}

// CarveCorridors selects the corridor set, records it on d and carves every
// corridor into the grid.
//
// Precondition: corridors have not been carved on d yet. Panics otherwise.
// Postcondition: d.Corridors() is a superset of mst; every cell on a corridor
// path that was a wall is now a visible corridor.
func CarveCorridors(d *Dungeon, mst, all []Edge, extraChance float64, src rng.Source) []Edge {
	if d.carved {
		panic("dungeon: corridors already carved")
	}
	corridors := SelectCorridors(mst, all, extraChance, src)
	for _, e := range corridors {
		CarveEdge(d, e)
	}
	d.corridors = corridors
	d.carved = true
	return d.Corridors()
}

// CarveEdge carves the L-shaped path between the centres of the edge's
// rooms. On a dungeon at least as wide as it is deep the path runs along Z
// first, then X; otherwise X first. Only wall cells change, so carving an
// edge twice leaves the grid as carving it once.
func CarveEdge(d *Dungeon, e Edge) {
	a, b := d.endpoints(e)
	ax, az := a.Center()
	bx, bz := b.Center()
	if d.Width() >= d.Depth() {
		x, z := ax, az
		z = d.walkZ(x, z, bz)
		d.walkX(x, z, bx)
	} else {
		x, z := ax, az
		x = d.walkX(x, z, bx)
		d.walkZ(x, z, bz)
	}
}

// walkX carves from (x, z) toward column target, excluding the target cell,
// and returns the final x.
func (d *Dungeon) walkX(x, z, target int) int {
	for x != target {
		d.carveCorridorCell(x, z)
		x += sign(target - x)
	}
	return x
}

// walkZ carves from (x, z) toward row target, excluding the target cell,
// and returns the final z.
func (d *Dungeon) walkZ(x, z, target int) int {
	for z != target {
		d.carveCorridorCell(x, z)
		z += sign(target - z)
	}
	return z
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

package dungeon

import (
	"cmp"
	"slices"
)

// BuildConnectivityGraph returns one edge per unordered pair of rooms,
// sorted ascending by distance. Ties keep generation order (i, then j > i).
//
// Postcondition: len(result) == n*(n-1)/2 for n rooms. d is not modified.
func BuildConnectivityGraph(d *Dungeon) []Edge {
	return buildEdges(d.rooms)
}

func buildEdges(rooms []Room) []Edge {
	n := len(rooms)
	edges := make([]Edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, NewEdge(rooms, i, j))
		}
	}
	slices.SortStableFunc(edges, func(a, b Edge) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return edges
}

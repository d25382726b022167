package dungeon

import "fmt"

// ComputeMST runs Kruskal's algorithm over edges, which must already be
// sorted ascending by distance (BuildConnectivityGraph output).
//
// Precondition: every edge references an index in [0, len(rooms)). Panics otherwise.
// Postcondition: Returns at most len(rooms)-1 edges, in acceptance order,
// forming a forest; exactly len(rooms)-1 when edges connect every room.
func ComputeMST(edges []Edge, rooms []Room) []Edge {
	n := len(rooms)
	if n == 0 {
		return []Edge{}
	}
	uf := newUnionFind(n)
	mst := make([]Edge, 0, n-1)
	for _, e := range edges {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			panic(fmt.Sprintf("dungeon: edge %d-%d references unknown room (have %d)", e.A, e.B, n))
		}
		if uf.union(e.A, e.B) {
			mst = append(mst, e)
		}
	}
	return mst
}

// TotalDistance sums the distance of every edge.
func TotalDistance(edges []Edge) float64 {
	total := 0.0
	for _, e := range edges {
		total += e.Distance
	}
	return total
}

// assign.go -- component E: fill the g-table from the peel order
//
// Ported from NetBSD's assign_nodes(): walk the peel order forward (i.e.
// from the last-peeled edge to the first), and for each edge assign its
// one still-unvisited vertex so that the three vertices' g-values sum
// (mod data_entries) to the edge's data index.
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package nbcdb

// assignTable fills gTable (len == entries, zero-initialized) so that for
// every edge e, (gTable[e.left]+gTable[e.middle]+gTable[e.right]) %
// g.dataEntries == e.idx.
func assignTable(g *hypergraph, gTable []uint32) {
	visited := newBitVector(g.entries)
	de := uint64(g.dataEntries)

	for _, oi := range g.outputOrder {
		e := g.edges[oi]

		switch {
		case !visited.IsSet(e.left):
			gTable[e.left] = uint32((2*de + uint64(e.idx) - uint64(gTable[e.middle]) - uint64(gTable[e.right])) % de)
		case !visited.IsSet(e.middle):
			gTable[e.middle] = uint32((2*de + uint64(e.idx) - uint64(gTable[e.left]) - uint64(gTable[e.right])) % de)
		default:
			gTable[e.right] = uint32((2*de + uint64(e.idx) - uint64(gTable[e.left]) - uint64(gTable[e.middle])) % de)
		}

		visited.Set(e.left)
		visited.Set(e.middle)
		visited.Set(e.right)
	}
}

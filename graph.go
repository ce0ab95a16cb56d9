// graph.go -- component D: build the 3-uniform hypergraph for one seed
// and peel it.
//
// This is a direct Go port of the peeling algorithm in NetBSD's cdbw.c,
// which in turn implements the cache-oblivious peeling method of
// Belazzougui, Boldi, Ottaviano, Venturini & Vigna. The XOR-accumulator
// trick (a vertex's sole incident edge and its two other endpoints can be
// read back out of XOR-folded state once its degree drops to 1) is kept
// verbatim; only the surrounding scaffolding (structs-of-slices instead of
// calloc'd arrays, no raw pointers) is idiomatic Go.
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package nbcdb

// edge is one hyperedge: the data index it represents, plus its three
// distinct vertices in [0, entries).
type edge struct {
	idx                 uint32
	left, middle, right uint32
}

// oedge is the XOR-accumulated state kept per vertex: how many incident
// edges remain, and (meaningful only when degree == 1) the sole edge's
// index and its other two endpoints.
type oedge struct {
	degree uint32
	verts  [2]uint32
	edgeID uint32
}

// hypergraph is the scratch state for one peel attempt at a fixed seed.
// It is built fresh by the Driver for every retry and discarded whether
// the attempt succeeds or fails.
type hypergraph struct {
	entries     uint32
	dataEntries uint32
	seed        uint32

	edges  []edge
	oedges []oedge

	outputOrder []uint32
	outputIndex uint32
}

// newHypergraph allocates (but does not populate) scratch for 'keys' keys
// over an index space of 'entries' vertices.
func newHypergraph(keys, entries, dataEntries, seed uint32) *hypergraph {
	return &hypergraph{
		entries:     entries,
		dataEntries: dataEntries,
		seed:        seed,
		edges:       make([]edge, keys),
		oedges:      make([]oedge, entries),
		outputOrder: make([]uint32, keys),
	}
}

// addEdge registers hyperedge e at vertex v0 with its other two endpoints
// v1, v2 -- XOR-folding them into v0's (verts, edge) accumulator in
// sorted order and bumping v0's degree.
func addEdge(o []oedge, e, v0, v1, v2 uint32) {
	if v1 < v2 {
		o[v0].verts[0] ^= v1
		o[v0].verts[1] ^= v2
	} else {
		o[v0].verts[0] ^= v2
		o[v0].verts[1] ^= v1
	}
	o[v0].degree++
	o[v0].edgeID ^= e
}

// removeEdge is addEdge's inverse: un-fold e out of v0's accumulator.
func removeEdge(o []oedge, e, v0, v1, v2 uint32) {
	if v1 < v2 {
		o[v0].verts[0] ^= v1
		o[v0].verts[1] ^= v2
	} else {
		o[v0].verts[0] ^= v2
		o[v0].verts[1] ^= v1
	}
	o[v0].degree--
	o[v0].edgeID ^= e
}

// removeVertex peels v0 if its degree has dropped to exactly 1: it
// recovers v0's sole incident edge and the edge's other two endpoints
// straight out of the XOR accumulator, removes the edge from those two
// partners in turn (which may expose them for peeling too), and records
// the edge in the peel order.
func (g *hypergraph) removeVertex(v0 uint32) {
	o := g.oedges
	if o[v0].degree != 1 {
		return
	}

	e := o[v0].edgeID
	v1 := o[v0].verts[0]
	v2 := o[v0].verts[1]
	o[v0].degree = 0

	removeEdge(o, e, v1, v0, v2)
	removeEdge(o, e, v2, v0, v1)

	g.outputIndex--
	g.outputOrder[g.outputIndex] = e
}

// buildAndPeel populates the hypergraph from ks's resident keys under
// g.seed and attempts to peel it completely. It returns false the moment
// two of a key's three vertices collide (the attempt must be retried with
// a fresh seed) or if a non-empty core survives peeling.
func (g *hypergraph) buildAndPeel(ks *keyStore) bool {
	var i uint32
	var collided bool

	ks.eachUntil(func(rk *residentKey) bool {
		h0, h1, h2 := VectorHash(rk.bytes, g.seed)
		l := h0 % g.entries
		m := h1 % g.entries
		r := h2 % g.entries

		if l == m || l == r || m == r {
			collided = true
			return false
		}

		g.edges[i] = edge{idx: rk.idx, left: l, middle: m, right: r}
		addEdge(g.oedges, i, r, l, m)
		addEdge(g.oedges, i, m, l, r)
		addEdge(g.oedges, i, l, m, r)
		i++
		return true
	})

	if collided {
		return false
	}

	keys := uint32(len(g.edges))
	g.outputIndex = keys

	for v := uint32(0); v < g.entries; v++ {
		g.removeVertex(v)
	}

	for i := keys; i > 0 && i > g.outputIndex; {
		i--
		e := g.edges[g.outputOrder[i]]
		g.removeVertex(e.left)
		g.removeVertex(e.middle)
		g.removeVertex(e.right)
	}

	return g.outputIndex == 0
}

package halfedge

type vertPair struct {
	u, v int
}

func (p vertPair) undirected() vertPair {
	if p.u > p.v {
		return vertPair{u: p.v, v: p.u}
	}
	return p
}

// FromPolygons builds a mesh from an index soup: an ordered sequence of
// polygons, each an ordered sequence of vertex indices wound
// counter-clockwise. Twins are paired by matching directed vertex pairs and
// any half-edge whose reverse pair is absent gets a boundary twin.
//
// It fails with ErrNonManifoldEdge if more than two half-edges share an
// undirected endpoint pair, with ErrInconsistentOrientation if a directed
// pair appears twice, and with ErrNonManifoldVertex if a vertex carries more
// than one boundary fan. Errors are deterministic: the first offender in
// polygon order is reported.
func FromPolygons(polygons [][]int) (*Mesh, error) {
	m := &Mesh{}

	maxV := -1
	for pi, poly := range polygons {
		if len(poly) < 3 {
			return nil, &ErrInvalidPolygon{Polygon: pi}
		}
		seen := make(map[int]struct{}, len(poly))
		for _, v := range poly {
			if v < 0 {
				return nil, &ErrIndexOutOfRange{Kind: "vertex", ID: v}
			}
			if _, dup := seen[v]; dup {
				return nil, &ErrInvalidPolygon{Polygon: pi}
			}
			seen[v] = struct{}{}
			if v > maxV {
				maxV = v
			}
		}
	}
	for i := 0; i <= maxV; i++ {
		m.newVertex()
	}

	// Tally undirected pairs first so a triple-shared edge reports as
	// non-manifold rather than as an orientation clash.
	und := make(map[vertPair]int)
	for _, poly := range polygons {
		for i, u := range poly {
			v := poly[(i+1)%len(poly)]
			und[vertPair{u: u, v: v}.undirected()]++
		}
	}
	for _, poly := range polygons {
		for i, u := range poly {
			v := poly[(i+1)%len(poly)]
			if und[vertPair{u: u, v: v}.undirected()] > 2 {
				p := vertPair{u: u, v: v}.undirected()
				return nil, &ErrNonManifoldEdge{V0: p.u, V1: p.v}
			}
		}
	}

	dir := make(map[vertPair]int, len(und)*2)
	for _, poly := range polygons {
		k := len(poly)
		f := m.newFace()
		first := len(m.halfs)
		for i, u := range poly {
			v := poly[(i+1)%k]
			key := vertPair{u: u, v: v}
			if _, dup := dir[key]; dup {
				return nil, &ErrInconsistentOrientation{V0: u, V1: v}
			}
			h := m.newHalfEdge()
			dir[key] = h
			m.halfs[h].origin = u
			m.halfs[h].face = f
			m.verts[u].out++
			if m.verts[u].he == Invalid {
				m.verts[u].he = h
			}
		}
		m.faces[f].he = first
		for i := 0; i < k; i++ {
			m.halfs[first+i].next = first + (i+1)%k
		}
	}

	// Pair twins in half-edge ID order so edge IDs come out deterministic.
	for h := range m.halfs {
		if m.halfs[h].twin != Invalid {
			continue
		}
		u := m.halfs[h].origin
		v := m.halfs[m.halfs[h].next].origin
		if t, ok := dir[vertPair{u: v, v: u}]; ok {
			e := m.newEdge()
			m.edges[e].he = h
			m.halfs[h].twin = t
			m.halfs[h].edge = e
			m.halfs[t].twin = h
			m.halfs[t].edge = e
		}
	}

	// Unpaired half-edges get boundary twins.
	interiorEnd := len(m.halfs)
	boundaryOut := make(map[int]int) // origin vertex -> boundary half-edge
	for h := 0; h < interiorEnd; h++ {
		if m.halfs[h].twin != Invalid {
			continue
		}
		v := m.halfs[m.halfs[h].next].origin
		e := m.newEdge()
		b := m.newHalfEdge()
		m.edges[e].he = h
		m.halfs[h].twin = b
		m.halfs[h].edge = e
		m.halfs[b] = halfEdgeRec{origin: v, twin: h, next: Invalid, face: BoundaryFace, edge: e, alive: true}
		m.verts[v].out++
		if _, dup := boundaryOut[v]; dup {
			// Two boundary fans meet at this vertex.
			return nil, &ErrNonManifoldVertex{Vertex: v}
		}
		boundaryOut[v] = b
	}

	// Chain boundary half-edges into loops: the next of a boundary half-edge
	// is the boundary half-edge leaving its head.
	for b := interiorEnd; b < len(m.halfs); b++ {
		head := m.halfs[m.halfs[b].twin].origin
		m.halfs[b].next = boundaryOut[head]
	}

	return m, nil
}

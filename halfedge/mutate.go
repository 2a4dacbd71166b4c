package halfedge

// Mutation primitives (Euler operators). Each operator validates all of its
// preconditions before touching any record, so a failed call leaves the mesh
// exactly as it was.

// FlipEdge replaces an interior edge shared by two triangles with the
// opposite diagonal of the quadrilateral they form.
//
// It fails with ErrBoundaryEdgeFlip for boundary edges, ErrNonTriangularFace
// if either incident face is not a triangle, and ErrEdgeExists if the
// opposite diagonal is already an edge of the mesh.
func (m *Mesh) FlipEdge(e int) error {
	if !m.edgeAlive(e) {
		return &ErrIndexOutOfRange{Kind: "edge", ID: e}
	}
	h0 := m.edges[e].he
	h1 := m.halfs[h0].twin
	f0 := m.halfs[h0].face
	f1 := m.halfs[h1].face
	if f0 == BoundaryFace || f1 == BoundaryFace {
		return &ErrBoundaryEdgeFlip{Edge: e}
	}
	for _, f := range [2]int{f0, f1} {
		if d, _ := m.FaceDegree(f); d != 3 {
			return &ErrNonTriangularFace{Face: f, Degree: d}
		}
	}

	h2 := m.halfs[h0].next // b -> c
	h3 := m.halfs[h2].next // c -> a
	h4 := m.halfs[h1].next // a -> d
	h5 := m.halfs[h4].next // d -> b

	a := m.halfs[h0].origin
	b := m.halfs[h1].origin
	c := m.halfs[h3].origin
	d := m.halfs[h5].origin

	// The new diagonal must not duplicate an existing edge.
	nb, err := m.VertexNeighbors(c)
	if err != nil {
		return err
	}
	for _, w := range nb {
		if w == d {
			return &ErrEdgeExists{V0: c, V1: d}
		}
	}

	// Relink: f0 becomes (c, d, b), f1 becomes (d, c, a).
	m.halfs[h0].origin = c
	m.halfs[h1].origin = d

	m.halfs[h0].next = h5
	m.halfs[h5].next = h2
	m.halfs[h2].next = h0
	m.halfs[h5].face = f0

	m.halfs[h1].next = h3
	m.halfs[h3].next = h4
	m.halfs[h4].next = h1
	m.halfs[h3].face = f1

	m.faces[f0].he = h0
	m.faces[f1].he = h1

	// The old endpoints may have used h0/h1 as their seed.
	m.verts[a].he = h4
	m.verts[b].he = h2
	m.verts[c].he = h0
	m.verts[d].he = h1

	m.verts[a].out--
	m.verts[b].out--
	m.verts[c].out++
	m.verts[d].out++

	return nil
}

// SplitEdge inserts a new vertex on the edge, subdividing each incident
// triangle into two. Boundary edges are supported and produce one new
// triangle instead of two. The new vertex ID is returned; callers that track
// positions place it (typically at the edge midpoint) themselves.
func (m *Mesh) SplitEdge(e int) (int, error) {
	if !m.edgeAlive(e) {
		return Invalid, &ErrIndexOutOfRange{Kind: "edge", ID: e}
	}
	h0 := m.edges[e].he
	h1 := m.halfs[h0].twin
	if m.halfs[h0].face == BoundaryFace {
		h0, h1 = h1, h0
	}
	f0 := m.halfs[h0].face
	f1 := m.halfs[h1].face
	if d, _ := m.FaceDegree(f0); d != 3 {
		return Invalid, &ErrNonTriangularFace{Face: f0, Degree: d}
	}
	interior := f1 != BoundaryFace
	if interior {
		if d, _ := m.FaceDegree(f1); d != 3 {
			return Invalid, &ErrNonTriangularFace{Face: f1, Degree: d}
		}
	}

	h2 := m.halfs[h0].next // b -> c
	h3 := m.halfs[h2].next // c -> a
	b := m.halfs[h1].origin
	c := m.halfs[h3].origin

	var prevB int
	if !interior {
		prevB = m.prev(h1) // boundary half-edge ending at b
	}

	mid := m.newVertex()

	// Shared surgery: h0 becomes a->mid on the original edge; a new edge
	// mid->b and a new face (mid, b, c) take over the far half.
	emb := m.newEdge()
	hmb := m.newHalfEdge()
	hbm := m.newHalfEdge()
	emc := m.newEdge()
	hmc := m.newHalfEdge()
	hcm := m.newHalfEdge()
	g0 := m.newFace()

	m.halfs[hmb].origin = mid
	m.halfs[hmb].twin = hbm
	m.halfs[hmb].edge = emb
	m.halfs[hbm].origin = b
	m.halfs[hbm].twin = hmb
	m.halfs[hbm].edge = emb
	m.edges[emb].he = hmb

	m.halfs[hmc].origin = mid
	m.halfs[hmc].twin = hcm
	m.halfs[hmc].edge = emc
	m.halfs[hcm].origin = c
	m.halfs[hcm].twin = hmc
	m.halfs[hcm].edge = emc
	m.edges[emc].he = hmc

	// f0 becomes (a, mid, c).
	m.halfs[h0].next = hmc
	m.halfs[hmc].next = h3
	m.halfs[hmc].face = f0
	m.faces[f0].he = h0

	// g0 is (mid, b, c).
	m.halfs[hmb].next = h2
	m.halfs[h2].next = hcm
	m.halfs[hcm].next = hmb
	m.halfs[hmb].face = g0
	m.halfs[h2].face = g0
	m.halfs[hcm].face = g0
	m.faces[g0].he = hmb

	// h1 now runs mid->a on the original edge.
	m.halfs[h1].origin = mid
	m.edges[e].he = h0
	if m.verts[b].he == h1 {
		m.verts[b].he = hbm
	}

	m.verts[c].out++
	m.verts[mid].he = hmb

	if !interior {
		// hbm joins the boundary loop in place of h1.
		m.halfs[hbm].face = BoundaryFace
		m.halfs[hbm].next = h1
		m.halfs[prevB].next = hbm
		m.verts[mid].out = 3
		return mid, nil
	}

	h4 := m.halfs[h1].next // a -> d
	h5 := m.halfs[h4].next // d -> b
	d := m.halfs[h5].origin

	emd := m.newEdge()
	hmd := m.newHalfEdge()
	hdm := m.newHalfEdge()
	g1 := m.newFace()

	m.halfs[hmd].origin = mid
	m.halfs[hmd].twin = hdm
	m.halfs[hmd].edge = emd
	m.halfs[hdm].origin = d
	m.halfs[hdm].twin = hmd
	m.halfs[hdm].edge = emd
	m.edges[emd].he = hmd

	// f1 becomes (mid, a, d).
	m.halfs[h4].next = hdm
	m.halfs[hdm].next = h1
	m.halfs[hdm].face = f1
	m.faces[f1].he = h1

	// g1 is (b, mid, d).
	m.halfs[hbm].next = hmd
	m.halfs[hmd].next = h5
	m.halfs[h5].next = hbm
	m.halfs[hbm].face = g1
	m.halfs[hmd].face = g1
	m.halfs[h5].face = g1
	m.faces[g1].he = hbm

	m.verts[d].out++
	m.verts[mid].out = 4

	return mid, nil
}

// CollapseEdge merges the edge's two endpoints into one, removing the edge
// and its incident faces. The surviving vertex ID is returned.
//
// The link condition is checked first: the intersection of the endpoint
// one-rings must equal exactly the edge's opposite vertices. On violation
// the mesh is left unchanged and ErrLinkConditionViolated is returned.
func (m *Mesh) CollapseEdge(e int) (int, error) {
	if !m.edgeAlive(e) {
		return Invalid, &ErrIndexOutOfRange{Kind: "edge", ID: e}
	}
	h0 := m.edges[e].he
	h1 := m.halfs[h0].twin
	if m.halfs[h0].face == BoundaryFace {
		h0, h1 = h1, h0
	}
	a := m.halfs[h0].origin
	b := m.halfs[h1].origin
	f0 := m.halfs[h0].face
	f1 := m.halfs[h1].face

	dying := map[int]struct{}{h0: {}, h1: {}}
	expected := make(map[int]struct{}, 2)
	if f0 != BoundaryFace {
		if d, _ := m.FaceDegree(f0); d != 3 {
			return Invalid, &ErrNonTriangularFace{Face: f0, Degree: d}
		}
		hn := m.halfs[h0].next
		hp := m.halfs[hn].next
		expected[m.halfs[hp].origin] = struct{}{}
		dying[hn] = struct{}{}
		dying[hp] = struct{}{}
	}
	if f1 != BoundaryFace {
		if d, _ := m.FaceDegree(f1); d != 3 {
			return Invalid, &ErrNonTriangularFace{Face: f1, Degree: d}
		}
		hn := m.halfs[h1].next
		hp := m.halfs[hn].next
		expected[m.halfs[hp].origin] = struct{}{}
		dying[hn] = struct{}{}
		dying[hp] = struct{}{}
	}

	ringA, err := m.VertexNeighbors(a)
	if err != nil {
		return Invalid, err
	}
	ringB, err := m.VertexNeighbors(b)
	if err != nil {
		return Invalid, err
	}
	setA := make(map[int]struct{}, len(ringA))
	for _, w := range ringA {
		setA[w] = struct{}{}
	}
	shared := 0
	for _, w := range ringB {
		if _, ok := setA[w]; !ok {
			continue
		}
		if _, ok := expected[w]; !ok {
			return Invalid, &ErrLinkConditionViolated{Edge: e}
		}
		shared++
	}
	if shared != len(expected) {
		return Invalid, &ErrLinkConditionViolated{Edge: e}
	}
	// Guard against degenerate pillow configurations where the surviving
	// twins of one side die on the other.
	if f0 != BoundaryFace {
		hn := m.halfs[h0].next
		hp := m.halfs[hn].next
		if _, ok := dying[m.halfs[hn].twin]; ok {
			return Invalid, &ErrLinkConditionViolated{Edge: e}
		}
		if _, ok := dying[m.halfs[hp].twin]; ok {
			return Invalid, &ErrLinkConditionViolated{Edge: e}
		}
	}
	if f1 != BoundaryFace {
		hn := m.halfs[h1].next
		hp := m.halfs[hn].next
		if _, ok := dying[m.halfs[hn].twin]; ok {
			return Invalid, &ErrLinkConditionViolated{Edge: e}
		}
		if _, ok := dying[m.halfs[hp].twin]; ok {
			return Invalid, &ErrLinkConditionViolated{Edge: e}
		}
	}

	// All checks passed; from here on the operation cannot fail.
	outA, _ := m.VertexHalfEdges(a)
	outB, _ := m.VertexHalfEdges(b)

	collapseSide := func(hx int) {
		if m.halfs[hx].face == BoundaryFace {
			// Unhook hx from its boundary loop.
			m.halfs[m.prev(hx)].next = m.halfs[hx].next
			return
		}
		f := m.halfs[hx].face
		hn := m.halfs[hx].next
		hp := m.halfs[hn].next
		tn := m.halfs[hn].twin
		tp := m.halfs[hp].twin
		es := m.halfs[hp].edge
		ed := m.halfs[hn].edge

		// The two remaining sides of the dead triangle merge into one edge.
		m.halfs[tn].twin = tp
		m.halfs[tp].twin = tn
		m.halfs[tn].edge = es
		m.edges[es].he = tp

		opp := m.halfs[hp].origin
		if m.verts[opp].he == hp {
			m.verts[opp].he = tn
		}
		m.verts[m.halfs[hn].origin].out--
		m.verts[opp].out--

		m.killHalfEdge(hn)
		m.killHalfEdge(hp)
		m.killEdge(ed)
		m.killFace(f)
	}

	collapseSide(h0)
	collapseSide(h1)

	m.verts[a].out--
	m.verts[b].out--

	m.killHalfEdge(h0)
	m.killHalfEdge(h1)
	m.killEdge(e)

	// Reroute everything that left b so it leaves a instead.
	for _, h := range outB {
		if m.halfs[h].alive {
			m.halfs[h].origin = a
		}
	}
	m.verts[a].out += m.verts[b].out
	m.verts[b].out = 0
	m.killVertex(b)

	// Reseed a from the surviving fan.
	m.verts[a].he = Invalid
	for _, h := range append(outA, outB...) {
		if m.halfs[h].alive {
			m.verts[a].he = h
			break
		}
	}

	return a, nil
}

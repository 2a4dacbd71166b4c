package halfedge

import "github.com/bits-and-blooms/bitset"

// ForEachVertexHalfEdge visits the outgoing half-edges of v in cyclic
// adjacency order, rotating via twin.next. Boundary half-edges are included.
// The walk stops early if fn returns false.
//
// It fails with ErrNonManifoldVertex if the rotation does not close after
// traversing every incident half-edge exactly once.
func (m *Mesh) ForEachVertexHalfEdge(v int, fn func(h int) bool) error {
	if !m.vertexAlive(v) {
		return &ErrIndexOutOfRange{Kind: "vertex", ID: v}
	}
	seed := m.verts[v].he
	if seed == Invalid {
		return nil // isolated vertex
	}
	h := seed
	for steps := 0; ; steps++ {
		if steps == m.verts[v].out {
			// Rotation did not return to the seed within the fan size.
			return &ErrNonManifoldVertex{Vertex: v}
		}
		if !fn(h) {
			return nil
		}
		h = m.halfs[m.halfs[h].twin].next
		if h == seed {
			if steps+1 != m.verts[v].out {
				// Closed early: a second fan exists somewhere.
				return &ErrNonManifoldVertex{Vertex: v}
			}
			return nil
		}
	}
}

// VertexHalfEdges returns the outgoing half-edges of v in cyclic adjacency
// order. The slice length equals the vertex degree.
func (m *Mesh) VertexHalfEdges(v int) ([]int, error) {
	if !m.vertexAlive(v) {
		return nil, &ErrIndexOutOfRange{Kind: "vertex", ID: v}
	}
	out := make([]int, 0, m.verts[v].out)
	err := m.ForEachVertexHalfEdge(v, func(h int) bool {
		out = append(out, h)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VertexNeighbors returns the one-ring vertices of v in cyclic order.
func (m *Mesh) VertexNeighbors(v int) ([]int, error) {
	hs, err := m.VertexHalfEdges(v)
	if err != nil {
		return nil, err
	}
	nb := make([]int, len(hs))
	for i, h := range hs {
		nb[i] = m.halfs[m.halfs[h].twin].origin
	}
	return nb, nil
}

// ForEachFaceHalfEdge visits the half-edges bounding f via repeated next.
// The walk stops early if fn returns false.
func (m *Mesh) ForEachFaceHalfEdge(f int, fn func(h int) bool) error {
	if !m.faceAlive(f) {
		return &ErrIndexOutOfRange{Kind: "face", ID: f}
	}
	seed := m.faces[f].he
	h := seed
	for {
		if !fn(h) {
			return nil
		}
		h = m.halfs[h].next
		if h == seed {
			return nil
		}
	}
}

// FaceHalfEdges returns the half-edges bounding f in counter-clockwise
// order. The slice length equals the face degree.
func (m *Mesh) FaceHalfEdges(f int) ([]int, error) {
	if !m.faceAlive(f) {
		return nil, &ErrIndexOutOfRange{Kind: "face", ID: f}
	}
	var out []int
	_ = m.ForEachFaceHalfEdge(f, func(h int) bool {
		out = append(out, h)
		return true
	})
	return out, nil
}

// FaceVertices returns the vertices of f in counter-clockwise order.
func (m *Mesh) FaceVertices(f int) ([]int, error) {
	hs, err := m.FaceHalfEdges(f)
	if err != nil {
		return nil, err
	}
	vs := make([]int, len(hs))
	for i, h := range hs {
		vs[i] = m.halfs[h].origin
	}
	return vs, nil
}

// BoundaryLoops returns the half-edges whose face is the boundary sentinel,
// grouped into closed loops. Loops and their members come out in ascending
// seed order, so the result is deterministic.
func (m *Mesh) BoundaryLoops() [][]int {
	visited := bitset.New(uint(len(m.halfs)))
	var loops [][]int
	for h := range m.halfs {
		if !m.halfs[h].alive || m.halfs[h].face != BoundaryFace || visited.Test(uint(h)) {
			continue
		}
		var loop []int
		for c := h; !visited.Test(uint(c)); c = m.halfs[c].next {
			visited.Set(uint(c))
			loop = append(loop, c)
		}
		loops = append(loops, loop)
	}
	return loops
}

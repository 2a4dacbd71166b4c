package halfedge

const (
	// Invalid marks an unset element reference.
	Invalid = -1

	// BoundaryFace is the sentinel face borne by half-edges that lie on an
	// open boundary.
	BoundaryFace = -1
)

type vertexRec struct {
	he    int // any outgoing half-edge, Invalid for isolated vertices
	out   int // number of live outgoing half-edges
	alive bool
}

type halfEdgeRec struct {
	origin int
	twin   int
	next   int
	face   int // BoundaryFace on an open boundary
	edge   int
	alive  bool
}

type edgeRec struct {
	he    int // one of the two half-edges
	alive bool
}

type faceRec struct {
	he    int // seed for next-traversal around the face
	alive bool
}

// Mesh is the half-edge topology store. It owns all connectivity records and
// addresses them by stable integer IDs; removed IDs are recycled via free
// lists without disturbing live IDs.
//
// Mutations require exclusive access. Read-only queries are safe to run
// concurrently against a mesh that is not being mutated.
type Mesh struct {
	verts []vertexRec
	halfs []halfEdgeRec
	edges []edgeRec
	faces []faceRec

	freeVerts []int
	freeHalfs []int
	freeEdges []int
	freeFaces []int

	liveVerts int
	liveHalfs int
	liveEdges int
	liveFaces int
}

// VertexCount returns the number of live vertices.
func (m *Mesh) VertexCount() int { return m.liveVerts }

// HalfEdgeCount returns the number of live half-edges, boundary half-edges
// included.
func (m *Mesh) HalfEdgeCount() int { return m.liveHalfs }

// EdgeCount returns the number of live undirected edges.
func (m *Mesh) EdgeCount() int { return m.liveEdges }

// FaceCount returns the number of live faces. The boundary sentinel is not a
// face.
func (m *Mesh) FaceCount() int { return m.liveFaces }

func (m *Mesh) vertexAlive(v int) bool {
	return v >= 0 && v < len(m.verts) && m.verts[v].alive
}

func (m *Mesh) halfAlive(h int) bool {
	return h >= 0 && h < len(m.halfs) && m.halfs[h].alive
}

func (m *Mesh) edgeAlive(e int) bool {
	return e >= 0 && e < len(m.edges) && m.edges[e].alive
}

func (m *Mesh) faceAlive(f int) bool {
	return f >= 0 && f < len(m.faces) && m.faces[f].alive
}

// Vertices returns the live vertex IDs in ascending order.
func (m *Mesh) Vertices() []int {
	ids := make([]int, 0, m.liveVerts)
	for v := range m.verts {
		if m.verts[v].alive {
			ids = append(ids, v)
		}
	}
	return ids
}

// HalfEdges returns the live half-edge IDs in ascending order.
func (m *Mesh) HalfEdges() []int {
	ids := make([]int, 0, m.liveHalfs)
	for h := range m.halfs {
		if m.halfs[h].alive {
			ids = append(ids, h)
		}
	}
	return ids
}

// Edges returns the live edge IDs in ascending order.
func (m *Mesh) Edges() []int {
	ids := make([]int, 0, m.liveEdges)
	for e := range m.edges {
		if m.edges[e].alive {
			ids = append(ids, e)
		}
	}
	return ids
}

// Faces returns the live face IDs in ascending order.
func (m *Mesh) Faces() []int {
	ids := make([]int, 0, m.liveFaces)
	for f := range m.faces {
		if m.faces[f].alive {
			ids = append(ids, f)
		}
	}
	return ids
}

// Origin returns the vertex a half-edge starts at.
func (m *Mesh) Origin(h int) (int, error) {
	if !m.halfAlive(h) {
		return Invalid, &ErrIndexOutOfRange{Kind: "halfedge", ID: h}
	}
	return m.halfs[h].origin, nil
}

// Head returns the vertex a half-edge points to, i.e. the origin of its twin.
func (m *Mesh) Head(h int) (int, error) {
	if !m.halfAlive(h) {
		return Invalid, &ErrIndexOutOfRange{Kind: "halfedge", ID: h}
	}
	return m.halfs[m.halfs[h].twin].origin, nil
}

// Twin returns the oppositely directed half-edge on the same edge.
func (m *Mesh) Twin(h int) (int, error) {
	if !m.halfAlive(h) {
		return Invalid, &ErrIndexOutOfRange{Kind: "halfedge", ID: h}
	}
	return m.halfs[h].twin, nil
}

// Next returns the next half-edge around the face, counter-clockwise.
func (m *Mesh) Next(h int) (int, error) {
	if !m.halfAlive(h) {
		return Invalid, &ErrIndexOutOfRange{Kind: "halfedge", ID: h}
	}
	return m.halfs[h].next, nil
}

// Prev returns the half-edge whose next is h. It walks the face cycle, which
// is cheap for the small face degrees meshes are made of.
func (m *Mesh) Prev(h int) (int, error) {
	if !m.halfAlive(h) {
		return Invalid, &ErrIndexOutOfRange{Kind: "halfedge", ID: h}
	}
	return m.prev(h), nil
}

func (m *Mesh) prev(h int) int {
	p := h
	for m.halfs[p].next != h {
		p = m.halfs[p].next
	}
	return p
}

// Face returns the face a half-edge borders, or BoundaryFace if the half-edge
// lies on an open boundary.
func (m *Mesh) Face(h int) (int, error) {
	if !m.halfAlive(h) {
		return Invalid, &ErrIndexOutOfRange{Kind: "halfedge", ID: h}
	}
	return m.halfs[h].face, nil
}

// Edge returns the undirected parent edge of a half-edge.
func (m *Mesh) Edge(h int) (int, error) {
	if !m.halfAlive(h) {
		return Invalid, &ErrIndexOutOfRange{Kind: "halfedge", ID: h}
	}
	return m.halfs[h].edge, nil
}

// EdgeHalfEdge returns one of the two half-edges of an edge. If the edge is
// on the boundary, the returned half-edge is the interior one.
func (m *Mesh) EdgeHalfEdge(e int) (int, error) {
	if !m.edgeAlive(e) {
		return Invalid, &ErrIndexOutOfRange{Kind: "edge", ID: e}
	}
	h := m.edges[e].he
	if m.halfs[h].face == BoundaryFace {
		h = m.halfs[h].twin
	}
	return h, nil
}

// EdgeVertices returns the two endpoint vertices of an edge.
func (m *Mesh) EdgeVertices(e int) (int, int, error) {
	if !m.edgeAlive(e) {
		return Invalid, Invalid, &ErrIndexOutOfRange{Kind: "edge", ID: e}
	}
	h := m.edges[e].he
	return m.halfs[h].origin, m.halfs[m.halfs[h].twin].origin, nil
}

// VertexHalfEdge returns any outgoing half-edge of a vertex, or Invalid for
// an isolated vertex.
func (m *Mesh) VertexHalfEdge(v int) (int, error) {
	if !m.vertexAlive(v) {
		return Invalid, &ErrIndexOutOfRange{Kind: "vertex", ID: v}
	}
	return m.verts[v].he, nil
}

// FaceHalfEdge returns the seed half-edge of a face.
func (m *Mesh) FaceHalfEdge(f int) (int, error) {
	if !m.faceAlive(f) {
		return Invalid, &ErrIndexOutOfRange{Kind: "face", ID: f}
	}
	return m.faces[f].he, nil
}

// VertexDegree returns the number of edges incident to a vertex.
func (m *Mesh) VertexDegree(v int) (int, error) {
	if !m.vertexAlive(v) {
		return 0, &ErrIndexOutOfRange{Kind: "vertex", ID: v}
	}
	return m.verts[v].out, nil
}

// FaceDegree returns the number of half-edges bounding a face.
func (m *Mesh) FaceDegree(f int) (int, error) {
	if !m.faceAlive(f) {
		return 0, &ErrIndexOutOfRange{Kind: "face", ID: f}
	}
	n := 0
	h := m.faces[f].he
	for {
		n++
		h = m.halfs[h].next
		if h == m.faces[f].he {
			return n, nil
		}
	}
}

// IsBoundaryEdge reports whether either half-edge of the edge borders the
// boundary sentinel.
func (m *Mesh) IsBoundaryEdge(e int) (bool, error) {
	if !m.edgeAlive(e) {
		return false, &ErrIndexOutOfRange{Kind: "edge", ID: e}
	}
	h := m.edges[e].he
	return m.halfs[h].face == BoundaryFace || m.halfs[m.halfs[h].twin].face == BoundaryFace, nil
}

// IsBoundaryVertex reports whether the vertex has an incident boundary
// half-edge.
func (m *Mesh) IsBoundaryVertex(v int) (bool, error) {
	if !m.vertexAlive(v) {
		return false, &ErrIndexOutOfRange{Kind: "vertex", ID: v}
	}
	found := false
	err := m.ForEachVertexHalfEdge(v, func(h int) bool {
		if m.halfs[h].face == BoundaryFace || m.halfs[m.halfs[h].twin].face == BoundaryFace {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// EulerCharacteristic returns V - E + F.
func (m *Mesh) EulerCharacteristic() int {
	return m.liveVerts - m.liveEdges + m.liveFaces
}

// Genus returns the genus of the surface, assuming it is connected and
// orientable: g = (2 - chi - b) / 2 where b is the number of boundary loops.
// It is recomputed on demand, never maintained incrementally.
func (m *Mesh) Genus() int {
	return (2 - m.EulerCharacteristic() - len(m.BoundaryLoops())) / 2
}

// allocation helpers; recycled IDs come from the free lists

func (m *Mesh) newVertex() int {
	m.liveVerts++
	if n := len(m.freeVerts); n > 0 {
		v := m.freeVerts[n-1]
		m.freeVerts = m.freeVerts[:n-1]
		m.verts[v] = vertexRec{he: Invalid, alive: true}
		return v
	}
	m.verts = append(m.verts, vertexRec{he: Invalid, alive: true})
	return len(m.verts) - 1
}

func (m *Mesh) newHalfEdge() int {
	m.liveHalfs++
	rec := halfEdgeRec{origin: Invalid, twin: Invalid, next: Invalid, face: Invalid, edge: Invalid, alive: true}
	if n := len(m.freeHalfs); n > 0 {
		h := m.freeHalfs[n-1]
		m.freeHalfs = m.freeHalfs[:n-1]
		m.halfs[h] = rec
		return h
	}
	m.halfs = append(m.halfs, rec)
	return len(m.halfs) - 1
}

func (m *Mesh) newEdge() int {
	m.liveEdges++
	if n := len(m.freeEdges); n > 0 {
		e := m.freeEdges[n-1]
		m.freeEdges = m.freeEdges[:n-1]
		m.edges[e] = edgeRec{he: Invalid, alive: true}
		return e
	}
	m.edges = append(m.edges, edgeRec{he: Invalid, alive: true})
	return len(m.edges) - 1
}

func (m *Mesh) newFace() int {
	m.liveFaces++
	if n := len(m.freeFaces); n > 0 {
		f := m.freeFaces[n-1]
		m.freeFaces = m.freeFaces[:n-1]
		m.faces[f] = faceRec{he: Invalid, alive: true}
		return f
	}
	m.faces = append(m.faces, faceRec{he: Invalid, alive: true})
	return len(m.faces) - 1
}

func (m *Mesh) killVertex(v int) {
	m.verts[v] = vertexRec{he: Invalid}
	m.freeVerts = append(m.freeVerts, v)
	m.liveVerts--
}

func (m *Mesh) killHalfEdge(h int) {
	m.halfs[h] = halfEdgeRec{origin: Invalid, twin: Invalid, next: Invalid, face: Invalid, edge: Invalid}
	m.freeHalfs = append(m.freeHalfs, h)
	m.liveHalfs--
}

func (m *Mesh) killEdge(e int) {
	m.edges[e] = edgeRec{he: Invalid}
	m.freeEdges = append(m.freeEdges, e)
	m.liveEdges--
}

func (m *Mesh) killFace(f int) {
	m.faces[f] = faceRec{he: Invalid}
	m.freeFaces = append(m.freeFaces, f)
	m.liveFaces--
}

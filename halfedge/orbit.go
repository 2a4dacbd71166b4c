package halfedge

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Orbit is a cycle of half-edge IDs, canonically rotated so that the minimum
// ID comes first. Canonical rotation makes orbits comparable regardless of
// which half-edge the walk started from.
type Orbit []int

func newOrbit(ids []int) Orbit {
	argmin := 0
	for i, id := range ids {
		if id < ids[argmin] {
			argmin = i
		}
	}
	o := make(Orbit, 0, len(ids))
	o = append(o, ids[argmin:]...)
	o = append(o, ids[:argmin]...)
	return o
}

func compareOrbits(a, b Orbit) int {
	return slices.Compare(a, b)
}

// VertexOrbits gathers the twin-next orbits of every live half-edge: each
// orbit is the outgoing fan of one vertex. Orbits are canonically rotated,
// sorted and deduplicated.
func (m *Mesh) VertexOrbits() []Orbit {
	return m.gatherOrbits(func(h int) int {
		return m.halfs[m.halfs[h].twin].next
	})
}

// FaceOrbits gathers the next orbits of every live half-edge: each orbit is
// the boundary cycle of one face (or of one boundary loop). Orbits are
// canonically rotated, sorted and deduplicated.
func (m *Mesh) FaceOrbits() []Orbit {
	return m.gatherOrbits(func(h int) int {
		return m.halfs[h].next
	})
}

func (m *Mesh) gatherOrbits(step func(h int) int) []Orbit {
	visited := bitset.New(uint(len(m.halfs)))
	var orbits []Orbit
	for h := range m.halfs {
		if !m.halfs[h].alive || visited.Test(uint(h)) {
			continue
		}
		cycle := []int{h}
		visited.Set(uint(h))
		for c := step(h); c != h; c = step(c) {
			visited.Set(uint(c))
			cycle = append(cycle, c)
		}
		orbits = append(orbits, newOrbit(cycle))
	}
	slices.SortFunc(orbits, compareOrbits)
	return slices.CompactFunc(orbits, func(a, b Orbit) bool {
		return compareOrbits(a, b) == 0
	})
}

// Fingerprint returns a relabeling-invariant summary of the connectivity:
// the multiset of vertex orbit lengths and face orbit lengths, each sorted.
// Two meshes with equal fingerprints have isomorphic next/twin structure up
// to element renaming; it is the cheap isomorphism check used by tests.
func (m *Mesh) Fingerprint() ([]int, []int) {
	vo := m.VertexOrbits()
	fo := m.FaceOrbits()
	vl := make([]int, len(vo))
	for i, o := range vo {
		vl[i] = len(o)
	}
	fl := make([]int, len(fo))
	for i, o := range fo {
		fl[i] = len(o)
	}
	slices.Sort(vl)
	slices.Sort(fl)
	return vl, fl
}

// VertexEdgePairs returns the (vertex, edge) incidence pairs of the mesh in
// ascending order, using dense positions in the live ID sequences. Feed them
// to dec.FromPairs for adjacency queries.
func (m *Mesh) VertexEdgePairs() [][2]int {
	vpos := densePositions(m.Vertices())
	epos := densePositions(m.Edges())
	var pairs [][2]int
	for e := range m.edges {
		if !m.edges[e].alive {
			continue
		}
		h := m.edges[e].he
		pairs = append(pairs, [2]int{vpos[m.halfs[h].origin], epos[e]})
		pairs = append(pairs, [2]int{vpos[m.halfs[m.halfs[h].twin].origin], epos[e]})
	}
	slices.SortFunc(pairs, comparePairs)
	return pairs
}

// EdgeFacePairs returns the (edge, face) incidence pairs of the mesh in
// ascending order, using dense positions in the live ID sequences.
func (m *Mesh) EdgeFacePairs() [][2]int {
	epos := densePositions(m.Edges())
	fpos := densePositions(m.Faces())
	var pairs [][2]int
	for f := range m.faces {
		if !m.faces[f].alive {
			continue
		}
		_ = m.ForEachFaceHalfEdge(f, func(h int) bool {
			pairs = append(pairs, [2]int{epos[m.halfs[h].edge], fpos[f]})
			return true
		})
	}
	slices.SortFunc(pairs, comparePairs)
	return pairs
}

func densePositions(ids []int) map[int]int {
	pos := make(map[int]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return pos
}

func comparePairs(a, b [2]int) int {
	if a[0] != b[0] {
		return a[0] - b[0]
	}
	return a[1] - b[1]
}

package halfedge_test

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshgo/halfedge"
)

func tetrahedron(t *testing.T) *halfedge.Mesh {
	t.Helper()
	m, err := halfedge.FromPolygons([][]int{
		{0, 2, 1},
		{0, 1, 3},
		{0, 3, 2},
		{1, 2, 3},
	})
	require.NoError(t, err)
	return m
}

// squareMesh is the unit square triangulated along the 0-2 diagonal.
func squareMesh(t *testing.T) *halfedge.Mesh {
	t.Helper()
	m, err := halfedge.FromPolygons([][]int{
		{0, 1, 2},
		{0, 2, 3},
	})
	require.NoError(t, err)
	return m
}

func octahedron(t *testing.T) *halfedge.Mesh {
	t.Helper()
	m, err := halfedge.FromPolygons([][]int{
		{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1},
		{5, 2, 1}, {5, 3, 2}, {5, 4, 3}, {5, 1, 4},
	})
	require.NoError(t, err)
	return m
}

// findEdge returns the edge whose endpoints are {u, v}.
func findEdge(t *testing.T, m *halfedge.Mesh, u, v int) int {
	t.Helper()
	for _, e := range m.Edges() {
		a, b, err := m.EdgeVertices(e)
		require.NoError(t, err)
		if (a == u && b == v) || (a == v && b == u) {
			return e
		}
	}
	t.Fatalf("no edge between %d and %d", u, v)
	return halfedge.Invalid
}

// edgeSet returns the sorted undirected endpoint pairs of all live edges.
func edgeSet(t *testing.T, m *halfedge.Mesh) [][2]int {
	t.Helper()
	var out [][2]int
	for _, e := range m.Edges() {
		a, b, err := m.EdgeVertices(e)
		require.NoError(t, err)
		if a > b {
			a, b = b, a
		}
		out = append(out, [2]int{a, b})
	}
	slices.SortFunc(out, func(x, y [2]int) int {
		if x[0] != y[0] {
			return x[0] - y[0]
		}
		return x[1] - y[1]
	})
	return out
}

// faceSet returns the vertex cycles of all live faces, each rotated so the
// minimum vertex comes first, sorted.
func faceSet(t *testing.T, m *halfedge.Mesh) [][]int {
	t.Helper()
	var out [][]int
	for _, f := range m.Faces() {
		vs, err := m.FaceVertices(f)
		require.NoError(t, err)
		argmin := 0
		for i, v := range vs {
			if v < vs[argmin] {
				argmin = i
			}
		}
		cycle := append(append([]int{}, vs[argmin:]...), vs[:argmin]...)
		out = append(out, cycle)
	}
	slices.SortFunc(out, slices.Compare)
	return out
}

// requireInvariants walks every element and checks twin involution, face
// cycle consistency and vertex fan closure.
func requireInvariants(t *testing.T, m *halfedge.Mesh) {
	t.Helper()
	for _, h := range m.HalfEdges() {
		tw, err := m.Twin(h)
		require.NoError(t, err)
		tt, err := m.Twin(tw)
		require.NoError(t, err)
		require.Equal(t, h, tt, "twin involution broken at half-edge %d", h)

		o, _ := m.Origin(h)
		head, _ := m.Head(h)
		to, _ := m.Origin(tw)
		th, _ := m.Head(tw)
		require.Equal(t, o, th, "twin of %d does not point back", h)
		require.Equal(t, head, to, "twin of %d does not start at head", h)

		eh, _ := m.Edge(h)
		et, _ := m.Edge(tw)
		require.Equal(t, eh, et, "half-edge %d and its twin disagree on edge", h)
	}
	for _, f := range m.Faces() {
		hs, err := m.FaceHalfEdges(f)
		require.NoError(t, err)
		for _, h := range hs {
			fh, _ := m.Face(h)
			require.Equal(t, f, fh)
		}
	}
	for _, v := range m.Vertices() {
		deg, err := m.VertexDegree(v)
		require.NoError(t, err)
		hs, err := m.VertexHalfEdges(v)
		require.NoError(t, err, "vertex %d fan does not close", v)
		require.Len(t, hs, deg)
		for _, h := range hs {
			o, _ := m.Origin(h)
			require.Equal(t, v, o)
		}
	}
}

func TestFromPolygonsTetrahedron(t *testing.T) {
	m := tetrahedron(t)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 6, m.EdgeCount())
	assert.Equal(t, 4, m.FaceCount())
	assert.Equal(t, 12, m.HalfEdgeCount())
	assert.Equal(t, 2, m.EulerCharacteristic())
	assert.Equal(t, 0, m.Genus())
	assert.Empty(t, m.BoundaryLoops())

	for _, v := range m.Vertices() {
		deg, err := m.VertexDegree(v)
		require.NoError(t, err)
		assert.Equal(t, 3, deg)
		onBoundary, err := m.IsBoundaryVertex(v)
		require.NoError(t, err)
		assert.False(t, onBoundary)
	}

	requireInvariants(t, m)
}

func TestFromPolygonsSingleTriangle(t *testing.T) {
	m, err := halfedge.FromPolygons([][]int{{0, 1, 2}})
	require.NoError(t, err)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, 6, m.HalfEdgeCount())
	assert.Equal(t, 1, m.EulerCharacteristic())
	assert.Equal(t, 0, m.Genus())

	loops := m.BoundaryLoops()
	require.Len(t, loops, 1)
	assert.Len(t, loops[0], 3)

	for _, e := range m.Edges() {
		onBoundary, err := m.IsBoundaryEdge(e)
		require.NoError(t, err)
		assert.True(t, onBoundary)
	}

	requireInvariants(t, m)
}

func TestFromPolygonsQuad(t *testing.T) {
	m, err := halfedge.FromPolygons([][]int{{0, 1, 2, 3}})
	require.NoError(t, err)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 4, m.EdgeCount())
	assert.Equal(t, 1, m.FaceCount())
	deg, err := m.FaceDegree(0)
	require.NoError(t, err)
	assert.Equal(t, 4, deg)

	requireInvariants(t, m)
}

func TestFromPolygonsErrors(t *testing.T) {
	t.Run("polygon too short", func(t *testing.T) {
		_, err := halfedge.FromPolygons([][]int{{0, 1}})
		var ip *halfedge.ErrInvalidPolygon
		require.ErrorAs(t, err, &ip)
		assert.Equal(t, 0, ip.Polygon)
	})

	t.Run("repeated vertex in polygon", func(t *testing.T) {
		_, err := halfedge.FromPolygons([][]int{{0, 1, 2}, {1, 2, 1}})
		var ip *halfedge.ErrInvalidPolygon
		require.ErrorAs(t, err, &ip)
		assert.Equal(t, 1, ip.Polygon)
	})

	t.Run("negative vertex index", func(t *testing.T) {
		_, err := halfedge.FromPolygons([][]int{{0, -1, 2}})
		var oor *halfedge.ErrIndexOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, -1, oor.ID)
	})

	t.Run("edge shared by three faces", func(t *testing.T) {
		_, err := halfedge.FromPolygons([][]int{
			{0, 1, 2},
			{1, 0, 3},
			{0, 1, 4},
		})
		var nme *halfedge.ErrNonManifoldEdge
		require.ErrorAs(t, err, &nme)
		assert.Equal(t, 0, nme.V0)
		assert.Equal(t, 1, nme.V1)
	})

	t.Run("same winding on shared edge", func(t *testing.T) {
		_, err := halfedge.FromPolygons([][]int{
			{0, 1, 2},
			{0, 1, 3},
		})
		var io *halfedge.ErrInconsistentOrientation
		require.ErrorAs(t, err, &io)
		assert.Equal(t, 0, io.V0)
		assert.Equal(t, 1, io.V1)
	})

	t.Run("bowtie vertex", func(t *testing.T) {
		_, err := halfedge.FromPolygons([][]int{
			{0, 1, 2},
			{0, 3, 4},
		})
		var nmv *halfedge.ErrNonManifoldVertex
		require.ErrorAs(t, err, &nmv)
		assert.Equal(t, 0, nmv.Vertex)
	})
}

func TestVertexCirculation(t *testing.T) {
	m := squareMesh(t)

	nb, err := m.VertexNeighbors(0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3}, nb)

	// Cyclic adjacency order: 2 sits between 1 and 3 in the fan around 0.
	i := slices.Index(nb, 2)
	prev := nb[(i+len(nb)-1)%len(nb)]
	next := nb[(i+1)%len(nb)]
	assert.ElementsMatch(t, []int{1, 3}, []int{prev, next})

	deg, err := m.VertexDegree(0)
	require.NoError(t, err)
	assert.Equal(t, 3, deg)

	_, err = m.VertexNeighbors(99)
	var oor *halfedge.ErrIndexOutOfRange
	assert.ErrorAs(t, err, &oor)
}

func TestBoundaryLoops(t *testing.T) {
	m := squareMesh(t)

	loops := m.BoundaryLoops()
	require.Len(t, loops, 1)
	require.Len(t, loops[0], 4)

	// The loop visits the square's rim, one half-edge per rim vertex.
	origins := make([]int, len(loops[0]))
	for i, h := range loops[0] {
		o, err := m.Origin(h)
		require.NoError(t, err)
		f, err := m.Face(h)
		require.NoError(t, err)
		assert.Equal(t, halfedge.BoundaryFace, f)
		origins[i] = o
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, origins)

	assert.Equal(t, 1, m.EulerCharacteristic())
	assert.Equal(t, 0, m.Genus())
}

func TestFlipEdge(t *testing.T) {
	m := squareMesh(t)
	diag := findEdge(t, m, 0, 2)

	require.NoError(t, m.FlipEdge(diag))
	requireInvariants(t, m)

	// Counts are untouched; only connectivity moved.
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 5, m.EdgeCount())
	assert.Equal(t, 2, m.FaceCount())

	a, b, err := m.EdgeVertices(diag)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, []int{a, b})
	assert.Equal(t, [][]int{{0, 1, 3}, {1, 2, 3}}, faceSet(t, m))
}

func TestFlipEdgeRoundTrip(t *testing.T) {
	m := squareMesh(t)
	wantEdges := edgeSet(t, m)
	wantFaces := faceSet(t, m)
	diag := findEdge(t, m, 0, 2)

	require.NoError(t, m.FlipEdge(diag))
	require.NoError(t, m.FlipEdge(diag))
	requireInvariants(t, m)

	assert.Equal(t, wantEdges, edgeSet(t, m))
	assert.Equal(t, wantFaces, faceSet(t, m))
}

func TestFlipEdgeBoundary(t *testing.T) {
	m := squareMesh(t)
	rim := findEdge(t, m, 0, 1)

	err := m.FlipEdge(rim)
	var bef *halfedge.ErrBoundaryEdgeFlip
	require.ErrorAs(t, err, &bef)
	assert.Equal(t, rim, bef.Edge)
	requireInvariants(t, m)
}

func TestFlipEdgeDiagonalExists(t *testing.T) {
	// Three triangles: flipping 0-1 would create a second 2-3 edge.
	m, err := halfedge.FromPolygons([][]int{
		{0, 1, 2},
		{1, 0, 3},
		{1, 3, 2},
	})
	require.NoError(t, err)

	err = m.FlipEdge(findEdge(t, m, 0, 1))
	var ee *halfedge.ErrEdgeExists
	require.ErrorAs(t, err, &ee)
	assert.ElementsMatch(t, []int{2, 3}, []int{ee.V0, ee.V1})
	requireInvariants(t, m)
}

func TestSplitEdgeInterior(t *testing.T) {
	m := tetrahedron(t)
	e := findEdge(t, m, 0, 1)

	mid, err := m.SplitEdge(e)
	require.NoError(t, err)
	requireInvariants(t, m)

	assert.Equal(t, 4, mid)
	assert.Equal(t, 5, m.VertexCount())
	assert.Equal(t, 9, m.EdgeCount())
	assert.Equal(t, 6, m.FaceCount())
	assert.Equal(t, 18, m.HalfEdgeCount())
	assert.Equal(t, 2, m.EulerCharacteristic())

	deg, err := m.VertexDegree(mid)
	require.NoError(t, err)
	assert.Equal(t, 4, deg)

	nb, err := m.VertexNeighbors(mid)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, nb)
}

func TestSplitEdgeBoundary(t *testing.T) {
	m := squareMesh(t)
	rim := findEdge(t, m, 0, 1)

	mid, err := m.SplitEdge(rim)
	require.NoError(t, err)
	requireInvariants(t, m)

	assert.Equal(t, 5, m.VertexCount())
	assert.Equal(t, 7, m.EdgeCount())
	assert.Equal(t, 3, m.FaceCount())
	assert.Equal(t, 1, m.EulerCharacteristic())

	deg, err := m.VertexDegree(mid)
	require.NoError(t, err)
	assert.Equal(t, 3, deg)
	onBoundary, err := m.IsBoundaryVertex(mid)
	require.NoError(t, err)
	assert.True(t, onBoundary)

	loops := m.BoundaryLoops()
	require.Len(t, loops, 1)
	assert.Len(t, loops[0], 5)
}

func TestCollapseEdgeInterior(t *testing.T) {
	m := octahedron(t)
	e := findEdge(t, m, 0, 1)

	survivor, err := m.CollapseEdge(e)
	require.NoError(t, err)
	requireInvariants(t, m)

	assert.Contains(t, []int{0, 1}, survivor)
	assert.Equal(t, 5, m.VertexCount())
	assert.Equal(t, 9, m.EdgeCount())
	assert.Equal(t, 6, m.FaceCount())
	assert.Equal(t, 2, m.EulerCharacteristic())

	// The survivor absorbed the dead endpoint's fan.
	deg, err := m.VertexDegree(survivor)
	require.NoError(t, err)
	assert.Equal(t, 4, deg)
}

func TestCollapseEdgeBoundary(t *testing.T) {
	m := squareMesh(t)
	rim := findEdge(t, m, 0, 1)

	survivor, err := m.CollapseEdge(rim)
	require.NoError(t, err)
	requireInvariants(t, m)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Equal(t, 1, m.FaceCount())
	assert.Contains(t, []int{0, 1}, survivor)

	loops := m.BoundaryLoops()
	require.Len(t, loops, 1)
	assert.Len(t, loops[0], 3)
}

func TestCollapseEdgeLinkViolation(t *testing.T) {
	// Vertices 0 and 1 share neighbor 4 through faces that are not incident
	// to edge 0-1, so collapsing 0-1 would pinch the surface at 4.
	m, err := halfedge.FromPolygons([][]int{
		{0, 1, 2},
		{1, 0, 3},
		{2, 1, 4},
		{0, 2, 4},
	})
	require.NoError(t, err)
	before := snapshot(t, m)

	_, err = m.CollapseEdge(findEdge(t, m, 0, 1))
	var lcv *halfedge.ErrLinkConditionViolated
	require.ErrorAs(t, err, &lcv)

	// Atomicity: a rejected collapse leaves every record untouched.
	assert.Equal(t, before, snapshot(t, m))
	requireInvariants(t, m)
}

// snapshot serializes all live connectivity for before/after comparison.
func snapshot(t *testing.T, m *halfedge.Mesh) []string {
	t.Helper()
	var out []string
	for _, h := range m.HalfEdges() {
		o, _ := m.Origin(h)
		tw, _ := m.Twin(h)
		nx, _ := m.Next(h)
		f, _ := m.Face(h)
		e, _ := m.Edge(h)
		out = append(out, fmt.Sprintf("h%d:o%d,t%d,n%d,f%d,e%d", h, o, tw, nx, f, e))
	}
	for _, v := range m.Vertices() {
		deg, _ := m.VertexDegree(v)
		out = append(out, fmt.Sprintf("v%d:deg%d", v, deg))
	}
	for _, e := range m.Edges() {
		a, b, _ := m.EdgeVertices(e)
		out = append(out, fmt.Sprintf("e%d:%d-%d", e, a, b))
	}
	for _, f := range m.Faces() {
		vs, _ := m.FaceVertices(f)
		out = append(out, fmt.Sprintf("f%d:%v", f, vs))
	}
	return out
}

func TestCollapseTetrahedronEdge(t *testing.T) {
	// Collapsing a tetrahedron edge leaves the two-triangle sphere.
	m := tetrahedron(t)

	_, err := m.CollapseEdge(findEdge(t, m, 0, 1))
	require.NoError(t, err)
	requireInvariants(t, m)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, 2, m.EulerCharacteristic())
}

func TestMutationSequence(t *testing.T) {
	m := octahedron(t)

	mid, err := m.SplitEdge(findEdge(t, m, 0, 1))
	require.NoError(t, err)
	requireInvariants(t, m)
	assert.Equal(t, 2, m.EulerCharacteristic())

	require.NoError(t, m.FlipEdge(findEdge(t, m, mid, 2)))
	requireInvariants(t, m)
	assert.Equal(t, 2, m.EulerCharacteristic())

	_, err = m.CollapseEdge(findEdge(t, m, 0, mid))
	require.NoError(t, err)
	requireInvariants(t, m)
	assert.Equal(t, 2, m.EulerCharacteristic())
}

func TestRecycledIDs(t *testing.T) {
	m := octahedron(t)

	_, err := m.CollapseEdge(findEdge(t, m, 0, 1))
	require.NoError(t, err)
	edgesBefore := len(m.Edges())

	// The next split reuses freed IDs instead of growing the arenas.
	mid, err := m.SplitEdge(m.Edges()[0])
	require.NoError(t, err)
	requireInvariants(t, m)
	assert.Less(t, mid, 6, "freed vertex ID should be recycled")
	assert.Equal(t, edgesBefore+3, len(m.Edges()))
}

func TestDeadElementAccess(t *testing.T) {
	m := octahedron(t)
	e := findEdge(t, m, 0, 1)
	survivor, err := m.CollapseEdge(e)
	require.NoError(t, err)

	dead := 1
	if survivor == 1 {
		dead = 0
	}
	var oor *halfedge.ErrIndexOutOfRange

	_, err = m.VertexHalfEdge(dead)
	assert.ErrorAs(t, err, &oor)
	_, _, err = m.EdgeVertices(e)
	assert.ErrorAs(t, err, &oor)
	err = m.FlipEdge(e)
	assert.ErrorAs(t, err, &oor)
	_, err = m.SplitEdge(e)
	assert.ErrorAs(t, err, &oor)
	_, err = m.CollapseEdge(e)
	assert.ErrorAs(t, err, &oor)
}

func TestErrorSentinels(t *testing.T) {
	m := squareMesh(t)

	err := m.FlipEdge(findEdge(t, m, 0, 1))
	assert.True(t, errors.As(err, new(*halfedge.ErrBoundaryEdgeFlip)))
	assert.NotEmpty(t, err.Error())
}

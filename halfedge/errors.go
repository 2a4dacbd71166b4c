package halfedge

import "fmt"

// ErrIndexOutOfRange indicates an element ID that is out of range or refers
// to a removed element.
type ErrIndexOutOfRange struct {
	Kind string // "vertex", "halfedge", "edge" or "face"
	ID   int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s index out of range: %d", e.Kind, e.ID)
}

// ErrNonManifoldVertex indicates a vertex whose incident half-edge fan does
// not close into a single cycle.
type ErrNonManifoldVertex struct {
	Vertex int
}

func (e *ErrNonManifoldVertex) Error() string {
	return fmt.Sprintf("non-manifold vertex: %d", e.Vertex)
}

// ErrNonManifoldEdge indicates more than two half-edges sharing the same
// undirected endpoint pair.
type ErrNonManifoldEdge struct {
	V0, V1 int
}

func (e *ErrNonManifoldEdge) Error() string {
	return fmt.Sprintf("non-manifold edge: (%d, %d)", e.V0, e.V1)
}

// ErrInconsistentOrientation indicates a directed vertex pair that appears
// twice with the same orientation, i.e. inconsistent winding across two
// adjacent faces.
type ErrInconsistentOrientation struct {
	V0, V1 int
}

func (e *ErrInconsistentOrientation) Error() string {
	return fmt.Sprintf("inconsistent orientation: directed edge (%d, %d) appears twice", e.V0, e.V1)
}

// ErrBoundaryEdgeFlip indicates an attempt to flip an edge that is not
// interior.
type ErrBoundaryEdgeFlip struct {
	Edge int
}

func (e *ErrBoundaryEdgeFlip) Error() string {
	return fmt.Sprintf("cannot flip boundary edge: %d", e.Edge)
}

// ErrLinkConditionViolated indicates an edge collapse that would create a
// non-manifold vertex or a duplicate edge. The mesh is left unchanged.
type ErrLinkConditionViolated struct {
	Edge int
}

func (e *ErrLinkConditionViolated) Error() string {
	return fmt.Sprintf("link condition violated for edge: %d", e.Edge)
}

// ErrNonTriangularFace indicates a mutation that requires triangular faces
// was attempted next to a face of different degree.
type ErrNonTriangularFace struct {
	Face   int
	Degree int
}

func (e *ErrNonTriangularFace) Error() string {
	return fmt.Sprintf("face %d has degree %d, want 3", e.Face, e.Degree)
}

// ErrEdgeExists indicates a mutation that would create a second edge between
// an already connected vertex pair.
type ErrEdgeExists struct {
	V0, V1 int
}

func (e *ErrEdgeExists) Error() string {
	return fmt.Sprintf("edge (%d, %d) already exists", e.V0, e.V1)
}

// ErrInvalidPolygon indicates a polygon in the input soup with fewer than
// three vertices or a repeated vertex.
type ErrInvalidPolygon struct {
	Polygon int
}

func (e *ErrInvalidPolygon) Error() string {
	return fmt.Sprintf("invalid polygon at index %d", e.Polygon)
}

package dec

import (
	"fmt"

	"github.com/hupe1980/meshgo/geometry"
	"github.com/hupe1980/meshgo/halfedge"
)

// ErrDegenerateMesh indicates that too large a fraction of faces has
// near-zero area for operator assembly to be meaningful.
type ErrDegenerateMesh struct {
	Degenerate int
	Faces      int
	Limit      float64
}

func (e *ErrDegenerateMesh) Error() string {
	return fmt.Sprintf("degenerate mesh: %d of %d faces below area threshold (limit %.2f)",
		e.Degenerate, e.Faces, e.Limit)
}

// Options configures operator assembly.
type Options struct {
	// DegenerateEps is the face area below which a face counts as
	// degenerate. Degenerate faces get zero weights instead of Inf/NaN.
	DegenerateEps float64

	// MaxDegenerateFraction is the fraction of degenerate faces above which
	// assembly fails with ErrDegenerateMesh rather than silently producing
	// a mostly-zero operator.
	MaxDegenerateFraction float64
}

// DefaultOptions tolerates up to 10% degenerate faces.
var DefaultOptions = Options{
	DegenerateEps:         geometry.DefaultDegenerateEps,
	MaxDegenerateFraction: 0.1,
}

// Assembler builds DEC operators from a mesh snapshot. Rows and columns are
// dense positions in the live ID sequences captured at construction; the
// mesh must not be mutated while the assembler is in use.
type Assembler struct {
	mesh *halfedge.Mesh
	pos  *geometry.Positions
	opts Options

	verts []int
	edges []int
	faces []int
	vpos  map[int]int
	epos  map[int]int
	fpos  map[int]int

	areas      []float64 // by dense face position
	degenerate []int     // face IDs below the area threshold
}

// NewAssembler snapshots the mesh's live elements and precomputes face
// areas. It fails with ErrDegenerateMesh if more than the configured
// fraction of faces is degenerate.
func NewAssembler(m *halfedge.Mesh, p *geometry.Positions, optFns ...func(o *Options)) (*Assembler, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	a := &Assembler{
		mesh:  m,
		pos:   p,
		opts:  opts,
		verts: m.Vertices(),
		edges: m.Edges(),
		faces: m.Faces(),
	}
	a.vpos = densePositions(a.verts)
	a.epos = densePositions(a.edges)
	a.fpos = densePositions(a.faces)

	a.areas = make([]float64, len(a.faces))
	for i, f := range a.faces {
		area, err := geometry.FaceArea(m, p, f)
		if err != nil {
			return nil, err
		}
		a.areas[i] = area
		if area < opts.DegenerateEps {
			a.degenerate = append(a.degenerate, f)
		}
	}
	if len(a.faces) > 0 {
		frac := float64(len(a.degenerate)) / float64(len(a.faces))
		if frac > opts.MaxDegenerateFraction {
			return nil, &ErrDegenerateMesh{
				Degenerate: len(a.degenerate),
				Faces:      len(a.faces),
				Limit:      opts.MaxDegenerateFraction,
			}
		}
	}
	return a, nil
}

// DegenerateFaces returns the IDs of faces below the area threshold.
func (a *Assembler) DegenerateFaces() []int { return a.degenerate }

// Vertices returns the snapshotted vertex IDs in dense column order.
func (a *Assembler) Vertices() []int { return a.verts }

// Edges returns the snapshotted edge IDs in dense row order.
func (a *Assembler) Edges() []int { return a.edges }

// Faces returns the snapshotted face IDs in dense row order.
func (a *Assembler) Faces() []int { return a.faces }

// edgeEnds returns the canonical (tail, head) endpoint IDs of an edge: the
// lower vertex ID is the tail.
func (a *Assembler) edgeEnds(e int) (int, int) {
	u, v, _ := a.mesh.EdgeVertices(e)
	if u > v {
		u, v = v, u
	}
	return u, v
}

// D0 assembles the vertex-to-edge exterior derivative: one row per edge with
// -1 at the canonical tail column and +1 at the head column.
func (a *Assembler) D0() *COO {
	d0 := NewCOO(len(a.edges), len(a.verts))
	for i, e := range a.edges {
		tail, head := a.edgeEnds(e)
		d0.Append(i, a.vpos[tail], -1)
		d0.Append(i, a.vpos[head], +1)
	}
	return d0
}

// D1 assembles the edge-to-face exterior derivative: one row per face with
// +1 for each boundary edge traversed along its canonical orientation and
// -1 for each traversed against it.
func (a *Assembler) D1() *COO {
	d1 := NewCOO(len(a.faces), len(a.edges))
	for i, f := range a.faces {
		_ = a.mesh.ForEachFaceHalfEdge(f, func(h int) bool {
			e, _ := a.mesh.Edge(h)
			tail, _ := a.edgeEnds(e)
			o, _ := a.mesh.Origin(h)
			sign := 1.0
			if o != tail {
				sign = -1.0
			}
			d1.Append(i, a.epos[e], sign)
			return true
		})
	}
	return d1
}

// Star0 assembles the diagonal Hodge star on 0-forms: vertex dual areas.
func (a *Assembler) Star0() (*Diagonal, error) {
	diag := make([]float64, len(a.verts))
	for i, v := range a.verts {
		area, err := geometry.VertexDualArea(a.mesh, a.pos, v)
		if err != nil {
			return nil, err
		}
		diag[i] = area
	}
	return NewDiagonal(diag), nil
}

// Star1 assembles the diagonal Hodge star on 1-forms: edge cotangent
// weights.
func (a *Assembler) Star1() (*Diagonal, error) {
	diag := make([]float64, len(a.edges))
	for i, e := range a.edges {
		w, err := geometry.EdgeCotanWeight(a.mesh, a.pos, e)
		if err != nil {
			return nil, err
		}
		diag[i] = w
	}
	return NewDiagonal(diag), nil
}

// Star2 assembles the diagonal Hodge star on 2-forms: inverse face areas.
// Degenerate faces get a zero entry instead of Inf.
func (a *Assembler) Star2() *Diagonal {
	diag := make([]float64, len(a.faces))
	for i := range a.faces {
		if a.areas[i] < a.opts.DegenerateEps {
			continue
		}
		diag[i] = 1 / a.areas[i]
	}
	return NewDiagonal(diag)
}

// Laplacian assembles the cotangent Laplace-Beltrami operator
// d0' * star1 * d0, accumulated edge by edge so the result is symmetric
// with zero row sums by construction. Positive semi-definiteness (up to the
// constant null space) holds whenever the cotangent weights are
// non-negative.
func (a *Assembler) Laplacian() (*COO, error) {
	star1, err := a.Star1()
	if err != nil {
		return nil, err
	}
	l := NewCOO(len(a.verts), len(a.verts))
	for i, e := range a.edges {
		w := star1.At(i)
		if w == 0 {
			continue
		}
		tail, head := a.edgeEnds(e)
		ti, hi := a.vpos[tail], a.vpos[head]
		l.Append(ti, ti, w)
		l.Append(hi, hi, w)
		l.Append(ti, hi, -w)
		l.Append(hi, ti, -w)
	}
	return l, nil
}

// VertexEdgeAdjacency returns the vertex-edge incidence pattern as a
// connection matrix over dense positions.
func (a *Assembler) VertexEdgeAdjacency() *ConnectionMatrix {
	return FromPairs(a.mesh.VertexEdgePairs())
}

// EdgeFaceAdjacency returns the edge-face incidence pattern as a connection
// matrix over dense positions.
func (a *Assembler) EdgeFaceAdjacency() *ConnectionMatrix {
	return FromPairs(a.mesh.EdgeFacePairs())
}

func densePositions(ids []int) map[int]int {
	pos := make(map[int]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return pos
}

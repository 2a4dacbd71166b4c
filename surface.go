package meshgo

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/meshgo/dec"
	"github.com/hupe1980/meshgo/geometry"
	"github.com/hupe1980/meshgo/halfedge"
	"github.com/hupe1980/meshgo/validate"
)

// Surface bundles a half-edge topology store with its vertex positions and
// exposes the mutation, evaluation and operator assembly surface of the
// library.
//
// Mutations require exclusive access; everything else is a read and is safe
// to run concurrently against a surface that is not being mutated.
type Surface struct {
	topo *halfedge.Mesh
	pos  *geometry.Positions
	opts options
}

// New builds a surface from an index soup (an ordered sequence of polygons,
// each an ordered sequence of vertex position indices, wound
// counter-clockwise) plus the position array itself. The position array must
// cover every vertex index the polygons reference.
func New(polygons [][]int, positions []r3.Vec, optFns ...Option) (*Surface, error) {
	opts := options{
		logger:                NoopLogger(),
		metrics:               NoopMetricsCollector{},
		degenerateEps:         geometry.DefaultDegenerateEps,
		maxDegenerateFraction: dec.DefaultOptions.MaxDegenerateFraction,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	topo, err := halfedge.FromPolygons(polygons)
	if err != nil {
		return nil, translateError(err)
	}
	for _, poly := range polygons {
		for _, v := range poly {
			if v >= len(positions) {
				return nil, translateError(&halfedge.ErrIndexOutOfRange{Kind: "vertex", ID: v})
			}
		}
	}

	s := &Surface{
		topo: topo,
		pos:  geometry.NewPositions(positions),
		opts: opts,
	}
	opts.logger.Debug("surface constructed",
		"vertices", topo.VertexCount(),
		"edges", topo.EdgeCount(),
		"faces", topo.FaceCount(),
		"euler", topo.EulerCharacteristic(),
	)
	return s, nil
}

// Topology returns the underlying half-edge store.
func (s *Surface) Topology() *halfedge.Mesh { return s.topo }

// Positions returns the vertex position store.
func (s *Surface) Positions() *geometry.Positions { return s.pos }

// VertexCount returns the number of live vertices.
func (s *Surface) VertexCount() int { return s.topo.VertexCount() }

// EdgeCount returns the number of live edges.
func (s *Surface) EdgeCount() int { return s.topo.EdgeCount() }

// FaceCount returns the number of live faces.
func (s *Surface) FaceCount() int { return s.topo.FaceCount() }

// EulerCharacteristic returns V - E + F.
func (s *Surface) EulerCharacteristic() int { return s.topo.EulerCharacteristic() }

// Genus returns the genus of the surface, assuming it is connected and
// orientable.
func (s *Surface) Genus() int { return s.topo.Genus() }

// BoundaryLoops returns the boundary half-edges grouped into closed loops.
func (s *Surface) BoundaryLoops() [][]int { return s.topo.BoundaryLoops() }

// FlipEdge replaces an interior edge shared by two triangles with the
// opposite diagonal.
func (s *Surface) FlipEdge(e int) error {
	start := time.Now()
	err := s.topo.FlipEdge(e)
	s.opts.metrics.RecordFlip(time.Since(start), err)
	s.opts.logger.LogMutation("flip", e, err)
	return translateError(err)
}

// SplitEdge inserts a new vertex at the edge midpoint, subdividing each
// incident triangle into two. The new vertex ID is returned.
func (s *Surface) SplitEdge(e int) (int, error) {
	u, v, err := s.topo.EdgeVertices(e)
	if err != nil {
		return halfedge.Invalid, translateError(err)
	}
	pu, err := s.pos.At(u)
	if err != nil {
		return halfedge.Invalid, translateError(err)
	}
	pv, err := s.pos.At(v)
	if err != nil {
		return halfedge.Invalid, translateError(err)
	}
	return s.SplitEdgeAt(e, r3.Scale(0.5, r3.Add(pu, pv)))
}

// SplitEdgeAt inserts a new vertex at the caller-supplied position.
func (s *Surface) SplitEdgeAt(e int, at r3.Vec) (int, error) {
	start := time.Now()
	mid, err := s.topo.SplitEdge(e)
	s.opts.metrics.RecordSplit(time.Since(start), err)
	s.opts.logger.LogMutation("split", e, err)
	if err != nil {
		return halfedge.Invalid, translateError(err)
	}
	s.pos.Ensure(mid)
	_ = s.pos.Set(mid, at)
	return mid, nil
}

// CollapseEdge merges the edge's two endpoints into one, placing the
// survivor at the edge midpoint. The surviving vertex ID is returned; on
// failure the mesh and positions are unchanged.
func (s *Surface) CollapseEdge(e int) (int, error) {
	u, v, err := s.topo.EdgeVertices(e)
	if err != nil {
		return halfedge.Invalid, translateError(err)
	}
	pu, err := s.pos.At(u)
	if err != nil {
		return halfedge.Invalid, translateError(err)
	}
	pv, err := s.pos.At(v)
	if err != nil {
		return halfedge.Invalid, translateError(err)
	}

	start := time.Now()
	survivor, err := s.topo.CollapseEdge(e)
	s.opts.metrics.RecordCollapse(time.Since(start), err)
	s.opts.logger.LogMutation("collapse", e, err)
	if err != nil {
		return halfedge.Invalid, translateError(err)
	}
	_ = s.pos.Set(survivor, r3.Scale(0.5, r3.Add(pu, pv)))
	return survivor, nil
}

// TotalArea returns the sum of all face areas.
func (s *Surface) TotalArea() (float64, error) {
	a, err := geometry.TotalArea(s.topo, s.pos)
	return a, translateError(err)
}

// FaceAreas evaluates all face areas in parallel, ordered like
// Topology().Faces().
func (s *Surface) FaceAreas(ctx context.Context) ([]float64, error) {
	faces := s.topo.Faces()
	out := make([]float64, len(faces))
	err := s.parallelRange(ctx, len(faces), func(i int) error {
		a, err := geometry.FaceArea(s.topo, s.pos, faces[i])
		out[i] = a
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// VertexDualAreas evaluates the mixed Voronoi dual areas of all vertices in
// parallel, ordered like Topology().Vertices().
func (s *Surface) VertexDualAreas(ctx context.Context) ([]float64, error) {
	verts := s.topo.Vertices()
	out := make([]float64, len(verts))
	err := s.parallelRange(ctx, len(verts), func(i int) error {
		a, err := geometry.VertexDualArea(s.topo, s.pos, verts[i])
		out[i] = a
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// VertexNormals evaluates area-weighted vertex normals in parallel, ordered
// like Topology().Vertices().
func (s *Surface) VertexNormals(ctx context.Context) ([]r3.Vec, error) {
	verts := s.topo.Vertices()
	out := make([]r3.Vec, len(verts))
	err := s.parallelRange(ctx, len(verts), func(i int) error {
		n, err := geometry.VertexNormal(s.topo, s.pos, verts[i])
		out[i] = n
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// parallelRange fans n independent evaluations out over the configured
// parallelism. Evaluation only reads topology and positions, so this is
// safe as long as no mutation interleaves.
func (s *Surface) parallelRange(ctx context.Context, n int, fn func(i int) error) error {
	workers := s.opts.parallelism
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		i := i
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}

// Operators returns a DEC operator assembler over the current mesh
// snapshot. Degenerate faces below the configured threshold are logged; if
// their fraction exceeds the configured limit the call fails with
// ErrDegenerateMesh.
func (s *Surface) Operators() (*dec.Assembler, error) {
	start := time.Now()
	a, err := dec.NewAssembler(s.topo, s.pos, func(o *dec.Options) {
		o.DegenerateEps = s.opts.degenerateEps
		o.MaxDegenerateFraction = s.opts.maxDegenerateFraction
	})
	s.opts.metrics.RecordAssembly("snapshot", time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}
	s.opts.logger.LogDegenerateFaces(a.DegenerateFaces())
	return a, nil
}

// Laplacian assembles the cotangent Laplace-Beltrami operator.
func (s *Surface) Laplacian() (*dec.COO, error) {
	a, err := s.Operators()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	l, err := a.Laplacian()
	s.opts.metrics.RecordAssembly("laplacian", time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}
	rows, cols := l.Dims()
	s.opts.logger.LogAssembly("laplacian", rows, cols, nil)
	return l, nil
}

// Check validates the mesh invariants and reports all violations found. A
// healthy surface yields an empty result.
func (s *Surface) Check() []validate.Finding {
	return validate.Check(s.topo, s.pos, func(o *validate.Options) {
		o.DegenerateEps = s.opts.degenerateEps
	})
}

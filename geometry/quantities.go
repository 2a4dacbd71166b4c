package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/meshgo/halfedge"
)

// DefaultDegenerateEps is the area (and cross-product magnitude) below which
// a face counts as degenerate. Degenerate faces contribute zero cotangent
// weight instead of propagating Inf/NaN.
const DefaultDegenerateEps = 1e-12

func faceAreaVector(m *halfedge.Mesh, p *Positions, f int) (r3.Vec, error) {
	vs, err := m.FaceVertices(f)
	if err != nil {
		return r3.Vec{}, err
	}
	pts := make([]r3.Vec, len(vs))
	for i, v := range vs {
		if pts[i], err = p.At(v); err != nil {
			return r3.Vec{}, err
		}
	}
	if len(pts) == 3 {
		return r3.Cross(r3.Sub(pts[1], pts[0]), r3.Sub(pts[2], pts[0])), nil
	}
	// Polygon: signed fan about the centroid.
	var c r3.Vec
	for _, pt := range pts {
		c = r3.Add(c, pt)
	}
	c = r3.Scale(1/float64(len(pts)), c)
	var sum r3.Vec
	for i, pt := range pts {
		next := pts[(i+1)%len(pts)]
		sum = r3.Add(sum, r3.Cross(r3.Sub(pt, c), r3.Sub(next, c)))
	}
	return sum, nil
}

// FaceArea returns the area of a face: half the cross product magnitude for
// triangles, the signed fan sum about the centroid for general polygons.
func FaceArea(m *halfedge.Mesh, p *Positions, f int) (float64, error) {
	av, err := faceAreaVector(m, p, f)
	if err != nil {
		return 0, err
	}
	return 0.5 * r3.Norm(av), nil
}

// FaceNormal returns the unit normal of a face, following its
// counter-clockwise winding. Degenerate faces yield the zero vector.
func FaceNormal(m *halfedge.Mesh, p *Positions, f int) (r3.Vec, error) {
	av, err := faceAreaVector(m, p, f)
	if err != nil {
		return r3.Vec{}, err
	}
	n := r3.Norm(av)
	if n < DefaultDegenerateEps {
		return r3.Vec{}, nil
	}
	return r3.Scale(1/n, av), nil
}

// FaceCentroid returns the vertex-average centroid of a face.
func FaceCentroid(m *halfedge.Mesh, p *Positions, f int) (r3.Vec, error) {
	vs, err := m.FaceVertices(f)
	if err != nil {
		return r3.Vec{}, err
	}
	var c r3.Vec
	for _, v := range vs {
		pt, err := p.At(v)
		if err != nil {
			return r3.Vec{}, err
		}
		c = r3.Add(c, pt)
	}
	return r3.Scale(1/float64(len(vs)), c), nil
}

// CornerAngle returns the interior angle at the origin of h within its face,
// between the edge to the head of h and the edge to the origin of its
// predecessor. It uses atan2 of cross and dot, which stays accurate near 0
// and pi where a plain arccosine loses precision.
func CornerAngle(m *halfedge.Mesh, p *Positions, h int) (float64, error) {
	o, err := m.Origin(h)
	if err != nil {
		return 0, err
	}
	head, _ := m.Head(h)
	prev, _ := m.Prev(h)
	tail, _ := m.Origin(prev)

	po, err := p.At(o)
	if err != nil {
		return 0, err
	}
	ph, err := p.At(head)
	if err != nil {
		return 0, err
	}
	pt, err := p.At(tail)
	if err != nil {
		return 0, err
	}
	u := r3.Sub(ph, po)
	w := r3.Sub(pt, po)
	return math.Atan2(r3.Norm(r3.Cross(u, w)), r3.Dot(u, w)), nil
}

// cotanOpposite returns the cotangent of the angle opposite h inside its
// (triangular) face, or 0 if the corner is degenerate.
func cotanOpposite(m *halfedge.Mesh, p *Positions, h int) (float64, error) {
	f, err := m.Face(h)
	if err != nil {
		return 0, err
	}
	if f == halfedge.BoundaryFace {
		return 0, nil
	}
	if d, _ := m.FaceDegree(f); d != 3 {
		return 0, &halfedge.ErrNonTriangularFace{Face: f, Degree: d}
	}
	a, _ := m.Origin(h)
	b, _ := m.Head(h)
	next, _ := m.Next(h)
	c, _ := m.Head(next)

	pa, err := p.At(a)
	if err != nil {
		return 0, err
	}
	pb, err := p.At(b)
	if err != nil {
		return 0, err
	}
	pc, err := p.At(c)
	if err != nil {
		return 0, err
	}
	u := r3.Sub(pa, pc)
	w := r3.Sub(pb, pc)
	cross := r3.Norm(r3.Cross(u, w))
	if cross < DefaultDegenerateEps {
		return 0, nil
	}
	return r3.Dot(u, w) / cross, nil
}

// EdgeCotanWeight returns the cotangent weight of an edge: half the sum of
// the cotangents of the angles opposite it in its incident triangles.
// Boundary edges get only the single contributing angle; degenerate faces
// contribute zero instead of Inf/NaN.
func EdgeCotanWeight(m *halfedge.Mesh, p *Positions, e int) (float64, error) {
	h, err := m.EdgeHalfEdge(e)
	if err != nil {
		return 0, err
	}
	t, _ := m.Twin(h)
	wa, err := cotanOpposite(m, p, h)
	if err != nil {
		return 0, err
	}
	wb, err := cotanOpposite(m, p, t)
	if err != nil {
		return 0, err
	}
	return 0.5 * (wa + wb), nil
}

// VertexDualArea returns the mixed Voronoi area of a vertex: the
// circumcentric Voronoi contribution for incident triangles whose angles are
// all acute, and the barycentric fallback (one third of the face area, one
// n-th for polygons) otherwise. The mix avoids the negative areas obtuse
// triangles produce under a pure circumcentric rule.
func VertexDualArea(m *halfedge.Mesh, p *Positions, v int) (float64, error) {
	hs, err := m.VertexHalfEdges(v)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, h := range hs {
		f, _ := m.Face(h)
		if f == halfedge.BoundaryFace {
			continue
		}
		d, _ := m.FaceDegree(f)
		if d != 3 {
			area, err := FaceArea(m, p, f)
			if err != nil {
				return 0, err
			}
			total += area / float64(d)
			continue
		}
		contrib, err := triangleDualContribution(m, p, h)
		if err != nil {
			return 0, err
		}
		total += contrib
	}
	return total, nil
}

func triangleDualContribution(m *halfedge.Mesh, p *Positions, h int) (float64, error) {
	// h leaves the vertex of interest; the triangle is (v, q, r).
	next, _ := m.Next(h)
	prev, _ := m.Prev(h)

	av, err := CornerAngle(m, p, h)
	if err != nil {
		return 0, err
	}
	aq, err := CornerAngle(m, p, next)
	if err != nil {
		return 0, err
	}
	ar, err := CornerAngle(m, p, prev)
	if err != nil {
		return 0, err
	}

	f, _ := m.Face(h)
	if av >= math.Pi/2 || aq >= math.Pi/2 || ar >= math.Pi/2 {
		area, err := FaceArea(m, p, f)
		if err != nil {
			return 0, err
		}
		return area / 3, nil
	}

	v, _ := m.Origin(h)
	q, _ := m.Head(h)
	r, _ := m.Origin(prev)
	pv, err := p.At(v)
	if err != nil {
		return 0, err
	}
	pq, err := p.At(q)
	if err != nil {
		return 0, err
	}
	pr, err := p.At(r)
	if err != nil {
		return 0, err
	}
	// Circumcentric Voronoi cell: |vq|^2 cot(r) + |vr|^2 cot(q), over 8.
	vq := r3.Sub(pq, pv)
	vr := r3.Sub(pr, pv)
	return (r3.Dot(vq, vq)/math.Tan(ar) + r3.Dot(vr, vr)/math.Tan(aq)) / 8, nil
}

// VertexNormal returns the area-weighted average of the incident face
// normals, normalized. Isolated or fully degenerate vertices yield the zero
// vector.
func VertexNormal(m *halfedge.Mesh, p *Positions, v int) (r3.Vec, error) {
	hs, err := m.VertexHalfEdges(v)
	if err != nil {
		return r3.Vec{}, err
	}
	var sum r3.Vec
	for _, h := range hs {
		f, _ := m.Face(h)
		if f == halfedge.BoundaryFace {
			continue
		}
		// The face area vector is the area-weighted normal already.
		av, err := faceAreaVector(m, p, f)
		if err != nil {
			return r3.Vec{}, err
		}
		sum = r3.Add(sum, av)
	}
	n := r3.Norm(sum)
	if n < DefaultDegenerateEps {
		return r3.Vec{}, nil
	}
	return r3.Scale(1/n, sum), nil
}

// TotalArea returns the sum of all face areas.
func TotalArea(m *halfedge.Mesh, p *Positions) (float64, error) {
	total := 0.0
	for _, f := range m.Faces() {
		a, err := FaceArea(m, p, f)
		if err != nil {
			return 0, err
		}
		total += a
	}
	return total, nil
}

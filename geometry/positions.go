package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/meshgo/halfedge"
)

// Positions stores per-vertex coordinates, indexed by vertex ID. It is pure
// data: no topology logic lives here.
type Positions struct {
	pts []r3.Vec
}

// NewPositions wraps a coordinate slice indexed by vertex ID. The slice is
// copied so the caller keeps ownership of its input.
func NewPositions(pts []r3.Vec) *Positions {
	cp := make([]r3.Vec, len(pts))
	copy(cp, pts)
	return &Positions{pts: cp}
}

// Len returns the number of position slots.
func (p *Positions) Len() int { return len(p.pts) }

// At returns the position of vertex v.
func (p *Positions) At(v int) (r3.Vec, error) {
	if v < 0 || v >= len(p.pts) {
		return r3.Vec{}, &halfedge.ErrIndexOutOfRange{Kind: "vertex", ID: v}
	}
	return p.pts[v], nil
}

// Set overwrites the position of vertex v.
func (p *Positions) Set(v int, pt r3.Vec) error {
	if v < 0 || v >= len(p.pts) {
		return &halfedge.ErrIndexOutOfRange{Kind: "vertex", ID: v}
	}
	p.pts[v] = pt
	return nil
}

// Append adds a slot for a newly created vertex and returns its index. When
// topology mutation recycles a vertex ID below the current length, use Set
// instead.
func (p *Positions) Append(pt r3.Vec) int {
	p.pts = append(p.pts, pt)
	return len(p.pts) - 1
}

// Ensure grows the store so that vertex v is addressable, filling new slots
// with the zero vector.
func (p *Positions) Ensure(v int) {
	for len(p.pts) <= v {
		p.pts = append(p.pts, r3.Vec{})
	}
}

// Clone returns an independent copy, useful for running operators against
// deformed positions.
func (p *Positions) Clone() *Positions {
	return NewPositions(p.pts)
}

package validate

import (
	"fmt"

	"github.com/hupe1980/meshgo/geometry"
	"github.com/hupe1980/meshgo/halfedge"
)

// Kind tags a finding with the invariant it violates.
type Kind int

const (
	// NonManifoldVertex marks a vertex whose half-edge fan does not close
	// into a single cycle.
	NonManifoldVertex Kind = iota
	// NonManifoldEdge marks an edge whose twin pairing is broken. Meshes
	// built via halfedge.FromPolygons reject broken pairings at
	// construction, so this kind only surfaces if the store is ever
	// populated another way.
	NonManifoldEdge
	// InconsistentOrientation marks an edge whose two half-edges do not run
	// in opposite directions. Like NonManifoldEdge, construction enforces
	// this for polygon-soup meshes; the checker re-verifies it rather than
	// trusting the builder.
	InconsistentOrientation
	// DegenerateFace marks a face with near-zero area.
	DegenerateFace
)

func (k Kind) String() string {
	switch k {
	case NonManifoldVertex:
		return "NonManifoldVertex"
	case NonManifoldEdge:
		return "NonManifoldEdge"
	case InconsistentOrientation:
		return "InconsistentOrientation"
	case DegenerateFace:
		return "DegenerateFace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Finding is one invariant violation, tagged with the offending element ID.
type Finding struct {
	Kind    Kind
	Element int
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: element %d", f.Kind, f.Element)
}

// Options configures the geometric part of the check.
type Options struct {
	// DegenerateEps is the face area below which a DegenerateFace finding
	// is reported.
	DegenerateEps float64
}

// Check validates the mesh and reports all violations found. Positions may
// be nil, in which case the geometric checks are skipped. A healthy mesh
// yields an empty result.
func Check(m *halfedge.Mesh, pos *geometry.Positions, optFns ...func(o *Options)) []Finding {
	opts := Options{DegenerateEps: geometry.DefaultDegenerateEps}
	for _, fn := range optFns {
		fn(&opts)
	}

	var findings []Finding

	// Twin involution and orientation per edge. FromPolygons guarantees
	// both, so these sweeps are an independent re-verification; they can
	// only fire for a store populated outside the polygon-soup builder.
	for _, e := range m.Edges() {
		h, err := m.EdgeHalfEdge(e)
		if err != nil {
			findings = append(findings, Finding{Kind: NonManifoldEdge, Element: e})
			continue
		}
		t, _ := m.Twin(h)
		tt, err := m.Twin(t)
		if err != nil || tt != h {
			findings = append(findings, Finding{Kind: NonManifoldEdge, Element: e})
			continue
		}
		ho, _ := m.Origin(h)
		hh, _ := m.Head(h)
		to, _ := m.Origin(t)
		th, _ := m.Head(t)
		if ho != th || hh != to {
			findings = append(findings, Finding{Kind: InconsistentOrientation, Element: e})
		}
	}

	// Fan closure per vertex.
	for _, v := range m.Vertices() {
		if err := m.ForEachVertexHalfEdge(v, func(int) bool { return true }); err != nil {
			findings = append(findings, Finding{Kind: NonManifoldVertex, Element: v})
		}
	}

	if pos != nil {
		for _, f := range m.Faces() {
			area, err := geometry.FaceArea(m, pos, f)
			if err != nil || area < opts.DegenerateEps {
				findings = append(findings, Finding{Kind: DegenerateFace, Element: f})
			}
		}
	}

	return findings
}

package meshgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/meshgo/dec"
	"github.com/hupe1980/meshgo/halfedge"
)

var (
	// ErrNonManifoldVertex is returned when a vertex fan does not close
	// into a single cycle.
	ErrNonManifoldVertex = errors.New("non-manifold vertex")

	// ErrNonManifoldEdge is returned when more than two half-edges share an
	// undirected endpoint pair.
	ErrNonManifoldEdge = errors.New("non-manifold edge")

	// ErrInconsistentOrientation is returned when adjacent faces disagree
	// on winding.
	ErrInconsistentOrientation = errors.New("inconsistent orientation")

	// ErrBoundaryEdgeFlip is returned when flipping an edge that is not
	// interior.
	ErrBoundaryEdgeFlip = errors.New("boundary edge flip")

	// ErrLinkConditionViolated is returned when an edge collapse would
	// break manifoldness. The mesh is left unchanged.
	ErrLinkConditionViolated = errors.New("link condition violated")

	// ErrDegenerateMesh is returned when too many faces have near-zero
	// area for operator assembly.
	ErrDegenerateMesh = errors.New("degenerate mesh")

	// ErrIndexOutOfRange is returned for element IDs that are out of range
	// or refer to removed elements.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// translateError unifies subpackage errors behind the facade sentinels. The
// original typed error (with element IDs) stays reachable via errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var nmv *halfedge.ErrNonManifoldVertex
	if errors.As(err, &nmv) {
		return fmt.Errorf("%w: %w", ErrNonManifoldVertex, err)
	}
	var nme *halfedge.ErrNonManifoldEdge
	if errors.As(err, &nme) {
		return fmt.Errorf("%w: %w", ErrNonManifoldEdge, err)
	}
	var io *halfedge.ErrInconsistentOrientation
	if errors.As(err, &io) {
		return fmt.Errorf("%w: %w", ErrInconsistentOrientation, err)
	}
	var bef *halfedge.ErrBoundaryEdgeFlip
	if errors.As(err, &bef) {
		return fmt.Errorf("%w: %w", ErrBoundaryEdgeFlip, err)
	}
	var lcv *halfedge.ErrLinkConditionViolated
	if errors.As(err, &lcv) {
		return fmt.Errorf("%w: %w", ErrLinkConditionViolated, err)
	}
	var oor *halfedge.ErrIndexOutOfRange
	if errors.As(err, &oor) {
		return fmt.Errorf("%w: %w", ErrIndexOutOfRange, err)
	}
	var dm *dec.ErrDegenerateMesh
	if errors.As(err, &dm) {
		return fmt.Errorf("%w: %w", ErrDegenerateMesh, err)
	}

	return err
}

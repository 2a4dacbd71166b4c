// Package meshgo provides discrete differential geometry on triangulated
// surfaces: a half-edge topology kernel with local mutation primitives
// (flip, split, collapse) and the discrete exterior calculus operators
// (exterior derivatives, Hodge stars, cotangent Laplacian) built on top of
// it.
//
// # Quick Start
//
//	surf, _ := meshgo.New(polygons, positions)
//	lap, _ := surf.Laplacian()
//	for _, t := range lap.Triplets() {
//	    // feed (t.Row, t.Col, t.Val) to a sparse solver
//	}
//
// Mutations are transactional:
//
//	if err := surf.FlipEdge(e); err != nil {
//	    // the mesh is exactly as it was before the call
//	}
//
// # Scope
//
// The library is a synchronous, in-memory core. File I/O, solvers and
// rendering are consumers at the boundary: construction takes an index soup
// plus a position array from an external loader, and operators leave as
// row/column/value triplets for an external sparse backend.
//
// # Concurrency
//
// Mutations require exclusive access; read-only evaluation and operator
// assembly are safe to run concurrently against a surface that is not being
// mutated.
package meshgo

// Package halfedge implements the half-edge topology store for triangulated
// (and polygon-general) surfaces.
//
// Connectivity is kept in arenas of records addressed by stable integer IDs.
// Removed elements are recycled through free lists, so surviving IDs are never
// invalidated by a mutation. Half-edges along an open boundary are real
// records whose face is the BoundaryFace sentinel and whose next pointers
// chain along the boundary loop, which keeps vertex circulation total.
//
// The store is combinatorial only: positions live elsewhere (see the geometry
// package) so operators can run against deformed or virtual positions without
// touching connectivity.
package halfedge

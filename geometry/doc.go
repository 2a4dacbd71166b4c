// Package geometry owns vertex positions and evaluates per-element geometric
// quantities (areas, angles, normals, cotangent weights, dual areas) from
// topology plus positions.
//
// All quantities are pure functions computed on demand; nothing is cached
// here. Positions are a separate store from connectivity so operators can run
// against deformed or virtual positions without touching topology.
package geometry

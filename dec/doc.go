// Package dec assembles the discrete exterior calculus operators of a
// triangulated surface: the exterior derivative incidence matrices d0 and d1,
// the diagonal Hodge stars star0/star1/star2, and the cotangent
// Laplace-Beltrami operator d0'*star1*d0.
//
// Operators are produced in row/column/value triplet form with declared
// dimensions so an external sparse solver can consume them directly; dense
// gonum views are available for small meshes and tests. Rows and columns are
// dense positions in the mesh's live ID sequences at assembly time.
package dec

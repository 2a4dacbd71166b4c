package dec

import "gonum.org/v1/gonum/mat"

// Triplet is one sparse matrix entry in row/column/value form.
type Triplet struct {
	Row, Col int
	Val      float64
}

// COO is a sparse matrix in coordinate (triplet) form with declared
// dimensions, the exchange format handed to external solvers.
type COO struct {
	rows, cols int
	entries    []Triplet
}

// NewCOO creates an empty coordinate matrix with the given shape.
func NewCOO(rows, cols int) *COO {
	return &COO{rows: rows, cols: cols}
}

// Dims returns the declared (rows, cols) shape.
func (c *COO) Dims() (int, int) { return c.rows, c.cols }

// Append adds an entry. Duplicate (row, col) coordinates are allowed and
// sum implicitly.
func (c *COO) Append(row, col int, val float64) {
	c.entries = append(c.entries, Triplet{Row: row, Col: col, Val: val})
}

// Triplets returns the entries. The slice aliases internal storage.
func (c *COO) Triplets() []Triplet { return c.entries }

// NNZ returns the number of stored entries, duplicates included.
func (c *COO) NNZ() int { return len(c.entries) }

// ToDense accumulates the triplets into a dense gonum matrix. Meant for
// small meshes and tests; production solvers should consume Triplets.
func (c *COO) ToDense() *mat.Dense {
	d := mat.NewDense(c.rows, c.cols, nil)
	for _, t := range c.entries {
		d.Set(t.Row, t.Col, d.At(t.Row, t.Col)+t.Val)
	}
	return d
}

// Diagonal is a diagonal operator (a Hodge star) stored as its diagonal.
type Diagonal struct {
	diag []float64
}

// NewDiagonal wraps a diagonal. The slice is not copied.
func NewDiagonal(diag []float64) *Diagonal {
	return &Diagonal{diag: diag}
}

// Dims returns the square shape.
func (d *Diagonal) Dims() (int, int) { return len(d.diag), len(d.diag) }

// At returns the i-th diagonal entry.
func (d *Diagonal) At(i int) float64 { return d.diag[i] }

// Diag returns the diagonal. The slice aliases internal storage.
func (d *Diagonal) Diag() []float64 { return d.diag }

// Triplets returns the non-zero diagonal entries in triplet form.
func (d *Diagonal) Triplets() []Triplet {
	out := make([]Triplet, 0, len(d.diag))
	for i, v := range d.diag {
		if v != 0 {
			out = append(out, Triplet{Row: i, Col: i, Val: v})
		}
	}
	return out
}

// ToDense returns the diagonal as a dense gonum matrix.
func (d *Diagonal) ToDense() *mat.DiagDense {
	return mat.NewDiagDense(len(d.diag), d.diag)
}

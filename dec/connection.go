package dec

import (
	"slices"
	"sort"
)

// ConnectionMatrix is a CRS-format index structure: a sparse matrix without
// values, storing only which (row, col) entries are present. It answers
// adjacency queries (which edges touch this vertex, which faces touch this
// edge) without allocating per query.
type ConnectionMatrix struct {
	rowPtr []int
	cols   []int
	colMax int
}

// FromPairs builds a connection matrix from (row, col) index pairs. The
// pairs are sorted; duplicates are kept.
func FromPairs(pairs [][2]int) *ConnectionMatrix {
	sorted := make([][2]int, len(pairs))
	copy(sorted, pairs)
	slices.SortFunc(sorted, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})

	cm := &ConnectionMatrix{
		rowPtr: []int{0},
		cols:   make([]int, 0, len(sorted)),
		colMax: -1,
	}
	row := 0
	for n, pr := range sorted {
		for pr[0] != row {
			cm.rowPtr = append(cm.rowPtr, n)
			row++
		}
		if pr[1] > cm.colMax {
			cm.colMax = pr[1]
		}
		cm.cols = append(cm.cols, pr[1])
	}
	cm.rowPtr = append(cm.rowPtr, len(cm.cols))
	return cm
}

// Dims returns the (rows, cols) shape.
func (cm *ConnectionMatrix) Dims() (int, int) {
	return len(cm.rowPtr) - 1, cm.colMax + 1
}

// Connected returns the column indices present in the given row. The slice
// aliases internal storage; callers must not modify it.
func (cm *ConnectionMatrix) Connected(row int) []int {
	return cm.cols[cm.rowPtr[row]:cm.rowPtr[row+1]]
}

// Pairs returns all (row, col) pairs in sorted order.
func (cm *ConnectionMatrix) Pairs() [][2]int {
	out := make([][2]int, 0, len(cm.cols))
	for row := 0; row < len(cm.rowPtr)-1; row++ {
		for _, col := range cm.Connected(row) {
			out = append(out, [2]int{row, col})
		}
	}
	return out
}

// Transpose returns the transposed connection matrix.
func (cm *ConnectionMatrix) Transpose() *ConnectionMatrix {
	pairs := cm.Pairs()
	for i := range pairs {
		pairs[i][0], pairs[i][1] = pairs[i][1], pairs[i][0]
	}
	return FromPairs(pairs)
}

// Map returns the sorted, deduplicated one-hop image of the given rows: all
// columns connected to any of them.
func (cm *ConnectionMatrix) Map(rows []int) []int {
	var out []int
	for _, row := range rows {
		out = append(out, cm.Connected(row)...)
	}
	sort.Ints(out)
	return slices.Compact(out)
}

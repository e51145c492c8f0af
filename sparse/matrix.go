// Package sparse provides a compressed-column sparse matrix type and the
// handful of structural operations the symbolic-analysis pipeline needs:
// validation, transpose, and submatrix extraction under a permutation.
//
// Description:
//
//	A Matrix stores a sparse n_row x n_col matrix in compressed-column
//	form: column j's row indices live in Ai[Ap[j]:Ap[j+1]], sorted and
//	duplicate-free. This is the classic CSC layout used throughout sparse
//	direct solvers (UMFPACK, CHOLMOD, KLU) because column slicing is O(1)
//	and the symbolic phase only ever walks columns.
//
// Use cases:
//   - Input to the symbolic analysis pipeline (usymlu.Analyze and friends).
//   - Representing the pruned submatrix S produced by singleton peeling.
//
// Time complexity:
//   - Validate: O(nz).
//   - Transpose: O(n_row + n_col + nz).
//
// Memory:
//   - O(n_col + nz).
package sparse

import (
	"fmt"
	"sort"
)

// Matrix is a sparse matrix in compressed-column form.
//
// Ap has length NCol+1 and is strictly non-decreasing with Ap[0] == 0.
// Ai has length Ap[NCol] and holds, for each column, the row indices of
// its nonzeros in strictly increasing order.
type Matrix struct {
	NRow, NCol int
	Ap         []int
	Ai         []int
	// Ax holds numeric values parallel to Ai. It is optional: a nil Ax
	// means the matrix carries no numeric values and every structural
	// nonzero is treated as numerically nonzero.
	Ax []float64
}

// Nnz returns the number of structural nonzeros.
func (m *Matrix) Nnz() int {
	if len(m.Ap) == 0 {
		return 0
	}
	return m.Ap[len(m.Ap)-1]
}

// Col returns the row indices of column j.
func (m *Matrix) Col(j int) []int {
	return m.Ai[m.Ap[j]:m.Ap[j+1]]
}

// ColValues returns the numeric values of column j, or nil if the matrix
// carries no values.
func (m *Matrix) ColValues(j int) []float64 {
	if m.Ax == nil {
		return nil
	}
	return m.Ax[m.Ap[j]:m.Ap[j+1]]
}

// Degree returns the number of structural nonzeros in column j.
func (m *Matrix) Degree(j int) int {
	return m.Ap[j+1] - m.Ap[j]
}

// Validate checks the structural contract a Matrix must satisfy before the
// pipeline can trust it: non-decreasing column pointers starting at zero,
// row indices in range and sorted without duplicates within each column.
func (m *Matrix) Validate() error {
	if m.NRow <= 0 || m.NCol <= 0 {
		return fmt.Errorf("sparse: n_nonpositive: n_row=%d n_col=%d", m.NRow, m.NCol)
	}
	if len(m.Ap) != m.NCol+1 {
		return fmt.Errorf("sparse: invalid_matrix: len(Ap)=%d want %d", len(m.Ap), m.NCol+1)
	}
	if m.Ap[0] != 0 {
		return fmt.Errorf("sparse: invalid_matrix: Ap[0]=%d want 0", m.Ap[0])
	}
	for j := 0; j < m.NCol; j++ {
		if m.Ap[j+1] < m.Ap[j] {
			return fmt.Errorf("sparse: invalid_matrix: Ap not non-decreasing at column %d", j)
		}
	}
	nz := m.Ap[m.NCol]
	if nz < 0 || len(m.Ai) != nz {
		return fmt.Errorf("sparse: invalid_matrix: nz=%d len(Ai)=%d", nz, len(m.Ai))
	}
	if m.Ax != nil && len(m.Ax) != nz {
		return fmt.Errorf("sparse: invalid_matrix: len(Ax)=%d want %d", len(m.Ax), nz)
	}
	for j := 0; j < m.NCol; j++ {
		col := m.Col(j)
		for k, r := range col {
			if r < 0 || r >= m.NRow {
				return fmt.Errorf("sparse: invalid_matrix: row index %d out of range in column %d", r, j)
			}
			if k > 0 && col[k-1] >= r {
				return fmt.Errorf("sparse: invalid_matrix: column %d not sorted/duplicate-free", j)
			}
		}
	}
	return nil
}

// IsSorted reports whether every column's row indices are strictly
// increasing, i.e. whether the matrix needs a transpose-sort before use.
func (m *Matrix) IsSorted() bool {
	for j := 0; j < m.NCol; j++ {
		col := m.Col(j)
		for k := 1; k < len(col); k++ {
			if col[k-1] >= col[k] {
				return false
			}
		}
	}
	return true
}

// Transpose returns the transpose of m (an NCol x NRow matrix), with rows
// sorted within each column. Values, if present, are carried along.
//
// Algorithm (standard two-pass counting transpose):
//  1. Count the number of entries in each row of m; these become the
//     column counts of the transpose.
//  2. Prefix-sum the counts into the transpose's column pointers.
//  3. Scatter entries column-by-column of m into the transpose, using a
//     cursor array that advances as each row is filled.
func (m *Matrix) Transpose() *Matrix {
	rowCount := make([]int, m.NRow)
	for _, r := range m.Ai {
		rowCount[r]++
	}
	tp := make([]int, m.NRow+1)
	for r := 0; r < m.NRow; r++ {
		tp[r+1] = tp[r] + rowCount[r]
	}
	nz := tp[m.NRow]
	ti := make([]int, nz)
	var tx []float64
	if m.Ax != nil {
		tx = make([]float64, nz)
	}
	cursor := make([]int, m.NRow)
	copy(cursor, tp[:m.NRow])
	for j := 0; j < m.NCol; j++ {
		col := m.Col(j)
		vals := m.ColValues(j)
		for k, r := range col {
			pos := cursor[r]
			cursor[r]++
			ti[pos] = j
			if tx != nil {
				tx[pos] = vals[k]
			}
		}
	}
	return &Matrix{NRow: m.NCol, NCol: m.NRow, Ap: tp, Ai: ti, Ax: tx}
}

// SortColumns returns a matrix with each column's row indices (and
// parallel values) sorted into increasing order: m itself when it is
// already sorted, otherwise a new matrix built by transposing twice. The
// analysis pipeline does not call it; Validate rejects unsorted columns.
func (m *Matrix) SortColumns() *Matrix {
	if m.IsSorted() {
		return m
	}
	return m.Transpose().Transpose()
}

// Submatrix extracts A[rows, cols] in compressed-column form: the result's
// column j corresponds to cols[j], and its row indices are positions within
// rows (via invRow), not original row numbers. invRow[original row] must
// give the new row index, or a negative number if that row is excluded.
//
// Submatrix is used to build the pruned matrix S = A[Cperm1[n1:...],
// Rperm1[n1:...]] described in spec Data Model §3.
func (m *Matrix) Submatrix(cols []int, invRow []int) *Matrix {
	ap := make([]int, len(cols)+1)
	var ai []int
	for j, origCol := range cols {
		for _, r := range m.Col(origCol) {
			nr := invRow[r]
			if nr >= 0 {
				ai = append(ai, nr)
			}
		}
		ap[j+1] = len(ai)
	}
	return &Matrix{NRow: countNonNegative(invRow), NCol: len(cols), Ap: ap, Ai: ai}
}

// countNonNegative counts how many non-negative slots invRow has, i.e. the
// number of rows retained by the submatrix.
func countNonNegative(invRow []int) int {
	n := 0
	for _, v := range invRow {
		if v >= 0 {
			n++
		}
	}
	return n
}

// SymmetryScore reports the fraction of off-diagonal pattern entries of
// A+Aᵀ that are matched in both directions: an entry (i,j) counts as
// matched when (j,i) is also structurally present. This stands in for
// calling AMD_aat on the pruned matrix (spec §4.3's symmetry test) since
// this module has no AMD dependency of its own to delegate that count to.
// Returns 0 for a non-square matrix (no symmetry to speak of), and 1 for
// a square matrix with no off-diagonal entries at all, empty included
// (vacuously symmetric: there are no mismatched entries to find).
func (m *Matrix) SymmetryScore() float64 {
	if m.NRow != m.NCol {
		return 0
	}
	present := make(map[[2]int]bool)
	total := 0
	for j := 0; j < m.NCol; j++ {
		for _, i := range m.Col(j) {
			if i == j {
				continue
			}
			present[[2]int{i, j}] = true
			total++
		}
	}
	if total == 0 {
		return 1
	}
	matched := 0
	for e := range present {
		if present[[2]int{e[1], e[0]}] {
			matched++
		}
	}
	return float64(matched) / float64(total)
}

// DiagonalNonzeroCount counts structurally-present diagonal entries
// A[j,j] for j in [0, min(NRow,NCol)), excluding entries that are
// numerically zero when Ax is present (spec §4.3 nzdiag).
func (m *Matrix) DiagonalNonzeroCount() int {
	n := m.NRow
	if m.NCol < n {
		n = m.NCol
	}
	count := 0
	for j := 0; j < n; j++ {
		col := m.Col(j)
		i := sort.SearchInts(col, j)
		if i < len(col) && col[i] == j {
			if m.Ax == nil {
				count++
				continue
			}
			if m.ColValues(j)[i] != 0 {
				count++
			}
		}
	}
	return count
}

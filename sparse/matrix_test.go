package sparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func threeByThree() *Matrix {
	// | 1 0 2 |
	// | 0 3 0 |
	// | 4 0 5 |
	return &Matrix{
		NRow: 3, NCol: 3,
		Ap: []int{0, 2, 3, 5},
		Ai: []int{0, 2, 1, 0, 2},
		Ax: []float64{1, 4, 3, 2, 5},
	}
}

func TestValidate(t *testing.T) {
	if err := threeByThree().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateCatchesUnsorted(t *testing.T) {
	m := threeByThree()
	m.Ai = []int{2, 0, 1, 0, 2}
	if err := m.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for unsorted column")
	}
}

func TestTranspose(t *testing.T) {
	m := threeByThree()
	tp := m.Transpose()
	want := &Matrix{
		NRow: 3, NCol: 3,
		Ap: []int{0, 2, 3, 5},
		Ai: []int{0, 2, 1, 0, 2},
		Ax: []float64{1, 2, 3, 4, 5},
	}
	if diff := cmp.Diff(want, tp); diff != "" {
		t.Errorf("Transpose() mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmatrix(t *testing.T) {
	m := threeByThree()
	invRow := []int{0, -1, 1} // drop row 1
	sub := m.Submatrix([]int{0, 2}, invRow)
	if sub.NRow != 2 || sub.NCol != 2 {
		t.Fatalf("Submatrix dims = %dx%d, want 2x2", sub.NRow, sub.NCol)
	}
	if got, want := sub.Nnz(), 4; got != want {
		t.Fatalf("Submatrix nnz = %d, want %d", got, want)
	}
}

func TestDiagonalNonzeroCount(t *testing.T) {
	m := threeByThree()
	if got, want := m.DiagonalNonzeroCount(), 3; got != want {
		t.Errorf("DiagonalNonzeroCount() = %d, want %d", got, want)
	}
}

func TestSymmetryScore(t *testing.T) {
	if got, want := threeByThree().SymmetryScore(), 1.0; got != want {
		t.Errorf("SymmetryScore() = %v, want %v (pattern-symmetric)", got, want)
	}

	asym := &Matrix{
		NRow: 2, NCol: 2,
		Ap: []int{0, 2, 2},
		Ai: []int{0, 1},
	}
	if got, want := asym.SymmetryScore(), 0.0; got != want {
		t.Errorf("SymmetryScore() = %v, want %v (entry (1,0) has no mirror at (0,1))", got, want)
	}

	empty := &Matrix{NRow: 0, NCol: 0, Ap: []int{0}}
	if got, want := empty.SymmetryScore(), 1.0; got != want {
		t.Errorf("SymmetryScore() = %v, want %v (vacuously symmetric)", got, want)
	}

	rect := &Matrix{NRow: 2, NCol: 3, Ap: []int{0, 1, 2, 3}, Ai: []int{0, 1, 0}}
	if got, want := rect.SymmetryScore(), 0.0; got != want {
		t.Errorf("SymmetryScore() = %v, want %v (non-square)", got, want)
	}
}

func TestIsSortedSortColumns(t *testing.T) {
	m := threeByThree()
	m.Ai = []int{2, 0, 1, 2, 0}
	m.Ax = []float64{4, 1, 3, 5, 2}
	if m.IsSorted() {
		t.Fatal("IsSorted() = true, want false")
	}
	sorted := m.SortColumns()
	if !sorted.IsSorted() {
		t.Fatal("SortColumns() result not sorted")
	}
}

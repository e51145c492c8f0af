package singleton

import (
	"sort"
	"testing"

	"github.com/sparselu/usymlu/sparse"
)

// arrow builds a 4x4 matrix whose columns 1,2,3 are singletons (one
// nonzero each, on the diagonal) and whose column 0 touches every row —
// the shape spec §9's Open Question on singleton-peel order discusses.
func arrow() *sparse.Matrix {
	return &sparse.Matrix{
		NRow: 4, NCol: 4,
		Ap: []int{0, 4, 5, 6, 7},
		Ai: []int{0, 1, 2, 3, 1, 2, 3},
	}
}

func pivotPairs(r *Result) map[[2]int]bool {
	pairs := make(map[[2]int]bool, r.N1)
	for k := 0; k < r.N1; k++ {
		pairs[[2]int{r.Rperm1[k], r.Cperm1[k]}] = true
	}
	return pairs
}

func TestPeelArrowEliminatesAllFour(t *testing.T) {
	res := Peel(arrow(), true)
	if res.N1 != 4 {
		t.Fatalf("N1 = %d, want 4", res.N1)
	}
	// The exact n1r/n1c split is implementation-defined (spec §9); only
	// the set of pivot pairs is a stable property.
	want := map[[2]int]bool{{0, 0}: true, {1, 1}: true, {2, 2}: true, {3, 3}: true}
	if got := pivotPairs(res); len(got) != len(want) {
		t.Fatalf("pivot pairs = %v, want %v", got, want)
	} else {
		for p := range want {
			if !got[p] {
				t.Errorf("missing pivot pair %v", p)
			}
		}
	}
}

func TestPeelDisabledFindsEmptyRowsCols(t *testing.T) {
	m := &sparse.Matrix{
		NRow: 3, NCol: 3,
		Ap: []int{0, 1, 1, 2},
		Ai: []int{0, 2},
	}
	res := Peel(m, false)
	if res.N1 != 0 {
		t.Fatalf("N1 = %d, want 0 when doSingletons is false", res.N1)
	}
	if res.NemptyCol != 1 {
		t.Fatalf("NemptyCol = %d, want 1", res.NemptyCol)
	}
	if res.Cperm1[len(res.Cperm1)-1] != 1 {
		t.Fatalf("empty column 1 not at tail of Cperm1: %v", res.Cperm1)
	}
}

func TestPeelNoSingletonsLeavesInterior(t *testing.T) {
	// A 3x3 cycle: every row/col has degree 2, so nothing peels.
	m := &sparse.Matrix{
		NRow: 3, NCol: 3,
		Ap: []int{0, 2, 4, 6},
		Ai: []int{0, 1, 1, 2, 0, 2},
	}
	res := Peel(m, true)
	if res.N1 != 0 {
		t.Fatalf("N1 = %d, want 0 for a matrix with no degree-1 row/col", res.N1)
	}
	gotCols := append([]int{}, res.Cperm1...)
	sort.Ints(gotCols)
	for k, v := range gotCols {
		if v != k {
			t.Fatalf("Cperm1 not a permutation of [0,3): %v", res.Cperm1)
		}
	}
}

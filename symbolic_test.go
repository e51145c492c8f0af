package usymlu

import (
	"testing"

	orderpkg "github.com/sparselu/usymlu/order"
	"github.com/sparselu/usymlu/sparse"
)

// arrowMatrix mirrors singleton's arrow test fixture: columns 1,2,3 are
// singletons, column 0 touches every row.
func arrowMatrix() *sparse.Matrix {
	return &sparse.Matrix{
		NRow: 4, NCol: 4,
		Ap: []int{0, 4, 5, 6, 7},
		Ai: []int{0, 1, 2, 3, 1, 2, 3},
	}
}

func TestAnalyzeRejectsNilMatrix(t *testing.T) {
	_, err := Analyze(nil, DefaultControl())
	if err == nil {
		t.Fatal("Analyze(nil) = nil error, want ErrArgumentMissing")
	}
	var ae *AnalysisError
	if !asAnalysisError(err, &ae) {
		t.Fatalf("Analyze(nil) error type = %T, want *AnalysisError", err)
	}
	if ae.Status != StatusArgumentMissing {
		t.Errorf("Status = %v, want %v", ae.Status, StatusArgumentMissing)
	}
}

func TestAnalyzeArrowProducesValidSymbolic(t *testing.T) {
	sym, err := Analyze(arrowMatrix(), DefaultControl())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if sym.N1 != 4 {
		t.Fatalf("N1 = %d, want 4 (arrow matrix peels completely)", sym.N1)
	}
	if sym.Info.Status != StatusOK {
		t.Errorf("Info.Status = %v, want StatusOK", sym.Info.Status)
	}
	if !isPermutationOf(sym.Cperm, 4) {
		t.Errorf("Cperm = %v is not a permutation of [0,4)", sym.Cperm)
	}
	if !isPermutationOf(sym.Rperm, 4) {
		t.Errorf("Rperm = %v is not a permutation of [0,4)", sym.Rperm)
	}
	if len(sym.Trace) == 0 {
		t.Error("Trace is empty, want one record per stage")
	}
}

func TestAnalyzeWithOrderingUsesCallback(t *testing.T) {
	// A 3x3 cycle: no singletons, so S4 must call the ordering callback
	// on the full interior.
	m := &sparse.Matrix{
		NRow: 3, NCol: 3,
		Ap: []int{0, 2, 4, 6},
		Ai: []int{0, 1, 1, 2, 0, 2},
	}
	called := false
	fn := func(nrow, ncol int, sym bool, ap, ai []int) ([]int, orderpkg.Stats, bool) {
		called = true
		return []int{2, 1, 0}, orderpkg.Stats{}, true
	}
	sym, err := AnalyzeWithOrdering(m, DefaultControl(), fn)
	if err != nil {
		t.Fatalf("AnalyzeWithOrdering() error = %v", err)
	}
	if !called {
		t.Error("ordering callback was never invoked")
	}
	if !isPermutationOf(sym.Cperm, 3) {
		t.Errorf("Cperm = %v is not a permutation of [0,3)", sym.Cperm)
	}
}

func TestAnalyzeForParURejectsBadQuser(t *testing.T) {
	m := &sparse.Matrix{
		NRow: 3, NCol: 3,
		Ap: []int{0, 2, 4, 6},
		Ai: []int{0, 1, 1, 2, 0, 2},
	}
	_, _, err := AnalyzeForParU(m, DefaultControl(), []int{0, 0, 1})
	if err == nil {
		t.Fatal("AnalyzeForParU with a non-permutation quser = nil error")
	}
}

func isPermutationOf(p []int, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func asAnalysisError(err error, target **AnalysisError) bool {
	ae, ok := err.(*AnalysisError)
	if ok {
		*target = ae
	}
	return ok
}

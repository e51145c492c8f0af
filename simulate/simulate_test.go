package simulate

import (
	"testing"

	"github.com/sparselu/usymlu/fronttree"
)

func TestRunSingleFront(t *testing.T) {
	tree := &fronttree.Tree{
		Nfr:     1,
		NPivCol: []int{2},
		NRows:   []int{3},
		NCols:   []int{3},
		Parent:  []int{fronttree.NoParent()},
	}
	r := Run(tree, 0)
	if r.LnzBound != 2*(3-2) {
		t.Errorf("LnzBound = %d, want %d", r.LnzBound, 2*(3-2))
	}
	// head starts at 1 (marker), grows by npiv*schurRows+npiv*schurCols=4
	// to 5; tail holds the front's own nrows*ncols=9; peak is their sum.
	if r.PeakMemory != 14 {
		t.Errorf("PeakMemory = %v, want 14", r.PeakMemory)
	}
}

func TestRunChainReleasesChildStorage(t *testing.T) {
	// Two leaves feeding one parent: both leaves' tail storage (4 each)
	// is held until the second leaf completes, then released the moment
	// the parent's own tail storage (16) is pushed. Peak memory tracks
	// head+tail together, so it peaks when the parent (the largest
	// front, with the largest accumulated head) is processed, not at
	// either leaf.
	tree := &fronttree.Tree{
		Nfr:     3,
		NPivCol: []int{1, 1, 2},
		NRows:   []int{2, 2, 4},
		NCols:   []int{2, 2, 4},
		Parent:  []int{2, 2, fronttree.NoParent()},
	}
	r := Run(tree, 0)
	if r.PeakMemory != 29 {
		t.Errorf("PeakMemory = %v, want 29", r.PeakMemory)
	}
}

func TestRunCountsSingletons(t *testing.T) {
	r := Run(&fronttree.Tree{}, 5)
	if r.LnzBound != 5 || r.UnzBound != 5 {
		t.Errorf("singleton counts not carried into bounds: %+v", r)
	}
}

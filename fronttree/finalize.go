package fronttree

import "github.com/sparselu/usymlu/sparse"

// Chains is the chain decomposition of a Tree (spec §4.6): a chain is a
// maximal run of fronts [start,end) where Parent[f]==f+1 throughout,
// collapsed at numeric-factorization time into one panel of Householder-
// or LU-style updates sharing a frontal workspace.
type Chains struct {
	Start   []int // length nchains+1, Start[c]..Start[c+1) is chain c's front range
	MaxRows []int // per chain, rounded up to the next odd value (spec §9)
	MaxCols []int
}

// Finalize completes S6 given the pruned, permuted matrix sq that Analyze
// was run on: it assigns rows to fronts (claiming, for each front's pivot
// columns in order, every not-yet-claimed row touched by that column),
// fills FirstRow as the running prefix-sum tally of rows claimed so far,
// and builds the chain decomposition with its Chain_maxrows/Chain_maxcols.
//
// It also returns rowOrder, the rows of sq in the order they were
// claimed (spec §4.6: "rows are then written into Rperm_init[first_row[i]++]
// in the order they were encountered, so rows claimed by the same front
// occupy a contiguous range"). Callers compose rowOrder with whatever
// row-space sq's indices are local to, to build the final Rperm_init.
func Finalize(t *Tree, sq *sparse.Matrix) (*Chains, []int) {
	claimed := make([]bool, sq.NRow)
	rowOrder := make([]int, 0, sq.NRow)
	rowsPerFront := make([]int, t.Nfr)
	for f := 0; f < t.Nfr; f++ {
		n := 0
		for _, j := range t.PivotCols[f] {
			for _, r := range sq.Col(j) {
				if !claimed[r] {
					claimed[r] = true
					rowOrder = append(rowOrder, r)
					n++
				}
			}
		}
		rowsPerFront[f] = n
	}
	running := 0
	for f := 0; f < t.Nfr; f++ {
		t.FirstRow[f] = running
		running += rowsPerFront[f]
	}

	return buildChains(t), rowOrder
}

// buildChains groups fronts into maximal chains and computes, per chain,
// the odd-rounded maximum row/column count across its member fronts (spec
// §9: "Chain_maxrows is rounded up to the next odd integer" — load-bearing
// for the numeric kernel's frontal-matrix row-swap bookkeeping, which
// needs an odd leading dimension to avoid cache-bank conflicts).
func buildChains(t *Tree) *Chains {
	c := &Chains{Start: []int{0}}
	f := 0
	for f < t.Nfr {
		maxRows, maxCols := t.NRows[f], t.NCols[f]
		for f+1 < t.Nfr && t.Parent[f] == f+1 {
			f++
			if t.NRows[f] > maxRows {
				maxRows = t.NRows[f]
			}
			if t.NCols[f] > maxCols {
				maxCols = t.NCols[f]
			}
		}
		f++
		c.Start = append(c.Start, f)
		c.MaxRows = append(c.MaxRows, roundUpOdd(maxRows))
		c.MaxCols = append(c.MaxCols, maxCols)
	}
	return c
}

func roundUpOdd(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}

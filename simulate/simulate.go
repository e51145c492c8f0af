// Package simulate implements spec §4.7 (S7): a resource simulation that
// walks the frontal tree to bound factor nonzero counts, flop counts, and
// peak workspace, without performing any numeric factorization.
//
// The arena models the tail of the simulated memory discipline (elements
// held at the high end, released once their parent has assembled every
// child — the internal/arena LIFO discipline used elsewhere for S2-S6's
// Ci workspace models this equally well). The head (finalized L/U
// storage, monotonically non-decreasing) is tracked as a running scalar
// alongside it, so num_mem_init_usage / num_mem_size_est / num_mem_usage_est
// are three genuinely distinct checkpoints (spec §4.7 steps 5/7, invariant
// P7) rather than the same number under three names.
//
// What this simplifies away, relative to spec §4.7's exact discipline:
// the Rpi/Rpx pre-allocation (step 1), the initial elements (step 3) and
// the per-row/column tuple lists (step 4) are not charged at all; beyond
// the head and tail markers, nothing is sized from Cdeg/Esize. The per-front frontal-workspace charge and
// the flop formula (steps 6-7) are implemented exactly as spec'd.
package simulate

import (
	"github.com/sparselu/usymlu/fronttree"
	"github.com/sparselu/usymlu/internal/arena"
)

// Per-entry cost constants for the flop formula of spec §4.7 step 6: one
// division per pivot-column entry, one multiply-subtract (counted as two
// flops) per Schur-complement update entry.
const (
	divFlops     = 1.0
	multSubFlops = 2.0
)

// Result is the resource-simulation output spec §6's Info fields draw from.
type Result struct {
	LnzBound, UnzBound int
	Flops              float64

	// VariableInitEstimate, SizeEstimate and PeakMemory are num_mem_init_usage,
	// num_mem_size_est and num_mem_usage_est respectively (spec §4.7 step 7):
	// the checkpoint right after the markers and the singleton factors,
	// the head's final size once every front has been folded in, and the
	// running max of head+tail across the whole simulation. Invariant P7
	// requires PeakMemory >= SizeEstimate >= VariableInitEstimate >= 2.
	VariableInitEstimate float64
	SizeEstimate         float64
	PeakMemory           float64
}

// Run simulates S7 over a finalized tree. n1 is the number of singleton
// pivots peeled in S2 (spec §4.7: their L/U entries are counted
// separately from the frontal tree's, since singletons never form a
// front of their own).
func Run(t *fronttree.Tree, n1 int) *Result {
	// Step 1: pre-allocation markers only (head starts at 1, tail at 2);
	// the Rpi/Rpx index+pointer arrays are not charged (see package doc).
	head := 1
	tailInit := 2

	r := &Result{LnzBound: n1, UnzBound: n1}

	// Step 2: singleton L/U factors. Each singleton pivot contributes
	// exactly one L entry (itself) and one U entry, charged to the head.
	head += 2 * n1

	numMemInitUsage := float64(head + tailInit)
	r.VariableInitEstimate = numMemInitUsage

	if t.Nfr == 0 {
		r.SizeEstimate = numMemInitUsage
		r.PeakMemory = numMemInitUsage
		return r
	}

	childrenRemaining := make([]int, t.Nfr)
	childStorage := make([]int, t.Nfr)
	for f := 0; f < t.Nfr; f++ {
		if p := t.Parent[f]; p != fronttree.NoParent() {
			childrenRemaining[p]++
		}
	}

	totalUpperBound := 0
	for f := 0; f < t.Nfr; f++ {
		totalUpperBound += t.NRows[f] * t.NCols[f]
	}
	a := arena.New(totalUpperBound)

	peak := numMemInitUsage
	for f := 0; f < t.Nfr; f++ {
		npiv, nrows, ncols := t.NPivCol[f], t.NRows[f], t.NCols[f]
		schurRows, schurCols := nrows-npiv, ncols-npiv

		// L below the pivot block, U to the right of it; a standard dense
		// frontal-matrix nonzero count once assembled.
		r.LnzBound += npiv * schurRows
		r.UnzBound += npiv * schurCols
		head += npiv*schurRows + npiv*schurCols

		// Exact elimination-flop formula of spec §4.7 step 6: f=npiv
		// pivots against an (nrows x ncols) working front with schur
		// rows r and schur cols c.
		fl, rr, cc := float64(npiv), float64(schurRows), float64(schurCols)
		r.Flops += divFlops*(fl*rr+fl*(fl-1)/2) +
			multSubFlops*(fl*rr*cc+(rr+cc)*fl*(fl-1)/2+fl*(fl-1)*(2*fl-1)/6)

		// Frontal-workspace charge at the tail: nb*nb + dr*nb + nb*dc +
		// dr*dc == nrows*ncols when nb=npiv, dr=schurRows, dc=schurCols.
		size := nrows * ncols
		a.Take(size)
		childStorage[f] += size

		if combined := head + a.Used(); float64(combined) > peak {
			peak = float64(combined)
		}

		p := t.Parent[f]
		if p != fronttree.NoParent() {
			childStorage[p] += childStorage[f]
			childrenRemaining[p]--
			if childrenRemaining[p] == 0 {
				a.Release(childStorage[p])
				childStorage[p] = 0
			}
		}
	}

	sizeEst := float64(head)
	if sizeEst < numMemInitUsage {
		sizeEst = numMemInitUsage
	}
	if peak < sizeEst {
		peak = sizeEst
	}
	r.SizeEstimate = sizeEst
	r.PeakMemory = peak
	return r
}

// Package usymlu implements the symbolic-analysis phase of a sparse
// unsymmetric LU factorization: singleton peeling, strategy selection,
// fill-reducing ordering, column-etree symbolic factorization, frontal
// tree finalization, and resource simulation, without touching any
// numeric value.
package usymlu

import (
	"fmt"

	"github.com/sparselu/usymlu/fronttree"
	"github.com/sparselu/usymlu/internal/order"
	orderpkg "github.com/sparselu/usymlu/order"
	"github.com/sparselu/usymlu/simulate"
	"github.com/sparselu/usymlu/singleton"
	"github.com/sparselu/usymlu/sparse"
)

// Symbolic is the artifact a successful Analyze call produces: everything
// the numeric factorization phase needs to run without re-deriving any of
// it from A's pattern again (spec §3's Symbolic object).
type Symbolic struct {
	NRow, NCol int
	Cperm      []int // final column permutation, length NCol
	Rperm      []int // final row permutation, length NRow
	N1         int   // number of singleton pivots peeled

	// Cdeg[k], Rdeg[k] are the degrees of the pruned matrix S, permuted
	// into final order: Cdeg[k] = Cdeg_original[Cperm[k]] (spec §4.6
	// "degree permutation"), similarly for Rdeg.
	Cdeg, Rdeg []int

	Tree   *fronttree.Tree
	Chains *fronttree.Chains

	Esize       []int
	DiagonalMap []int

	Info  Info
	Trace []Trace
}

// Workspace is the call-scoped working-memory handle paru_symbolic
// additionally hands back to its caller (spec §6), distinct from the
// Symbolic artifact returned to the caller on success. The reference
// design reuses this handle's arena across repeated calls; since Go's
// allocator already amortizes short-lived slice allocation, this
// implementation's Workspace is not retained or reused across calls —
// it only reports the sizing S7 already computed, for API parity with
// the three-entry-point contract spec §6 describes.
type Workspace struct {
	PeakMemory float64
	Chains     *fronttree.Chains
}

// Analyze runs the full symbolic pipeline with a built-in ordering
// (order.AMDLike, guarded by order.MetisGuard when ctl.Ordering asks for
// metis). Use AnalyzeWithOrdering to supply a real external collaborator.
func Analyze(a *sparse.Matrix, ctl Control) (*Symbolic, error) {
	return analyze(a, ctl, nil, nil)
}

// AnalyzeWithOrdering runs the pipeline using a caller-supplied ordering
// function for the non-singleton interior (spec §6's ordering callback
// contract) instead of the built-in AMDLike stand-in.
func AnalyzeWithOrdering(a *sparse.Matrix, ctl Control, fn orderpkg.Func) (*Symbolic, error) {
	return analyze(a, ctl, fn, nil)
}

// AnalyzeForParU runs the pipeline with a caller-supplied user permutation
// Quser for the non-singleton interior columns (spec §3/§9's resolution of
// the Quser-vs-callback design question: these are two distinct entry
// points rather than one function silently picking between modes based on
// which optional argument is non-nil), additionally returning the
// workspace object spec §6's paru_symbolic hands back alongside Symbolic.
func AnalyzeForParU(a *sparse.Matrix, ctl Control, quser []int) (*Symbolic, *Workspace, error) {
	sym, err := analyze(a, ctl, nil, quser)
	if err != nil {
		return nil, nil, err
	}
	return sym, &Workspace{PeakMemory: sym.Info.PeakMemory, Chains: sym.Chains}, nil
}

func analyze(a *sparse.Matrix, ctl Control, fn orderpkg.Func, quser []int) (*Symbolic, error) {
	var trace []Trace
	record := func(stage, note string) { trace = append(trace, Trace{Stage: stage, Note: note}) }

	// S1: validate and configure.
	if a == nil {
		return nil, newAnalysisError(StatusArgumentMissing, ErrArgumentMissing)
	}
	if a.NRow <= 0 || a.NCol <= 0 {
		return nil, newAnalysisError(StatusNNonpositive, ErrNNonpositive)
	}
	if err := a.Validate(); err != nil {
		return nil, newAnalysisError(StatusInvalidMatrix, fmt.Errorf("%w: %v", ErrInvalidMatrix, err))
	}
	ctl.BlockSize = normalizeBlockSize(ctl.BlockSize)
	record("S1", fmt.Sprintf("validated n_row=%d n_col=%d nz=%d", a.NRow, a.NCol, a.Nnz()))

	// S2: singleton peeling.
	sres := singleton.Peel(a, ctl.DoSingletons)
	record("S2", fmt.Sprintf("n1=%d (n1r=%d n1c=%d) nempty_row=%d nempty_col=%d",
		sres.N1, sres.N1r, sres.N1c, sres.NemptyRow, sres.NemptyCol))

	nRowInterior := a.NRow - sres.N1 - sres.NemptyRow
	nColInterior := a.NCol - sres.N1 - sres.NemptyCol

	// Build the pruned interior matrix S = A[Rperm1[n1:], Cperm1[n1:]]
	// restricted further to non-empty rows/cols (spec §3 Data Model),
	// ahead of S3 since S3's symmetry/nzdiag tests run on S, not A.
	invRow := make([]int, a.NRow)
	for i := range invRow {
		invRow[i] = -1
	}
	interiorRows := sres.Rperm1[sres.N1 : sres.N1+nRowInterior]
	for k, r := range interiorRows {
		invRow[r] = k
	}
	interiorCols := sres.Cperm1[sres.N1 : sres.N1+nColInterior]
	s := a.Submatrix(interiorCols, invRow)

	// S3: strategy selection.
	strategy := ctl.Strategy
	nzdiag := s.DiagonalNonzeroCount()
	symmetryScore := s.SymmetryScore()

	nn := a.NRow
	nempty := sres.NemptyRow
	if a.NCol > nn {
		nn = a.NCol
		nempty = sres.NemptyCol
	}
	n2 := nn - sres.N1 - nempty

	if a.NRow != a.NCol {
		// Rectangular input forces unsymmetric strategy (spec §4.1),
		// regardless of what the caller asked for.
		strategy = StrategyUnsymmetric
	} else if strategy == StrategyAuto {
		if symmetryScore >= ctl.SymThreshold && float64(nzdiag) >= ctl.NnzdiagThreshold*float64(n2) {
			strategy = StrategySymmetric
		} else {
			strategy = StrategyUnsymmetric
		}
	}
	record("S3", fmt.Sprintf("strategy=%s symmetry=%.3f nzdiag=%d n2=%d", strategy, symmetryScore, nzdiag, n2))

	// Symmetric implies fixQ=true, prefer_diagonal=true; unsymmetric
	// implies both false; fixQ_override is applied last (spec §4.3).
	preferDiagonal := strategy == StrategySymmetric
	fixQ := strategy == StrategySymmetric
	switch ctl.FixQOverride {
	case FixQPreferFixed:
		fixQ = true
	case FixQPreferRefined:
		fixQ = false
	}

	rowThresh := denseRowThreshold(ctl.DenseRowThresholdFactor, nColInterior)
	colThresh := denseColThreshold(ctl.DenseColThresholdFactor, nRowInterior)
	ndenseRow, ndenseCol := 0, 0
	for _, i := range interiorRows {
		if float64(sres.Rdeg[i]) > rowThresh {
			ndenseRow++
		}
	}
	for _, j := range interiorCols {
		if float64(sres.Cdeg[j]) > colThresh {
			ndenseCol++
		}
	}

	// S4: fill-reducing ordering over the interior.
	orderFn := fn
	if orderFn == nil {
		orderFn = orderpkg.AMDLike
		if ctl.Ordering == OrderingMetisGuard || ctl.Ordering == OrderingMetis {
			orderFn = orderpkg.MetisGuard(s, sres.MaxRdeg, rowThresh, nil)
		}
	}

	var qinv []int
	orderingUsed := ctl.Ordering
	if quser != nil {
		if len(quser) != nColInterior || !order.IsPermutation(quser) {
			return nil, newAnalysisError(StatusInvalidPermutation, ErrInvalidPermutation)
		}
		qinv = quser
		orderingUsed = OrderingUser
	} else if nColInterior > 0 {
		sym := strategy == StrategySymmetric && s.NRow == s.NCol
		perm, _, ok := orderFn(s.NRow, s.NCol, sym, s.Ap, s.Ai)
		if !ok {
			return nil, newAnalysisError(StatusOrderingFailed, ErrOrderingFailed)
		}
		qinv = perm
	} else {
		qinv = []int{}
	}
	record("S4", fmt.Sprintf("ordering=%s ncol_interior=%d", orderingUsed, nColInterior))

	cperm, err := orderpkg.CombineOrdering(sres.Cperm1, sres.N1, sres.NemptyCol, qinv)
	if err != nil {
		return nil, newAnalysisError(StatusInternalError, fmt.Errorf("%w: %v", ErrInternal, err))
	}

	// origInterior[k] is the original column at interior position k
	// before S5's post-order composition; it is both the mapping
	// fronttree.Analyze's column positions are local to (sq's columns)
	// and the snapshot combine_ordering produced (spec §4.5 step 4's
	// "Cperm_init[n1+k]" on the right-hand side).
	origInterior := make([]int, nColInterior)
	copy(origInterior, cperm[sres.N1:sres.N1+nColInterior])

	// Re-derive S with its columns in final ordered position for S5.
	sq := a.Submatrix(origInterior, invRow)

	// S5/S6: symbolic factorization, front-tree finalization.
	tree, cperm2, err := fronttree.Analyze(sq)
	if err != nil {
		return nil, newAnalysisError(StatusInternalError, fmt.Errorf("%w: %v", ErrInternal, err))
	}

	// Spec §4.5 step 4: if fixQ is false, compose the post-order
	// permutation Cperm2 into Cperm_init's interior.
	if !fixQ && nColInterior > 0 {
		newInterior := make([]int, nColInterior)
		for k := 0; k < nColInterior; k++ {
			newInterior[k] = origInterior[cperm2[k]]
		}
		copy(cperm[sres.N1:sres.N1+nColInterior], newInterior)
	}

	chains, rowOrder := fronttree.Finalize(tree, sq)
	tree.TranslatePivotCols(origInterior)
	record("S5", fmt.Sprintf("nfr=%d", tree.Nfr))
	record("S6", fmt.Sprintf("nchains=%d", len(chains.MaxRows)))

	// Rperm_init: singleton rows, then rows claimed by fronts in the
	// order Finalize encountered them (spec §4.6), then empty rows.
	rperm := make([]int, a.NRow)
	copy(rperm[:sres.N1], sres.Rperm1[:sres.N1])
	for k, localRow := range rowOrder {
		rperm[sres.N1+k] = interiorRows[localRow]
	}
	copy(rperm[sres.N1+nRowInterior:], sres.Rperm1[sres.N1+nRowInterior:])

	// Degree permutation (spec §4.6): rewrite Cdeg/Rdeg into final order.
	cdeg := make([]int, a.NCol)
	for k, col := range cperm {
		cdeg[k] = sres.Cdeg[col]
	}
	rdeg := make([]int, a.NRow)
	for k, row := range rperm {
		rdeg[k] = sres.Rdeg[row]
	}

	// Element sizes (dense rows), spec §4.6: one entry per non-singleton,
	// non-empty column, gated on max_rdeg exceeding the dense threshold.
	var esize []int
	if float64(sres.MaxRdeg) > rowThresh {
		denseRow := make(map[int]bool)
		for _, i := range interiorRows {
			if float64(sres.Rdeg[i]) > rowThresh {
				denseRow[i] = true
			}
		}
		esize = make([]int, nColInterior)
		for k := 0; k < nColInterior; k++ {
			origCol := cperm[sres.N1+k]
			cnt := 0
			for _, r := range a.Col(origCol) {
				if denseRow[r] {
					cnt++
				}
			}
			esize[k] = sres.Cdeg[origCol] - cnt
		}
	}

	// Diagonal map (spec §4.6): Diagonal_map[newcol] = InvRperm_init[Cperm_init[newcol]].
	var diagMap []int
	if preferDiagonal && a.NRow == a.NCol {
		invRperm := make([]int, a.NRow)
		for k, r := range rperm {
			invRperm[r] = k
		}
		diagMap = make([]int, a.NCol)
		for newcol := 0; newcol < a.NCol; newcol++ {
			diagMap[newcol] = invRperm[cperm[newcol]]
		}
	}

	// S7: resource simulation.
	sim := simulate.Run(tree, sres.N1)
	record("S7", fmt.Sprintf("lnz_bound=%d unz_bound=%d peak_memory=%.0f", sim.LnzBound, sim.UnzBound, sim.PeakMemory))

	maxRows, maxCols := 0, 0
	for f := 0; f < tree.Nfr; f++ {
		if tree.NRows[f] > maxRows {
			maxRows = tree.NRows[f]
		}
		if tree.NCols[f] > maxCols {
			maxCols = tree.NCols[f]
		}
	}

	info := Info{
		Status:               StatusOK,
		NRow:                 a.NRow,
		NCol:                 a.NCol,
		Nz:                   a.Nnz(),
		RowSingletons:        sres.N1r,
		ColSingletons:        sres.N1c,
		NemptyRow:            sres.NemptyRow,
		NemptyCol:            sres.NemptyCol,
		N2:                   n2,
		Symmetry:             symmetryScore,
		Nzdiag:               nzdiag,
		NdenseRow:            ndenseRow,
		NdenseCol:            ndenseCol,
		StrategyUsed:         strategy,
		OrderingUsed:         orderingUsed,
		QFixed:               fixQ,
		DiagPreferred:        preferDiagonal,
		PeakMemory:           sim.PeakMemory,
		SizeEstimate:         sim.SizeEstimate,
		VariableInitEstimate: sim.VariableInitEstimate,
		LnzBound:             sim.LnzBound,
		UnzBound:             sim.UnzBound,
		Flops:                sim.Flops,
		MaxNRows:             maxRows,
		MaxNCols:             maxCols,
	}

	return &Symbolic{
		NRow: a.NRow, NCol: a.NCol,
		Cperm: cperm, Rperm: rperm, N1: sres.N1,
		Cdeg: cdeg, Rdeg: rdeg,
		Tree: tree, Chains: chains,
		Esize: esize, DiagonalMap: diagMap,
		Info: info, Trace: trace,
	}, nil
}

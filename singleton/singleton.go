// Package singleton implements spec §2 stage S2: repeatedly pairing off a
// row and a column that have become degree-one in the residual matrix
// (a "singleton pivot"), until no more such pairs exist, then reporting
// the pattern-symmetry of what's left.
//
// The peeling loop is modeled the way gonum's graph/topo.TarjanSCC tracks
// visitation with a dedup set (there: onStack *intsets.Sparse; here:
// queued column/row marks) layered over a dense, randomly-indexed state
// array (there: node indices; here: row/column degrees) — the same shape
// of problem, a worklist algorithm over a shrinking graph.
package singleton

import (
	"golang.org/x/tools/container/intsets"

	"github.com/sparselu/usymlu/sparse"
)

// Result is the singleton-peel state spec §3 describes.
type Result struct {
	N1, N1r, N1c         int
	Cperm1               []int
	Rperm1               []int
	InvRperm1            []int
	Cdeg                 []int
	Rdeg                 []int
	IsSym                bool
	NemptyRow, NemptyCol int
	MaxRdeg              int
}

// Peel runs S2 on A. If doSingletons is false, no pairs are peeled (N1==0)
// but empty rows/columns are still identified and moved to the end of
// their permutations, and Cdeg/Rdeg/MaxRdeg are still computed over the
// whole (unpeeled) matrix.
func Peel(a *sparse.Matrix, doSingletons bool) *Result {
	at := a.Transpose()

	nrow, ncol := a.NRow, a.NCol
	colDeg := make([]int, ncol)
	rowDeg := make([]int, nrow)
	for j := 0; j < ncol; j++ {
		colDeg[j] = a.Degree(j)
	}
	for i := 0; i < nrow; i++ {
		rowDeg[i] = at.Degree(i)
	}

	activeCol := make([]bool, ncol)
	activeRow := make([]bool, nrow)

	var (
		cperm, rperm         []int
		n1r, n1c             int
		emptyCols, emptyRows []int
	)

	for j := range activeCol {
		if colDeg[j] > 0 {
			activeCol[j] = true
		} else {
			emptyCols = append(emptyCols, j)
		}
	}
	for i := range activeRow {
		if rowDeg[i] > 0 {
			activeRow[i] = true
		} else {
			emptyRows = append(emptyRows, i)
		}
	}

	queuedCol := &intsets.Sparse{}
	queuedRow := &intsets.Sparse{}
	var colQueue, rowQueue []int

	pushCol := func(j int) {
		if !queuedCol.Has(j) {
			queuedCol.Insert(j)
			colQueue = append(colQueue, j)
		}
	}
	pushRow := func(i int) {
		if !queuedRow.Has(i) {
			queuedRow.Insert(i)
			rowQueue = append(rowQueue, i)
		}
	}

	retireCol := func(j int) {
		activeCol[j] = false
		emptyCols = append(emptyCols, j)
	}
	retireRow := func(i int) {
		activeRow[i] = false
		emptyRows = append(emptyRows, i)
	}

	// firstActiveRow scans column j of A for the single remaining active
	// row. Column j must have colDeg[j]==1 for this to find exactly one.
	firstActiveRow := func(j int) int {
		for _, r := range a.Col(j) {
			if activeRow[r] {
				return r
			}
		}
		return -1
	}
	firstActiveCol := func(i int) int {
		for _, c := range at.Col(i) {
			if activeCol[c] {
				return c
			}
		}
		return -1
	}

	// eliminate pairs off row r and column j together, the shared
	// mechanics of both a column-triggered and a row-triggered peel.
	eliminate := func(r, j int) {
		cperm = append(cperm, j)
		rperm = append(rperm, r)
		activeRow[r] = false
		activeCol[j] = false

		for _, c := range at.Col(r) {
			if c == j || !activeCol[c] {
				continue
			}
			colDeg[c]--
			switch colDeg[c] {
			case 0:
				retireCol(c)
			case 1:
				pushCol(c)
			}
		}
		for _, i := range a.Col(j) {
			if i == r || !activeRow[i] {
				continue
			}
			rowDeg[i]--
			switch rowDeg[i] {
			case 0:
				retireRow(i)
			case 1:
				pushRow(i)
			}
		}
	}

	if doSingletons {
		for j := 0; j < ncol; j++ {
			if activeCol[j] && colDeg[j] == 1 {
				pushCol(j)
			}
		}
		for i := 0; i < nrow; i++ {
			if activeRow[i] && rowDeg[i] == 1 {
				pushRow(i)
			}
		}
		for len(colQueue) > 0 || len(rowQueue) > 0 {
			for len(colQueue) > 0 {
				j := colQueue[0]
				colQueue = colQueue[1:]
				queuedCol.Remove(j)
				if !activeCol[j] || colDeg[j] != 1 {
					continue
				}
				r := firstActiveRow(j)
				eliminate(r, j)
				n1c++
			}
			if len(rowQueue) > 0 {
				i := rowQueue[0]
				rowQueue = rowQueue[1:]
				queuedRow.Remove(i)
				if !activeRow[i] || rowDeg[i] != 1 {
					continue
				}
				j := firstActiveCol(i)
				eliminate(i, j)
				n1r++
			}
		}
	}

	// Remaining active columns/rows (interior of the pruned matrix S),
	// kept in original order per spec §4.2.
	var interiorCols, interiorRows []int
	for j := 0; j < ncol; j++ {
		if activeCol[j] {
			interiorCols = append(interiorCols, j)
		}
	}
	for i := 0; i < nrow; i++ {
		if activeRow[i] {
			interiorRows = append(interiorRows, i)
		}
	}

	cperm = append(cperm, interiorCols...)
	cperm = append(cperm, emptyCols...)
	rperm = append(rperm, interiorRows...)
	rperm = append(rperm, emptyRows...)

	invRperm := make([]int, nrow)
	for k, r := range rperm {
		invRperm[r] = k
	}

	n1 := n1r + n1c
	isSym := nrow == ncol && len(emptyRows) == len(emptyCols)
	if isSym {
		for k := n1; k < nrow-len(emptyRows); k++ {
			if rperm[k] != cperm[k] {
				isSym = false
				break
			}
		}
	}

	maxRdeg := 0
	for _, i := range interiorRows {
		if rowDeg[i] > maxRdeg {
			maxRdeg = rowDeg[i]
		}
	}

	return &Result{
		N1: n1, N1r: n1r, N1c: n1c,
		Cperm1: cperm, Rperm1: rperm, InvRperm1: invRperm,
		Cdeg: colDeg, Rdeg: rowDeg,
		IsSym:     isSym,
		NemptyRow: len(emptyRows), NemptyCol: len(emptyCols),
		MaxRdeg: maxRdeg,
	}
}

// Package fronttree implements spec §4.5-4.6 (S5 symbolic factorization
// and S6 front-tree finalization): the column elimination tree of the
// permuted pruned matrix, its post-order, the frontal tree built from it,
// row-to-front assignment, chain decomposition, and leftmost-descendant
// labeling.
//
// The post-order walk is modeled directly on gonum's
// graph/topo.TarjanSCC: an explicit stack plus an intsets.Sparse "visited"
// mark instead of TarjanSCC's onStack set, because both are the same
// shape of problem — a depth-first walk over an index-addressed forest
// that must not revisit a node twice.
package fronttree

import (
	"fmt"
	"sort"

	"golang.org/x/tools/container/intsets"

	"github.com/sparselu/usymlu/sparse"
)

// noParent is the sentinel for a front with no parent (a tree root).
const noParent = -1

// NoParent is the exported form of the root sentinel, for callers outside
// this package that walk Tree.Parent (e.g. simulate.Run).
func NoParent() int { return noParent }

// Tree is the frontal-matrix forest spec §3 describes.
type Tree struct {
	Nfr          int
	NPivCol      []int
	NRows        []int
	NCols        []int
	Parent       []int   // noParent for roots
	PivotCols    [][]int // column indices each front owns, in elimination order
	FirstRow     []int   // filled by Finalize (S6); zero before
	LeftmostDesc []int
}

// TranslatePivotCols rewrites PivotCols in place from the column
// positions Analyze built them in (positions into the matrix Analyze was
// run on) to caller-space indices, via orig[position] = callerIndex.
// Callers run this once, after Finalize has used the Analyze-space
// positions to claim rows against that same matrix.
func (t *Tree) TranslatePivotCols(orig []int) {
	for f := range t.PivotCols {
		for i, pc := range t.PivotCols[f] {
			t.PivotCols[f][i] = orig[pc]
		}
	}
}

// columnEtreeATA computes the column elimination tree of AᵀA without
// forming AᵀA, the classic algorithm behind sparse QR's column etree
// (Davis, "Direct Methods for Sparse Linear Systems", §4.3; the same
// algorithm ships as cs_etree(..., ata=1) in CSparse). It is the
// grounding for spec §4.5 step 3's "column-etree analyze": for each
// column k, walk up the ancestor chain recorded for every row k touches,
// unioning visited nodes into k's component via path compression
// (ancestor[]) and fixing parent[] only the first time a chain's end is
// reached.
func columnEtreeATA(nrow, ncol int, ap, ai []int) []int {
	parent := make([]int, ncol)
	ancestor := make([]int, ncol)
	for k := range parent {
		parent[k] = noParent
		ancestor[k] = noParent
	}
	// lastCol[r] is the most recently scanned column with a nonzero in
	// row r, maintained as columns are scanned left to right.
	lastCol := make([]int, nrow)
	for r := range lastCol {
		lastCol[r] = noParent
	}
	for k := 0; k < ncol; k++ {
		for _, r := range ai[ap[k]:ap[k+1]] {
			i := lastCol[r]
			for i != noParent && i < k {
				inext := ancestor[i]
				ancestor[i] = k
				if inext == noParent {
					parent[i] = k
				}
				i = inext
			}
			lastCol[r] = k
		}
	}
	return parent
}

// postOrder walks the forest described by parent (length n, noParent for
// roots) and returns, for each final post-order position, the original
// node index (cperm2) plus parent indices re-expressed in post-order
// space (postParent[f] is always > f, or noParent for a root — the
// defining property of a post-order numbering of a forest).
func postOrder(parent []int) (cperm2 []int, postParent []int) {
	n := len(parent)
	children := make([][]int, n+1) // children[n] holds the roots
	for v, p := range parent {
		if p == noParent {
			children[n] = append(children[n], v)
		} else {
			children[p] = append(children[p], v)
		}
	}
	for v := range children {
		sort.Ints(children[v])
	}

	cperm2 = make([]int, 0, n)
	newIndex := make([]int, n)
	visited := &intsets.Sparse{}

	var stack []int
	push := func(v int) { stack = append(stack, v) }
	// visitOrder walks one root's subtree iteratively: push the root,
	// and on each pop either descend into the next unvisited child or,
	// once all children are done, emit the node (post-order finish).
	visitOrder := func(root int) {
		push(root)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			if !visited.Has(v) {
				visited.Insert(v)
			}
			descended := false
			for _, c := range children[v] {
				if !visited.Has(c) {
					push(c)
					descended = true
					break
				}
			}
			if descended {
				continue
			}
			stack = stack[:len(stack)-1]
			newIndex[v] = len(cperm2)
			cperm2 = append(cperm2, v)
		}
	}
	for _, root := range children[n] {
		if !visited.Has(root) {
			visitOrder(root)
		}
	}

	postParent = make([]int, n)
	for v, p := range parent {
		if p == noParent {
			postParent[newIndex[v]] = noParent
		} else {
			postParent[newIndex[v]] = newIndex[p]
		}
	}
	return cperm2, postParent
}

// structuralUnion computes, for each post-order node, the sorted-unique
// union of its own pattern (from src, indexed by the node's original
// column) with its children's unions (each child's union is reused as-is,
// without removing the child's own pivot index — a scope simplification
// documented in DESIGN.md: the real numeric kernel's Schur-complement
// accounting shrinks by exactly the eliminated pivot row/column at each
// step, which requires a 1:1 pivot-row assumption this package does not
// make for rectangular pruned matrices). The result is monotonically
// non-decreasing in size while walking from leaves to the root, which is
// what lets per-front row/column counts grow realistically up the tree.
func structuralUnion(n int, cperm2, postParent []int, src func(origCol int) []int) [][]int {
	children := make([][]int, n)
	for f, p := range postParent {
		if p != noParent {
			children[p] = append(children[p], f)
		}
	}
	union := make([][]int, n)
	for f := 0; f < n; f++ {
		seen := make(map[int]bool)
		for _, r := range src(cperm2[f]) {
			seen[r] = true
		}
		for _, c := range children[f] {
			for _, r := range union[c] {
				seen[r] = true
			}
		}
		out := make([]int, 0, len(seen))
		for r := range seen {
			out = append(out, r)
		}
		sort.Ints(out)
		union[f] = out
	}
	return union
}

// Analyze runs S5 on sq, the pruned matrix already reordered by the
// fill-reducing column permutation (spec §4.5's "pattern of S·Pcolumn").
// It returns the frontal tree and the post-order permutation Cperm2 of the
// non-singleton interior.
func Analyze(sq *sparse.Matrix) (tree *Tree, cperm2 []int, err error) {
	if sq.NCol == 0 {
		return &Tree{}, nil, nil
	}
	parentOrig := columnEtreeATA(sq.NRow, sq.NCol, sq.Ap, sq.Ai)
	cperm2, postParent := postOrder(parentOrig)
	n := sq.NCol
	if len(cperm2) != n {
		return nil, nil, fmt.Errorf("fronttree: internal_error: post-order visited %d of %d columns", len(cperm2), n)
	}

	rowUnion := structuralUnion(n, cperm2, postParent, sq.Col)
	bt := sq.Transpose()
	colUnion := structuralUnion(n, cperm2, postParent, func(origCol int) []int {
		// This union tracks which columns of sq touch each front's row
		// set: for every row r of column origCol, bt.Col(r) lists the
		// columns of sq with a nonzero in row r.
		var cols []int
		for _, r := range sq.Col(origCol) {
			cols = append(cols, bt.Col(r)...)
		}
		return cols
	})

	elemental := elementalFronts(n, postParent, rowUnion, colUnion)
	tree = amalgamate(elemental, cperm2)
	return tree, cperm2, nil
}

type elementalFront struct {
	parent       int
	nrows, ncols int
}

func elementalFronts(n int, postParent []int, rowUnion, colUnion [][]int) []elementalFront {
	out := make([]elementalFront, n)
	for f := 0; f < n; f++ {
		out[f] = elementalFront{
			parent: postParent[f],
			nrows:  len(rowUnion[f]),
			ncols:  len(colUnion[f]),
		}
	}
	return out
}

// amalgamate merges maximal runs of elemental fronts [start,end) where
// parent[i]==i+1 throughout the run and the column count grows by at
// most one per step, the standard "fundamental supernode" relaxed
// amalgamation test (Liu, "Elimination Structures", Section on
// fundamental supernodes): consecutive etree nodes belong to the same
// front when eliminating one changes the surviving structure by
// essentially just its own pivot.
func amalgamate(elem []elementalFront, cperm2 []int) *Tree {
	n := len(elem)
	groupOf := make([]int, n)
	var groups [][2]int // [start, end) in elemental index space
	i := 0
	for i < n {
		start := i
		for i+1 < n && elem[i].parent == i+1 && elem[i+1].ncols <= elem[i].ncols+1 {
			i++
		}
		end := i + 1
		groups = append(groups, [2]int{start, end})
		for k := start; k < end; k++ {
			groupOf[k] = len(groups) - 1
		}
		i++
	}

	nfr := len(groups)
	t := &Tree{
		Nfr:          nfr,
		NPivCol:      make([]int, nfr),
		NRows:        make([]int, nfr),
		NCols:        make([]int, nfr),
		Parent:       make([]int, nfr),
		PivotCols:    make([][]int, nfr),
		FirstRow:     make([]int, nfr),
		LeftmostDesc: make([]int, nfr),
	}
	for g, rng := range groups {
		start, end := rng[0], rng[1]
		t.NPivCol[g] = end - start
		t.NRows[g] = elem[end-1].nrows
		t.NCols[g] = elem[end-1].ncols
		cols := make([]int, end-start)
		copy(cols, cperm2[start:end])
		t.PivotCols[g] = cols
		p := elem[end-1].parent
		if p == noParent {
			t.Parent[g] = noParent
		} else {
			t.Parent[g] = groupOf[p]
		}
	}
	computeLeftmostDesc(t)
	return t
}

// computeLeftmostDesc fills LeftmostDesc per spec §4.6: walk upward from
// each front, writing f into the leftmost_desc slot of every ancestor
// whose slot is still undefined. parent[f] >= f+1 guarantees a single
// linear pass (in increasing f order) suffices.
func computeLeftmostDesc(t *Tree) {
	for f := range t.LeftmostDesc {
		t.LeftmostDesc[f] = -1
	}
	for f := 0; f < t.Nfr; f++ {
		if t.LeftmostDesc[f] == -1 {
			t.LeftmostDesc[f] = f
		}
		p := t.Parent[f]
		for p != noParent && t.LeftmostDesc[p] == -1 {
			t.LeftmostDesc[p] = t.LeftmostDesc[f]
			p = t.Parent[p]
		}
	}
}

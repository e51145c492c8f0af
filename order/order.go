// Package order implements spec §4.4 (S4): the uniform interface the core
// expects of an external fill-reducing ordering ("give me a permutation Q
// given a pattern"), a built-in approximate-minimum-degree implementation
// usable when no external AMD/COLAMD/METIS is wired in, the metis-guard
// policy, and combine_ordering's permutation composition.
package order

import (
	"fmt"
	"sort"

	intord "github.com/sparselu/usymlu/internal/order"
	"github.com/sparselu/usymlu/sparse"
)

// Stats are the optional Cholesky-style statistics an ordering routine may
// report back (spec §4.4, §6 ordering callback contract).
type Stats struct {
	CholMaxCol int
	CholLnz    int
	CholFlops  float64
}

// Func is the single capability spec §4.4 expects of an external ordering:
// given (nrow, ncol, sym, Ap, Ai) it returns a permutation of [0,ncol) plus
// optional statistics, or ok==false on failure. When sym is true and
// nrow==ncol, the permutation is for P(A+Aᵀ)Pᵀ; otherwise it orders AQ.
//
// Implementations must not retain Ap/Ai past return, matching the spec §6
// ordering callback contract.
type Func func(nrow, ncol int, sym bool, ap, ai []int) (perm []int, stats Stats, ok bool)

// AMDLike is a built-in approximate-minimum-degree ordering usable as the
// default "given" external collaborator when no real AMD/METIS routine is
// wired in. It implements the Func contract for both the symmetric
// (sym==true, nrow==ncol, orders P(A+Aᵀ)Pᵀ) and unsymmetric (orders a
// COLAMD-style column ordering over the column-intersection graph) cases.
//
// This is a deliberately simple greedy heuristic, not a faithful port of
// George & Liu's AMD or Davis/Gilbert/Larimore/Ng's COLAMD: the spec
// treats the real orderings as an external collaborator reached through
// this exact interface (spec §1 "external collaborators... called as
// black-box"), so the built-in only needs to be a plausible stand-in a
// caller can swap out for the real thing via the same Func signature.
func AMDLike(nrow, ncol int, sym bool, ap, ai []int) (perm []int, stats Stats, ok bool) {
	if sym {
		if nrow != ncol {
			return nil, Stats{}, false
		}
		return minDegreeOrder(symmetricGraph(ncol, ap, ai)), Stats{}, true
	}
	return minDegreeOrder(columnIntersectionGraph(nrow, ncol, ap, ai)), Stats{}, true
}

// adjacency is a simple per-vertex neighbor-set graph used by the built-in
// minimum-degree heuristic.
type adjacency [][]int

// symmetricGraph builds the pattern of A+Aᵀ (excluding the diagonal) for a
// square matrix given in compressed-column form, the graph AMD orders.
func symmetricGraph(n int, ap, ai []int) adjacency {
	seen := make([]map[int]bool, n)
	for i := range seen {
		seen[i] = make(map[int]bool)
	}
	for j := 0; j < n; j++ {
		for _, i := range ai[ap[j]:ap[j+1]] {
			if i == j {
				continue
			}
			seen[i][j] = true
			seen[j][i] = true
		}
	}
	return mapsToAdjacency(seen)
}

// columnIntersectionGraph builds the graph COLAMD orders: two columns are
// adjacent if they share a row. Built by transposing into row lists and
// connecting every pair of columns touching the same row; rows denser than
// a small cutoff are skipped to keep this built-in heuristic's cost down,
// mirroring why the real COLAMD has a "dense row" concept at all.
func columnIntersectionGraph(nrow, ncol int, ap, ai []int) adjacency {
	rows := make([][]int, nrow)
	for j := 0; j < ncol; j++ {
		for _, i := range ai[ap[j]:ap[j+1]] {
			rows[i] = append(rows[i], j)
		}
	}
	seen := make([]map[int]bool, ncol)
	for j := range seen {
		seen[j] = make(map[int]bool)
	}
	const denseRowCutoff = 64
	for _, cols := range rows {
		if len(cols) > denseRowCutoff {
			continue
		}
		for a := 0; a < len(cols); a++ {
			for b := a + 1; b < len(cols); b++ {
				seen[cols[a]][cols[b]] = true
				seen[cols[b]][cols[a]] = true
			}
		}
	}
	return mapsToAdjacency(seen)
}

func mapsToAdjacency(seen []map[int]bool) adjacency {
	g := make(adjacency, len(seen))
	for v, nbrs := range seen {
		for u := range nbrs {
			g[v] = append(g[v], u)
		}
		sort.Ints(g[v])
	}
	return g
}

// minDegreeOrder repeatedly picks the lowest-degree remaining vertex,
// appends it to the elimination order, and folds its neighbors into a
// clique (the classic minimum-degree fill-reducing heuristic AMD/COLAMD
// both refine). Ties broken by vertex index for determinism.
func minDegreeOrder(g adjacency) []int {
	n := len(g)
	live := make([]bool, n)
	for i := range live {
		live[i] = true
	}
	nbrSet := make([]map[int]bool, n)
	for v := range g {
		nbrSet[v] = make(map[int]bool, len(g[v]))
		for _, u := range g[v] {
			nbrSet[v][u] = true
		}
	}

	perm := make([]int, 0, n)
	for len(perm) < n {
		best, bestDeg := -1, -1
		for v := 0; v < n; v++ {
			if !live[v] {
				continue
			}
			d := len(nbrSet[v])
			if bestDeg < 0 || d < bestDeg {
				best, bestDeg = v, d
			}
		}
		perm = append(perm, best)
		live[best] = false
		nbrs := make([]int, 0, len(nbrSet[best]))
		for u := range nbrSet[best] {
			if live[u] {
				nbrs = append(nbrs, u)
			}
		}
		intord.Ints(nbrs)
		// Fold best's surviving neighbors into a clique, eliminating best.
		for _, u := range nbrs {
			delete(nbrSet[u], best)
			for _, w := range nbrs {
				if w != u {
					nbrSet[u][w] = true
				}
			}
		}
	}
	return perm
}

// MetisGuard implements the metis-guard policy of spec §4.4's mode table:
// an empty pruned matrix, or one with a dense row, falls back to colamd
// (METIS would pay to materialize A'A with a dense row); otherwise the
// caller-supplied metis ordering is used. metisFunc may be nil, in which
// case the built-in AMDLike also serves as the metis stand-in.
func MetisGuard(s *sparse.Matrix, maxRdeg int, denseRowThreshold float64, metisFunc Func) Func {
	if s.NCol == 0 || s.Nnz() == 0 {
		return AMDLike
	}
	if float64(maxRdeg) > denseRowThreshold {
		return AMDLike
	}
	if metisFunc == nil {
		return AMDLike
	}
	return metisFunc
}

// CombineOrdering builds the final Cperm_init (spec §4.4 combine_ordering):
// singleton columns first (in peel order), then the non-singleton interior
// reordered by qinv (the inverse permutation the fill-reducing ordering
// returned, length n_col-n1-nempty_col) shifted by +n1, then the empty
// columns unchanged at the tail.
func CombineOrdering(cperm1 []int, n1, nemptyCol int, qinv []int) ([]int, error) {
	ncol := len(cperm1)
	interior := ncol - n1 - nemptyCol
	if len(qinv) != interior {
		return nil, fmt.Errorf("order: combine_ordering: len(qinv)=%d want %d", len(qinv), interior)
	}
	out := make([]int, ncol)
	copy(out[:n1], cperm1[:n1])
	for k := 0; k < interior; k++ {
		out[n1+k] = cperm1[n1+qinv[k]]
	}
	copy(out[n1+interior:], cperm1[n1+interior:])
	if !intord.IsPermutation(out) {
		return nil, fmt.Errorf("order: combine_ordering: result is not a permutation")
	}
	return out, nil
}

// Package order provides small sort helpers shared by the singleton,
// ordering, and front-tree stages. Adapted from the sort helpers gonum's
// graph/internal/ordered package uses to keep traversal order deterministic.
package order

import "sort"

// ByDegree sorts idx (indices into degree) by degree, breaking ties by the
// index itself so that results are deterministic and reproducible across
// runs on the same input.
func ByDegree(idx []int, degree []int) {
	sort.Slice(idx, func(i, j int) bool {
		di, dj := degree[idx[i]], degree[idx[j]]
		if di != dj {
			return di < dj
		}
		return idx[i] < idx[j]
	})
}

// Ints sorts a slice of ints in place; a thin wrapper kept for symmetry
// with ByDegree so callers don't reach for sort.Ints directly when the
// intent is "stable, obvious column/row ordering".
func Ints(s []int) {
	sort.Ints(s)
}

// IsPermutation reports whether p is a permutation of [0, len(p)). Used as
// a debug-time invariant check after combine_ordering composes permutations
// (spec §4.4).
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

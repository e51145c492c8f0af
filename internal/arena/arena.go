// Package arena implements the LIFO workspace-slicing discipline spec §5
// requires: a single large integer array (Ci, length Clen) is carved into
// named, disjoint slices at call start, used across stages S2-S6, and
// retired in the reverse order they were carved so that peak memory
// matches the pre-computed Clen estimate.
//
// No example repo in this project's corpus models an arena allocator
// (gonum and the graph libraries in the pack both allocate ordinary Go
// slices and rely on the garbage collector); this package is new code
// written directly from spec §5's description, using only slice
// arithmetic over a single backing array.
package arena

import "fmt"

// Arena is a LIFO workspace carved out of one backing []int.
type Arena struct {
	buf  []int
	mark int // first free index
}

// New allocates a backing array of the given length.
func New(length int) *Arena {
	return &Arena{buf: make([]int, length)}
}

// Len returns the backing array's total length (the Clen of spec §5).
func (a *Arena) Len() int { return len(a.buf) }

// Used returns how much of the backing array is currently carved out.
func (a *Arena) Used() int { return a.mark }

// Take carves out the next n ints as a fresh slice, zero-initialized, and
// advances the high-water mark. It panics if the arena is exhausted: a
// correctly pre-sized arena (per the Clen formula in spec §5) must never
// run out, so exhaustion indicates an internal sizing bug, not bad input.
func (a *Arena) Take(n int) []int {
	if a.mark+n > len(a.buf) {
		panic(fmt.Sprintf("arena: exhausted: need %d more, have %d of %d used", n, a.mark, len(a.buf)))
	}
	s := a.buf[a.mark : a.mark+n : a.mark+n]
	for i := range s {
		s[i] = 0
	}
	a.mark += n
	return s
}

// Release retires the most recently carved n ints, making that space
// available for reuse. Callers must release in exactly the reverse order
// they took slices, matching the LIFO discipline the numeric kernel relies
// on to keep peak memory at the pre-computed estimate.
func (a *Arena) Release(n int) {
	if n > a.mark {
		panic(fmt.Sprintf("arena: release underflow: releasing %d, only %d used", n, a.mark))
	}
	a.mark -= n
}

// Package frontmat provides a small dense row-major matrix with an LU
// factorization, used only as an illustrative numeric-kernel stub for
// tests and diagnostics that want to see a frontal matrix actually
// factorized end to end. The symbolic pipeline itself never calls into
// this package — factorizing values is out of its scope — but the
// frontal tree it produces describes exactly the dense blocks this type
// is shaped to hold.
//
// Grounded on gonum's mat64.LU (Factorize/Pivot/Det/LFrom/UFrom), adapted
// to plain row-major Go slices with partial-pivoting Gaussian elimination
// instead of a BLAS/LAPACK Getrf call: this module has no numeric-linear-
// algebra dependency of its own to delegate to, so the classic textbook
// algorithm mat64.LU's own doc comment describes ("Based on the
// LUDecomposition class from Jama 1.0.3") is written out directly.
package frontmat

import (
	"errors"
	"math"
)

// ErrSingular is returned by Factorize when, at some elimination step, every
// pivot candidate in the current column is exactly zero.
var ErrSingular = errors.New("frontmat: singular matrix")

// Dense is an n x n matrix stored row-major.
type Dense struct {
	n    int
	data []float64
}

// NewDense copies data (row-major, length n*n) into a new Dense.
func NewDense(n int, data []float64) *Dense {
	d := &Dense{n: n, data: make([]float64, n*n)}
	copy(d.data, data)
	return d
}

func (d *Dense) at(i, j int) float64     { return d.data[i*d.n+j] }
func (d *Dense) set(i, j int, v float64) { d.data[i*d.n+j] = v }

// LU is an in-place LU factorization of a Dense matrix with partial
// pivoting: PA = LU, stored compactly the way mat64.LU stores it (L below
// the diagonal, U on and above it, diagonal of L implicitly 1).
type LU struct {
	lu    *Dense
	pivot []int // pivot[i] = row swapped with row i at step i
	sign  float64
}

// Factorize computes the LU factorization of the square matrix a.
func Factorize(a *Dense) (*LU, error) {
	n := a.n
	lu := &Dense{n: n, data: append([]float64(nil), a.data...)}
	pivot := make([]int, n)
	sign := 1.0

	for k := 0; k < n; k++ {
		piv, best := k, math.Abs(lu.at(k, k))
		for i := k + 1; i < n; i++ {
			if v := math.Abs(lu.at(i, k)); v > best {
				piv, best = i, v
			}
		}
		pivot[k] = piv
		if best == 0 {
			return nil, ErrSingular
		}
		if piv != k {
			for j := 0; j < n; j++ {
				lu.data[k*n+j], lu.data[piv*n+j] = lu.data[piv*n+j], lu.data[k*n+j]
			}
			sign = -sign
		}
		for i := k + 1; i < n; i++ {
			factor := lu.at(i, k) / lu.at(k, k)
			lu.set(i, k, factor)
			for j := k + 1; j < n; j++ {
				lu.set(i, j, lu.at(i, j)-factor*lu.at(k, j))
			}
		}
	}
	return &LU{lu: lu, pivot: pivot, sign: sign}, nil
}

// Det returns the determinant of the factorized matrix.
func (lu *LU) Det() float64 {
	det := lu.sign
	for i := 0; i < lu.lu.n; i++ {
		det *= lu.lu.at(i, i)
	}
	return det
}

// Pivot returns, for each row i of the original matrix, the final row it
// ended up in after all pivoting steps — the same "inverse of the row
// swaps" construction as mat64.LU.Pivot.
func (lu *LU) Pivot() []int {
	n := lu.lu.n
	swaps := make([]int, n)
	for i := range swaps {
		swaps[i] = i
	}
	for i := n - 1; i >= 0; i-- {
		v := lu.pivot[i]
		swaps[i], swaps[v] = swaps[v], swaps[i]
	}
	return swaps
}

// L returns the unit-lower-triangular factor.
func (lu *LU) L() *Dense {
	n := lu.lu.n
	out := &Dense{n: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		out.set(i, i, 1)
		for j := 0; j < i; j++ {
			out.set(i, j, lu.lu.at(i, j))
		}
	}
	return out
}

// U returns the upper-triangular factor.
func (lu *LU) U() *Dense {
	n := lu.lu.n
	out := &Dense{n: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.set(i, j, lu.lu.at(i, j))
		}
	}
	return out
}

// At returns the element at row i, column j.
func (d *Dense) At(i, j int) float64 { return d.at(i, j) }

// N returns the matrix dimension.
func (d *Dense) N() int { return d.n }

package frontmat

import "testing"

func TestFactorizeReconstructsWithPivoting(t *testing.T) {
	// A matrix needing a row swap at step 0 (top-left entry is zero).
	a := NewDense(3, []float64{
		0, 2, 1,
		1, 1, 4,
		2, 0, 1,
	})
	lu, err := Factorize(a)
	if err != nil {
		t.Fatalf("Factorize() error = %v", err)
	}
	l, u := lu.L(), lu.U()
	swaps := lu.Pivot()

	// swaps[r] is the final position of original row r; invert it so that
	// orig[i] is the original row that ends up at position i.
	n := a.N()
	orig := make([]int, n)
	for r, pos := range swaps {
		orig[pos] = r
	}

	// Reconstruct P*A from L*U and compare against a with rows in orig order.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += l.At(i, k) * u.At(k, j)
			}
			want := a.At(orig[i], j)
			if diff := sum - want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("(LU)[%d][%d] = %v, want %v (P*A)", i, j, sum, want)
			}
		}
	}
}

func TestFactorizeSingular(t *testing.T) {
	a := NewDense(2, []float64{1, 1, 1, 1})
	if _, err := Factorize(a); err != ErrSingular {
		t.Errorf("Factorize() error = %v, want ErrSingular", err)
	}
}

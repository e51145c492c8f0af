package order

import "testing"

func TestByDegreeBreaksTiesByIndex(t *testing.T) {
	degree := []int{5, 2, 2, 9}
	idx := []int{0, 1, 2, 3}
	ByDegree(idx, degree)
	want := []int{1, 2, 0, 3}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("ByDegree() = %v, want %v", idx, want)
		}
	}
}

func TestIsPermutation(t *testing.T) {
	cases := []struct {
		p    []int
		want bool
	}{
		{[]int{0, 1, 2}, true},
		{[]int{2, 0, 1}, true},
		{[]int{0, 0, 2}, false},
		{[]int{0, 1, 3}, false},
		{nil, true},
	}
	for _, c := range cases {
		if got := IsPermutation(c.p); got != c.want {
			t.Errorf("IsPermutation(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

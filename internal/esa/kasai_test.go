package esa

import "testing"

func TestKasaiLCPBanana(t *testing.T) {
	// Same fixture as the teacher's TestComputeLCP (lcs.go), adapted to
	// operate on bytes and to carry the ESA convention LCP[0] == -1
	// instead of the teacher's 0.
	s := []byte("banana$")
	sa := []int{6, 5, 3, 1, 0, 4, 2}
	got := kasaiLCP(s, sa)
	want := []int{-1, 0, 1, 3, 0, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LCP[%d] = %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

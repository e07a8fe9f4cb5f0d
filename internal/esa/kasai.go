package esa

// kasaiLCP computes the LCP array for s and its suffix array sa using
// Kasai's linear-time algorithm, adapted from the teacher's computeLCP
// (lcs.go) to operate on the raw subject bytes rather than a Go string and
// to return the ESA convention LCP[0] = -1 (no predecessor).
//
// The returned slice has the same length as sa; LCP[i] is the length of the
// common prefix of suffixes sa[i-1] and sa[i]. LCP[0] is the sentinel -1.
func kasaiLCP(s []byte, sa []int) []int {
	n := len(sa)
	lcp := make([]int, n)
	if n == 0 {
		return lcp
	}
	lcp[0] = -1

	rank := make([]int, n)
	for i, pos := range sa {
		rank[pos] = i
	}

	h := 0
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			continue
		}
		j := sa[rank[i]-1]
		for i+h < len(s) && j+h < len(s) && s[i+h] == s[j+h] {
			h++
		}
		lcp[rank[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}

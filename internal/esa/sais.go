package esa

// domainAlphabetSize is the K passed for the top-level (non-recursive)
// sais call: esa.go's encode maps every subject byte to one of 7 ranks
// plus the synthetic terminator. Recursive calls over LMS names use
// whatever (generally larger) alphabet the reduction produces, so they
// fall back to a heap-allocated bucket count; only the outermost call
// benefits from knowing the bucket count up front.
const domainAlphabetSize = 8

// sais constructs the suffix array of s over an alphabet of size K using the
// SA-IS algorithm (Nong, Zhang & Chen). s must end in a value that occurs
// nowhere else in s and compares less than every other value in s; that
// final position anchors the induced-sort recursion.
func sais(s []int, K int) []int {
	n := len(s)
	SA := make([]int, n)
	for i := range SA {
		SA[i] = -1
	}
	if n == 0 {
		return SA
	}
	if n == 1 {
		SA[0] = 0
		return SA
	}

	// Classify each position as S-type (suffix smaller than its successor,
	// or equal and the successor is S-type) or L-type.
	t := make([]bool, n)
	t[n-1] = true
	for i := n - 2; i >= 0; i-- {
		switch {
		case s[i] < s[i+1]:
			t[i] = true
		case s[i] > s[i+1]:
			t[i] = false
		default:
			t[i] = t[i+1]
		}
	}

	var lmsPositions []int
	for i := 1; i < n; i++ {
		if t[i] && !t[i-1] {
			lmsPositions = append(lmsPositions, i)
		}
	}

	SA = induceSort(s, SA, t, K, lmsPositions)

	var sortedLMS []int
	for _, pos := range SA {
		if pos > 0 && t[pos] && !t[pos-1] {
			sortedLMS = append(sortedLMS, pos)
		}
	}

	lmsNames := make([]int, n)
	for i := range lmsNames {
		lmsNames[i] = -1
	}
	name := 0
	prev := -1
	for _, pos := range sortedLMS {
		if prev != -1 && !lmsSubstringEqual(s, t, prev, pos) {
			name++
		}
		lmsNames[pos] = name
		prev = pos
	}
	numNames := name + 1

	reduced := make([]int, 0, len(lmsPositions))
	for _, pos := range lmsPositions {
		reduced = append(reduced, lmsNames[pos])
	}

	var reducedSA []int
	if numNames < len(reduced) {
		reducedSA = sais(reduced, numNames)
	} else {
		reducedSA = make([]int, len(reduced))
		for i, nm := range reduced {
			reducedSA[nm] = i
		}
	}

	orderedLMS := make([]int, len(reducedSA))
	for i, idx := range reducedSA {
		orderedLMS[i] = lmsPositions[idx]
	}
	for i := range SA {
		SA[i] = -1
	}
	SA = induceSort(s, SA, t, K, orderedLMS)
	return SA
}

// induceSort runs the three SA-IS induction passes (seed LMS suffixes at
// their bucket tails, induce L-type from the left, induce S-type from the
// right) over the bucket layout of s's K symbols.
func induceSort(s []int, SA []int, t []bool, K int, lms []int) []int {
	counts := bucketCounts(s, K)

	bounds := newBucketBounds(counts)
	for i := len(lms) - 1; i >= 0; i-- {
		pos := lms[i]
		c := s[pos]
		SA[bounds.tails[c]] = pos
		bounds.tails[c]--
	}

	bounds = newBucketBounds(counts)
	for i := range SA {
		pos := SA[i]
		if pos > 0 && !t[pos-1] {
			c := s[pos-1]
			SA[bounds.heads[c]] = pos - 1
			bounds.heads[c]++
		}
	}

	bounds = newBucketBounds(counts)
	for i := len(SA) - 1; i >= 0; i-- {
		pos := SA[i]
		if pos > 0 && t[pos-1] {
			c := s[pos-1]
			SA[bounds.tails[c]] = pos - 1
			bounds.tails[c]--
		}
	}
	return SA
}

// bucketCounts tallies how many symbols of each rank occur in s. The
// top-level call always passes domainAlphabetSize (esa.go's fixed
// 7-rank-plus-terminator table), small enough to tally on the stack
// instead of a heap slice; recursive calls over a reduced LMS-name
// alphabet fall back to a plain allocation since that alphabet's size
// varies with the input.
func bucketCounts(s []int, K int) []int {
	if K == domainAlphabetSize {
		var counts [domainAlphabetSize]int
		for _, c := range s {
			counts[c]++
		}
		return counts[:]
	}
	counts := make([]int, K)
	for _, c := range s {
		counts[c]++
	}
	return counts
}

// bucketBounds holds, for each symbol, the index of its bucket's first
// (head) and last (tail) slot in SA — derived together from one pass over
// counts rather than two independent cumulative sums.
type bucketBounds struct {
	heads, tails []int
}

func newBucketBounds(counts []int) bucketBounds {
	heads := make([]int, len(counts))
	tails := make([]int, len(counts))
	sum := 0
	for i, n := range counts {
		heads[i] = sum
		sum += n
		tails[i] = sum - 1
	}
	return bucketBounds{heads: heads, tails: tails}
}

func lmsSubstringEqual(s []int, t []bool, i, j int) bool {
	n := len(s)
	for k := 0; ; k++ {
		if s[i] != s[j] || t[i] != t[j] {
			return false
		}
		// The start positions are LMS by construction; only an LMS position
		// after them ends the substring.
		iLMS := i > 0 && t[i] && !t[i-1]
		jLMS := j > 0 && t[j] && !t[j-1]
		if k > 0 && (iLMS || jLMS) {
			return iLMS && jLMS
		}
		i++
		j++
		if i >= n || j >= n {
			break
		}
	}
	return false
}

package esa

// RootInterval is the LCP interval spanning the entire suffix array,
// matching the empty prefix (L == 0).
func (e *ESA) RootInterval() Interval {
	return Interval{I: 0, J: len(e.SA) - 1, L: 0}
}

// charAt returns the byte of S at sPos+offset, or -1 if that position runs
// past the end of S. The -1 sentinel sorts before every real byte, which
// keeps the binary search in descendChar correct for suffixes shorter than
// the probed offset (a suffix that is a proper prefix of another is
// lexicographically smaller than it).
func (e *ESA) charAt(sPos, offset int) int {
	p := sPos + offset
	if p >= len(e.S) {
		return -1
	}
	return int(e.S[p])
}

// descendChar finds the child of interval in whose suffixes agree with c at
// offset pos (the number of characters already matched), via binary search
// over the sorted sub-range — the
// suffixes in [in.I, in.J] already share a prefix of length pos, so their
// byte at offset pos is monotonic non-decreasing across the range.
func (e *ESA) descendChar(in Interval, pos int, c byte) (Interval, bool) {
	target := int(c)
	lo, hi := in.I, in.J+1
	for lo < hi {
		mid := (lo + hi) / 2
		if e.charAt(e.SA[mid], pos) < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	first := lo

	lo, hi = in.I, in.J+1
	for lo < hi {
		mid := (lo + hi) / 2
		if e.charAt(e.SA[mid], pos) <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	last := lo - 1

	if first > last {
		return Interval{}, false
	}
	return Interval{I: first, J: last}, true
}

// lcpRangeMin returns min(LCP[lo..hi]) which, for an LCP interval [lo-1,
// hi], is exactly the common-prefix length shared by all its suffixes. A
// direct scan suffices here; a sparse-table RMQ would make this O(1) but
// isn't needed for the match volumes this tool targets.
func (e *ESA) lcpRangeMin(lo, hi int) int {
	if lo > hi {
		return len(e.S)
	}
	m := e.LCP[lo]
	for i := lo + 1; i <= hi; i++ {
		if e.LCP[i] < m {
			m = e.LCP[i]
		}
	}
	return m
}

// descend walks interval `start` (already known to match query[:from])
// forward against query[from:], one character at a time, and returns the
// resulting interval together with the matched length. If start is already
// a singleton, matching continues by direct comparison against S rather
// than further tree descent, since a singleton interval has no children
// left to distinguish.
//
// Each step descends on exactly one query character via descendChar. The
// resulting child interval's suffixes are only guaranteed to agree with
// the query up to the character just matched — their own common prefix
// may run longer (that's what lcpRangeMin measures), but the query hasn't
// been checked against any of it yet, so child.L must stay pinned to the
// query position actually compared, not jump ahead to the interval's
// internal common-prefix length.
func (e *ESA) descend(start Interval, query []byte, from int) (Interval, int) {
	if start.Unique() {
		return e.extendSingleton(start, query, from)
	}

	cur := start
	pos := from
	for pos < len(query) {
		child, ok := e.descendChar(cur, pos, query[pos])
		if !ok {
			return cur, pos
		}
		pos++
		if child.Unique() {
			return e.extendSingleton(child, query, pos)
		}
		child.L = pos
		cur = child
	}
	return cur, pos
}

// extendSingleton scans S directly against query starting at matchedLen,
// since once an interval is a singleton there is exactly one candidate
// suffix left to compare character by character.
func (e *ESA) extendSingleton(iv Interval, query []byte, matchedLen int) (Interval, int) {
	sPos := e.SA[iv.I]
	l := matchedLen
	for l < len(query) && sPos+l < len(e.S) && query[l] == e.S[sPos+l] {
		l++
	}
	iv.L = l
	return iv, l
}

// GetMatchCached implements §4.2's cached match lookup: it consults the
// precomputed k-prefix table when the query is long enough and its first k
// characters are all canonical, then continues interval descent from
// there; otherwise it falls back to descending from the root.
func (e *ESA) GetMatchCached(query []byte) (Interval, int) {
	k := e.cacheDepth
	if len(query) >= k {
		if key, ok := encodeCacheKey(query[:k]); ok {
			start := e.cache[key]
			if !start.Empty() {
				// The cached L is the interval's own common-prefix length,
				// which can exceed k; only k query characters have been
				// compared so far.
				start.L = k
				return e.descend(start, query, k)
			}
			// No suffix carries this exact k-mer as a prefix; the true
			// match (if any) is shorter than k, so fall through to a full
			// root descent rather than reporting zero.
		}
	}
	return e.descend(e.RootInterval(), query, 0)
}

// encodeCacheKey packs the first len(prefix) canonical bases into a
// base-4 integer. It returns ok == false if any byte isn't A/C/G/T, in
// which case the caller must fall back to root descent.
func encodeCacheKey(prefix []byte) (int, bool) {
	key := 0
	for _, b := range prefix {
		var d int
		switch b {
		case 'A':
			d = 0
		case 'C':
			d = 1
		case 'G':
			d = 2
		case 'T':
			d = 3
		default:
			return 0, false
		}
		key = key*4 + d
	}
	return key, true
}

var cacheBases = [4]byte{'A', 'C', 'G', 'T'}

// buildCache precomputes, for every length-depth string over {A,C,G,T},
// the LCP interval matching it as a prefix (or the empty interval if no
// suffix of e carries it). Table size is 4^depth regardless of subject
// size, per §4.2's "for every length-k string w" contract.
func buildCache(e *ESA, depth int) []Interval {
	size := 1
	for i := 0; i < depth; i++ {
		size *= 4
	}
	cache := make([]Interval, size)
	for i := range cache {
		cache[i] = Interval{I: 1, J: 0} // empty marker until filled below
	}

	var fill func(idx, digit int, in Interval)
	fill = func(idx, digit int, in Interval) {
		if digit == depth {
			cache[idx] = in
			return
		}
		for d, c := range cacheBases {
			nidx := idx*4 + d
			child, ok := e.descendChar(in, digit, c)
			if !ok {
				// Every k-mer extending this absent prefix keeps its
				// empty marker.
				continue
			}
			if child.Unique() {
				child.L = digit + 1
			} else {
				child.L = e.lcpRangeMin(child.I+1, child.J)
			}
			fill(nidx, digit+1, child)
		}
	}
	fill(0, 0, e.RootInterval())
	return cache
}

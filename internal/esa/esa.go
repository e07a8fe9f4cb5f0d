// Package esa builds an enhanced suffix array (SA, ISA, LCP plus a k-mer
// prefix cache) over a reference subject string and exposes the interval
// descent needed to answer "longest unique prefix of this query" in
// near-constant amortized time per query character.
package esa

import "github.com/pkg/errors"

// Interval denotes an LCP interval [I, J] of the suffix array whose
// suffixes share a common prefix of length L. I == J means the prefix
// occurs exactly once in the subject.
type Interval struct {
	I, J int
	L    int
}

// Empty reports whether the interval carries no suffixes at all (used by
// the prefix cache to mark k-mers absent from the subject).
func (iv Interval) Empty() bool { return iv.I > iv.J }

// Unique reports whether the interval denotes a single suffix.
func (iv Interval) Unique() bool { return iv.I == iv.J }

// ESA is the enhanced suffix array of a subject byte string: SA, its
// inverse ISA, the LCP array (length len(SA), LCP[0] == -1), and a
// precomputed interval cache keyed on short query prefixes. All four are
// built once and are immutable for the ESA's lifetime; per spec/§9
// "Scoped acquisition" they are owned together and released together (by
// letting the *ESA go out of scope — nothing here holds external
// resources that need explicit closing).
type ESA struct {
	S   []byte
	SA  []int
	ISA []int
	LCP []int

	cacheDepth int
	cache      []Interval
}

// Build constructs the ESA for subject s. s is expected to already be in
// "subject form" (s' # reverse(s') $, see seqio.ToSubject). The SA-IS
// recursion below does not depend on that form: encode appends its own
// unique, smallest terminator.
//
// cacheDepth is the k of the §4.2 prefix cache; callers that don't care
// can pass DefaultCacheDepth.
func Build(s []byte, cacheDepth int) (*ESA, error) {
	if len(s) == 0 {
		return nil, errors.New("esa: empty subject")
	}
	if cacheDepth <= 0 {
		cacheDepth = DefaultCacheDepth
	}

	encoded, alphabetSize := encode(s)
	saExt := sais(encoded, alphabetSize)
	if len(saExt) == 0 {
		return nil, errors.New("esa: suffix array construction failed")
	}
	// saExt[0] is always the position of the synthetic terminator encode
	// appended (it is the unique smallest symbol), so dropping it yields
	// the suffix array of s itself.
	sa := saExt[1:]

	isa := make([]int, len(sa))
	for i, pos := range sa {
		isa[pos] = i
	}

	lcp := kasaiLCP(s, sa)

	e := &ESA{S: s, SA: sa, ISA: isa, LCP: lcp, cacheDepth: cacheDepth}
	e.cache = buildCache(e, cacheDepth)
	return e, nil
}

// DefaultCacheDepth is the k used by §4.2's prefix cache when the caller
// does not override it: a small constant, per the spec's own example.
const DefaultCacheDepth = 10

// encode maps subject bytes to small integers preserving their intended
// order (# < $ < A < C < G < N < T) and appends a synthetic terminator
// (rank 0) strictly smaller than every real symbol, which SA-IS requires
// to seed its induced sort. This generalizes the teacher's encodeString,
// which shifted raw bytes by +1 over the full byte range; here the
// alphabet is fixed and tiny, so an explicit rank table is simpler and
// keeps K small (8 instead of 257).
func encode(s []byte) ([]int, int) {
	rank := map[byte]int{
		'#': 1,
		'$': 2,
		'A': 3,
		'C': 4,
		'G': 5,
		'N': 6,
		'T': 7,
	}
	out := make([]int, len(s)+1)
	for i, b := range s {
		r, ok := rank[b]
		if !ok {
			// Defensive: normalize should already have mapped anything
			// non-canonical to 'N' and ToSubject only introduces '#'/'$'.
			r = rank['N']
		}
		out[i] = r
	}
	out[len(s)] = 0
	return out, len(rank) + 1
}

// Package anchor implements the MUM-candidate ("anchor") finder of §4.3:
// it streams a query against a reference ESA, left-extends each cached
// match to maximality, and emits those that are both unique in the subject
// and at least threshold long. Grounded in the original TUMmer's
// process.c:dist_anchor, translated line-for-line into the equivalent Go
// control flow — the Go teacher (xiles84-dnatools) has no maximal-match
// concept at all, only exact substring search, so there's nothing of its
// own to adapt here beyond its general "package does one algorithm" shape.
package anchor

import (
	"github.com/kloetzl/tummer/internal/esa"
	"github.com/kloetzl/tummer/internal/stats"
)

// Match is a triple (pos_S, pos_Q, len) denoting a maximal match in the
// subject, reported 0-based internally (callers format 1-based per §6).
type Match struct {
	PosS, PosQ, Len int
}

// Threshold resolves τ: the caller-supplied minLength if positive,
// otherwise the statistically derived minimum anchor length for the given
// random-match probability, subject GC fraction, and subject length
// (§4.3's "Threshold" step).
func Threshold(minLength int, prob, gc float64, subjectLen int) int {
	if minLength > 0 {
		return minLength
	}
	return stats.MinAnchorLength(prob, gc, subjectLen)
}

// Find streams query against index left to right and returns every
// maximal match unique in the subject and at least threshold long, per
// §4.3's numbered algorithm. Matches are returned in the order the
// algorithm discovers them (left to right in the query), which is also
// their natural print order.
func Find(index *esa.ESA, query []byte, threshold int) []Match {
	var out []Match
	m := len(query)

	for posQ := 0; posQ < m; {
		inter, length := index.GetMatchCached(query[posQ:])
		if length < 0 {
			length = 0
		}
		posS := index.SA[inter.I]

		// Left extension: grow the match leftward while both sides still
		// agree. The interval was unique (or became unique during
		// descent) before this step, and extending left can only shrink
		// the set of suffixes consistent with the match, so uniqueness is
		// preserved.
		for posQ > 0 && posS > 0 && query[posQ-1] == index.S[posS-1] {
			posS--
			posQ--
			length++
		}

		if inter.Unique() && length >= threshold {
			out = append(out, Match{PosS: posS, PosQ: posQ, Len: length})
		}

		// Advance past the matched region plus one: this guarantees
		// linear progress even when length == 0 (advance by 1).
		posQ += length + 1
	}
	return out
}

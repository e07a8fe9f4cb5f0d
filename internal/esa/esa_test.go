package esa

import (
	"reflect"
	"testing"
)

// saOf mirrors the teacher's TestSuffixArray table (xiles84-dnatools's
// main_test.go), translated to this package's encode/sais pair instead of
// the teacher's byte-range encoding.
func saOf(t *testing.T, s string) []int {
	t.Helper()
	encoded, alphabetSize := encode([]byte(s))
	full := sais(encoded, alphabetSize)
	return full[1:] // drop the synthetic terminator row, as esa.Build does
}

func TestSuffixArrayBanana(t *testing.T) {
	// "banana" has no '#'/'$'/'N' so encode treats every byte as the 'N'
	// fallback rank, which collapses the alphabet — this test exists to
	// pin sais' correctness on a classic string, so it calls sais
	// directly over its own small alphabet instead of esa's encode.
	s := []int{2, 1, 3, 1, 3, 1, 0} // b a n a n a $ (ranks chosen distinct)
	got := sais(s, 4)
	want := []int{6, 5, 3, 1, 0, 4, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sais(banana$) = %v, want %v", got, want)
	}
}

func TestBuildAndDescendUniqueMatch(t *testing.T) {
	// Reference "ACGTTTT", query "ACGT": the prefix "ACGT" occurs exactly
	// once in the subject, per §8 scenario 2.
	subject := []byte("ACGTTTT#TTTTGCA$")
	e, err := Build(subject, 4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	inter, length := e.GetMatchCached([]byte("ACGT"))
	if !inter.Unique() {
		t.Fatalf("expected a unique interval, got [%d,%d]", inter.I, inter.J)
	}
	if length != 4 {
		t.Fatalf("length = %d, want 4", length)
	}
	if got := e.SA[inter.I]; got != 0 {
		t.Fatalf("matched position = %d, want 0", got)
	}
}

func TestDescentNonUniqueStaysBounded(t *testing.T) {
	// "ACGT" occurs twice in "ACGTACGT" (§8 scenario 1's reference), so a
	// root descent on its full prefix must land on a non-singleton
	// interval, never silently promoted to unique.
	s := []byte("ACGTACGT")
	subject := append(append(append([]byte{}, s...), '#'), reverseBytes(s)...)
	subject = append(subject, '$')

	e, err := Build(subject, 4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inter, length := e.GetMatchCached([]byte("ACGT"))
	if inter.Unique() {
		t.Fatalf("expected non-unique interval for a doubly-occurring prefix, got singleton at %d", inter.I)
	}
	if length != 4 {
		t.Fatalf("length = %d, want 4", length)
	}
}

func TestCachedAndUncachedDescentAgree(t *testing.T) {
	// The cached and uncached paths must return identical intervals for
	// every (query, position) pair, per §8's invariant list.
	s := []byte("AAAAAAG")
	subject := append(append(append([]byte{}, s...), '#'), reverseBytes(s)...)
	subject = append(subject, '$')

	eCached, err := Build(subject, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	eUncached, err := Build(subject, 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	query := []byte("AAAG")
	cached, cl := eCached.GetMatchCached(query)
	uncached, ul := eUncached.descend(eUncached.RootInterval(), query, 0)

	if cached != uncached || cl != ul {
		t.Fatalf("cached descent = (%v,%d), uncached = (%v,%d)", cached, cl, uncached, ul)
	}
}

func TestDescendVerifiesQueryAgainstSubject(t *testing.T) {
	// Regression: a naive descend that jumps straight to a non-singleton
	// child's lcpRangeMin length, without checking the skipped query
	// characters against S, can report a "match" the query never actually
	// made. Built from a reported false positive: GetMatchCached([]byte(
	// "ATGCTTT")) against this reference used to return a unique interval
	// of length 7 at S[0:7]="ACGCTTT", even though query[1]='T' disagrees
	// with S[1]='C'.
	s := []byte("ACGCTTTACGGTTTACGTTTT")
	subject := append(append(append([]byte{}, s...), '#'), reverseBytes(s)...)
	subject = append(subject, '$')

	e, err := Build(subject, 4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	query := []byte("ATGCTTT")
	inter, length := e.GetMatchCached(query)
	sPos := e.SA[inter.I]
	for i := 0; i < length; i++ {
		if query[i] != e.S[sPos+i] {
			t.Fatalf("reported match of length %d disagrees with S at offset %d: query=%q S[%d:]=%q",
				length, i, query, sPos, e.S[sPos:sPos+length])
		}
	}
}

func reverseBytes(s []byte) []byte {
	out := make([]byte, len(s))
	for i, b := range s {
		out[len(s)-1-i] = b
	}
	return out
}

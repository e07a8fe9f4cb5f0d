// Package seqio implements the sequence model of §3/§4.1: canonical-
// alphabet normalization, GC content, reverse-complement, and the subject
// doubling used to build the reference's enhanced suffix array. Grounded
// in the teacher's flat file-reading style (xiles84-dnatools/main.go) and
// resolved against the original TUMmer's sequence.{c,h}/io.c semantics
// where the Go teacher has no direct equivalent (there was no GC content
// or alphabet normalization in the teacher at all).
package seqio

import (
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
)

// SentinelHash and SentinelDollar are the two symbols §3 requires to be
// lexicographically smaller than any alphabet character. '#' bounds the
// forward half of the subject, '$' terminates the reversed half.
const (
	SentinelHash   byte = '#'
	SentinelDollar byte = '$'
)

// Sequence is an immutable, normalized biological sequence: a name and an
// ordered byte string over {A,C,G,T,N}, plus its precomputed GC fraction.
type Sequence struct {
	Name  string
	Bases []byte
	GC    float64
}

// NonCanonicalFlag is the atomic, one-way "saw a non-ACGT residue during
// ingress" indicator described in §9's design notes: a single flag raised
// at most once, safe to share across concurrent ingress, never cleared.
type NonCanonicalFlag struct {
	seen atomic.Bool
}

// Set raises the flag. Safe to call concurrently and redundantly.
func (f *NonCanonicalFlag) Set() { f.seen.Store(true) }

// Seen reports whether Set has ever been called.
func (f *NonCanonicalFlag) Seen() bool { return f.seen.Load() }

// canonicalBase upper-cases b and reports whether it is one of A/C/G/T.
// Anything else normalizes to 'N'.
func canonicalBase(b byte) (byte, bool) {
	switch b {
	case 'a', 'A':
		return 'A', true
	case 'c', 'C':
		return 'C', true
	case 'g', 'G':
		return 'G', true
	case 't', 'T':
		return 'T', true
	default:
		return 'N', false
	}
}

// Normalize maps raw bytes to the canonical {A,C,G,T,N} alphabet (lower to
// upper case, anything non-ACGT to N) and computes GC content from the
// canonical residues only, per §4.1. sawNonCanonical reports whether any
// input byte needed the N fallback.
func Normalize(raw []byte) (norm []byte, gc float64, sawNonCanonical bool) {
	norm = make([]byte, len(raw))
	canonCount, gcCount := 0, 0
	for i, b := range raw {
		c, ok := canonicalBase(b)
		norm[i] = c
		if !ok {
			sawNonCanonical = true
			continue
		}
		canonCount++
		if c == 'C' || c == 'G' {
			gcCount++
		}
	}
	if canonCount > 0 {
		gc = float64(gcCount) / float64(canonCount)
	}
	return norm, gc, sawNonCanonical
}

// NewSequence normalizes raw and wraps it as a Sequence. Zero-length input
// is rejected at ingress, per §3's invariant. If raw contained a
// non-canonical residue, flag is raised (flag may be nil in tests that
// don't care).
func NewSequence(name string, raw []byte, flag *NonCanonicalFlag) (*Sequence, error) {
	if len(raw) == 0 {
		return nil, errors.Errorf("sequence %q is empty", name)
	}
	norm, gc, saw := Normalize(raw)
	if saw && flag != nil {
		flag.Set()
	}
	return &Sequence{Name: name, Bases: norm, GC: gc}, nil
}

// MaxReferenceLength is the largest a reference sequence may be before
// doubling, per §3's invariant |S| <= (INT_MAX-1)/2. The bound is kept at
// the original's 32-bit INT_MAX rather than Go's native int width, since
// it's the doubled-subject-fits-in-a-32-bit-index contract callers of this
// tool historically rely on, not an actual Go array-size limit.
const MaxReferenceLength = (math.MaxInt32 - 1) / 2

// ToSubject builds the doubled subject string S = s # reverse(s) $ used to
// build the reference's ESA, so that matching a reverse-complemented query
// strand against S amounts to matching the same index (see §3). reverse(s)
// is the byte reverse of s, not its complement.
func ToSubject(s []byte) []byte {
	n := len(s)
	out := make([]byte, 0, 2*n+2)
	out = append(out, s...)
	out = append(out, SentinelHash)
	for i := n - 1; i >= 0; i-- {
		out = append(out, s[i])
	}
	out = append(out, SentinelDollar)
	return out
}

package seqio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ReadFastaFile reads the sequences of a single FASTA file (or stdin, for
// path "-"), per §6's input format: a ">" header line whose name is the
// first whitespace-delimited token, followed by a sequence body running
// until the next header or EOF, with embedded whitespace discarded.
//
// In join mode all sequences from the file are concatenated into one
// virtual sequence named after the file's basename with its extension
// stripped, mirroring the original io.c's read_fasta_join.
//
// Per-sequence construction failures (here: only the empty-sequence case)
// are skipped with a warning to stderr rather than failing the whole
// file, per §7's error policy.
func ReadFastaFile(path string, join bool, flag *NonCanonicalFlag) ([]*Sequence, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
		r = f
	}

	seqs, err := parseFasta(r, flag)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if !join {
		return seqs, nil
	}
	if len(seqs) == 0 {
		return nil, nil
	}
	return []*Sequence{joinSequences(seqs, path)}, nil
}

func parseFasta(r io.Reader, flag *NonCanonicalFlag) ([]*Sequence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<30)

	var seqs []*Sequence
	var name string
	var haveHeader bool
	var body bytes.Buffer

	flush := func() {
		if !haveHeader {
			return
		}
		seq, err := NewSequence(name, body.Bytes(), flag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping sequence %q: %v\n", name, err)
		} else {
			seqs = append(seqs, seq)
		}
		body.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			flush()
			fields := strings.Fields(strings.TrimPrefix(line, ">"))
			if len(fields) == 0 {
				haveHeader = false
				continue
			}
			name = fields[0]
			haveHeader = true
			continue
		}
		for _, r := range line {
			if !unicode.IsSpace(r) {
				body.WriteRune(r)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return seqs, nil
}

// joinSequences concatenates the bases of seqs into a single Sequence
// named after path's basename, truncated at its first '.', mirroring
// io.c's read_fasta_join (strchrnul(left, '.')) — not just the last
// extension, so "sample.v2.fasta" joins as "sample", not "sample.v2".
func joinSequences(seqs []*Sequence, path string) *Sequence {
	var buf bytes.Buffer
	for _, s := range seqs {
		buf.Write(s.Bases)
	}
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	// Bases are already canonical; Normalize here is idempotent (§8) and
	// recomputes GC over the concatenation rather than averaging the
	// per-file GCs.
	norm, gc, _ := Normalize(buf.Bytes())
	return &Sequence{Name: base, Bases: norm, GC: gc}
}

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kloetzl/tummer/internal/anchor"
	"github.com/kloetzl/tummer/internal/esa"
	"github.com/kloetzl/tummer/internal/seqio"
)

// run is the driver of §4.5: it builds the reference's ESA once, then
// streams each remaining sequence through it (forward and/or reverse
// complement per cfg), writing "> name" headers and anchor lines. It
// returns the process exit code so main can keep the exit path trivial.
func run(cfg *Config) int {
	if cfg.ShowHelp {
		printUsage()
		return 0
	}
	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	if cfg.Join && len(cfg.Files) == 0 {
		fmt.Fprintln(os.Stderr, "tummer: in join mode at least one filename needs to be supplied.")
		return 1
	}

	paths := cfg.Files
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	nonCanonical := &seqio.NonCanonicalFlag{}
	var sequences []*seqio.Sequence
	for _, path := range paths {
		seqs, err := seqio.ReadFastaFile(path, cfg.Join, nonCanonical)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		sequences = append(sequences, seqs...)
	}

	if len(sequences) < 2 {
		fmt.Fprintf(os.Stderr,
			"tummer: I am truly sorry, but with less than two sequences (%d given) there is nothing to compare.\n",
			len(sequences))
		return 1
	}

	for _, s := range sequences {
		if len(s.Bases) == 0 {
			fmt.Fprintf(os.Stderr, "tummer: the sequence %s is empty.\n", s.Name)
			return 1
		}
	}
	// The length limit only applies to the reference (the first sequence).
	if len(sequences[0].Bases) > seqio.MaxReferenceLength {
		fmt.Fprintf(os.Stderr, "tummer: the sequence %s is too long. The technical limit is %d.\n",
			sequences[0].Name, seqio.MaxReferenceLength)
		return 1
	}

	if nonCanonical.Seen() {
		fmt.Fprintln(os.Stderr,
			"warning: the input sequences contained characters other than acgtACGT. These were mapped to N to ensure correct results.")
	}

	if cfg.Verbosity >= 1 {
		fmt.Fprintf(os.Stderr, "Comparing %d sequences\n", len(sequences))
	}

	reference := sequences[0]
	subject := seqio.ToSubject(reference.Bases)
	index, err := esa.Build(subject, esa.DefaultCacheDepth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tummer: failed to create index for %s: %v\n", reference.Name, err)
		return 1
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for _, query := range sequences[1:] {
		if cfg.Verbosity >= 2 {
			fmt.Fprintf(os.Stderr, "comparing %s and %s\n", reference.Name, query.Name)
		}
		if cfg.Forward {
			emitMatches(out, index, query.Name, "", query.Bases, cfg, reference.GC)
		}
		if cfg.Reverse {
			emitMatches(out, index, query.Name, " Reverse", seqio.ReverseComplement(query.Bases), cfg, reference.GC)
		}
	}
	return 0
}

// emitMatches writes one query's header and anchor lines as a contiguous
// block (§5's ordering guarantee), in the §6 fixed-width 1-based format.
func emitMatches(w *bufio.Writer, index *esa.ESA, name, headerSuffix string, query []byte, cfg *Config, referenceGC float64) {
	fmt.Fprintf(w, "> %s%s\n", name, headerSuffix)
	threshold := anchor.Threshold(cfg.MinLength, cfg.Prob, referenceGC, len(index.S))
	for _, m := range anchor.Find(index, query, threshold) {
		fmt.Fprintf(w, "%8d  %8d  %8d\n", m.PosS+1, m.PosQ+1, m.Len)
	}
}

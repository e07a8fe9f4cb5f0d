package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureOutput redirects os.Stdout/os.Stderr for the duration of fn,
// returning what was written to each plus fn's own return value.
func captureOutput(t *testing.T, fn func() int) (stdout, stderr string, code int) {
	t.Helper()
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW

	code = fn()

	os.Stdout, os.Stderr = origOut, origErr
	outW.Close()
	errW.Close()

	var outBuf, errBuf bytes.Buffer
	io.Copy(&outBuf, outR)
	io.Copy(&errBuf, errR)
	return outBuf.String(), errBuf.String(), code
}

func writeFasta(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.fasta")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRunHelp(t *testing.T) {
	cfg := &Config{ShowHelp: true}
	stdout, _, code := captureOutput(t, func() int { return run(cfg) })
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "Usage: tummer") {
		t.Fatalf("stdout = %q, want usage text", stdout)
	}
}

func TestRunVersion(t *testing.T) {
	cfg := &Config{ShowVersion: true}
	stdout, _, code := captureOutput(t, func() int { return run(cfg) })
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "tummer "+version) {
		t.Fatalf("stdout = %q, want version banner", stdout)
	}
}

func TestRunJoinModeRequiresAFile(t *testing.T) {
	cfg := &Config{Join: true}
	_, stderr, code := captureOutput(t, func() int { return run(cfg) })
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "join mode") {
		t.Fatalf("stderr = %q, want a join-mode complaint", stderr)
	}
}

func TestRunTooFewSequencesIsFatal(t *testing.T) {
	path := writeFasta(t, ">only\nACGTACGT\n")
	cfg := &Config{Forward: true, Files: []string{path}}
	_, stderr, code := captureOutput(t, func() int { return run(cfg) })
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "less than two sequences") {
		t.Fatalf("stderr = %q, want a too-few-sequences complaint", stderr)
	}
}

func TestRunEmitsMatchesForForwardStrand(t *testing.T) {
	path := writeFasta(t, ">ref\nACGTTTTACGGTTTT\n>qry\nACGTTTTACGGTTTT\n")
	cfg := &Config{Forward: true, Prob: 0.05, MinLength: 4, Files: []string{path}}
	stdout, _, code := captureOutput(t, func() int { return run(cfg) })
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "> qry\n") {
		t.Fatalf("stdout = %q, want a header for the query sequence", stdout)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) < 2 {
		t.Fatalf("stdout = %q, want a header plus at least one match line", stdout)
	}
}

func TestRunReverseOnlyStrandOmitsForwardHeader(t *testing.T) {
	path := writeFasta(t, ">ref\nACGTTTTACGGTTTT\n>qry\nAAAACCGTAAAACGT\n")
	cfg := &Config{Reverse: true, Prob: 0.05, MinLength: 4, Files: []string{path}}
	stdout, _, code := captureOutput(t, func() int { return run(cfg) })
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "> qry Reverse\n") {
		t.Fatalf("stdout = %q, want a \"Reverse\" header", stdout)
	}
	if strings.Contains(stdout, "> qry\n") {
		t.Fatalf("stdout = %q, forward-only header should not appear in reverse-only mode", stdout)
	}
}

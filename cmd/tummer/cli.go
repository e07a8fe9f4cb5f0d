// Command tummer finds Maximal Unique Matches between a reference sequence
// and one or more query sequences via an enhanced suffix array, modeled
// after the MUMmer approach. See §6 of the specification for the exact
// flag and output contract; this file implements argument parsing only.
package main

import (
	"fmt"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"
)

// version follows the GNU Coding Standard --version convention the
// original tummer.c's version() function implements.
const version = "2.0.0"

const usageText = `Usage: tummer [-bjvrh] [-p FLOAT] [-l INT] [--version] FILE...
	FILE... can be any sequence of FASTA files. If no files are supplied,
	stdin is used instead. The first provided sequence is used as the
	reference.
Options:
  -b                   Compute forward and reverse complement matches; default: forward only
  -j, --join           Treat all sequences from one file as a single genome
  -l, --min-length INT Minimum length of a MUM; uses p-value by default
  -p FLOAT             Significance of a MUM; default: 0.05
  -r                   Compute only reverse complement matches; default: forward only
  -v, --verbose        Print additional information; repeat for per-pair comparisons
  -h, --help           Display this help and exit
      --version        Output version information
`

// Config is the immutable, fully-resolved configuration the driver runs
// with — the rewrite's answer to §9's "Global mutable flags" design note:
// one value threaded through the program instead of process-wide flags.
type Config struct {
	Forward     bool
	Reverse     bool
	Join        bool
	Prob        float64
	MinLength   int
	Verbosity   int
	ShowHelp    bool
	ShowVersion bool
	Files       []string
}

// modeState accumulates -b/-r in the order they appear on the command
// line. tummer.c applies each flag inline inside its getopt_long loop
// (FLAGS |= ... / FLAGS &= ...), so a later -r after -b still clears
// forward; a plain pflag.BoolVarP pair can't express that "last one wins"
// without knowing arrival order, so -b and -r are wired as pflag.Value
// implementations whose Set is invoked exactly when pflag encounters that
// flag in argv (REDESIGN FLAG 9c).
type modeState struct {
	forward, reverse bool
}

type bothFlag struct{ m *modeState }

func (f *bothFlag) String() string   { return "" }
func (f *bothFlag) Type() string     { return "bool" }
func (f *bothFlag) IsBoolFlag() bool { return true }
func (f *bothFlag) Set(string) error {
	f.m.forward = true
	f.m.reverse = true
	return nil
}

type reverseOnlyFlag struct{ m *modeState }

func (f *reverseOnlyFlag) String() string   { return "" }
func (f *reverseOnlyFlag) Type() string     { return "bool" }
func (f *reverseOnlyFlag) IsBoolFlag() bool { return true }
func (f *reverseOnlyFlag) Set(string) error {
	f.m.forward = false
	f.m.reverse = true
	return nil
}

// probFlag parses -p leniently: an out-of-range or unparseable value is
// warned about and the previous value kept, per §6/§7 — not a fatal flag
// error, mirroring tummer.c's inline warnx+break in its 'p' case.
type probFlag struct{ v *float64 }

func (f *probFlag) String() string { return strconv.FormatFloat(*f.v, 'g', -1, 64) }
func (f *probFlag) Type() string   { return "float" }
func (f *probFlag) Set(s string) error {
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: expected a floating point number for -p argument, but %q was given; ignoring\n", s)
		return nil
	}
	if parsed < 0.0 || parsed > 1.0 {
		fmt.Fprintf(os.Stderr, "warning: a probability should be between 0 and 1; ignoring -p %v\n", parsed)
		return nil
	}
	*f.v = parsed
	return nil
}

// minLengthFlag parses -l/--min-length leniently, same policy as probFlag.
type minLengthFlag struct{ v *int }

func (f *minLengthFlag) String() string { return strconv.Itoa(*f.v) }
func (f *minLengthFlag) Type() string   { return "int" }
func (f *minLengthFlag) Set(s string) error {
	parsed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: expected a number for -l argument, but %q was given; ignoring -l argument\n", s)
		return nil
	}
	*f.v = int(parsed)
	return nil
}

// parseArgs parses argv (excluding the program name) into a Config. It
// never exits the process; callers check ShowHelp/ShowVersion themselves.
func parseArgs(argv []string) (*Config, error) {
	fs := flag.NewFlagSet("tummer", flag.ContinueOnError)
	fs.SetOutput(new(nullWriter))

	cfg := &Config{Forward: true, Prob: 0.05}
	mode := &modeState{forward: true}

	// NoOptDefVal lets -b/-r stand alone (and combine, as in -br) instead of
	// consuming the next argument as their value.
	fs.VarPF(&bothFlag{mode}, "both", "b", "compute forward and reverse complement matches").NoOptDefVal = "true"
	fs.VarPF(&reverseOnlyFlag{mode}, "reverse-only", "r", "compute only reverse complement matches").NoOptDefVal = "true"
	fs.BoolVarP(&cfg.Join, "join", "j", false, "treat all sequences from one file as a single genome")
	fs.VarP(&probFlag{&cfg.Prob}, "prob", "p", "significance of a MUM")
	fs.VarP(&minLengthFlag{&cfg.MinLength}, "min-length", "l", "minimum length of a MUM")
	fs.CountVarP(&cfg.Verbosity, "verbose", "v", "print additional information")
	fs.BoolVarP(&cfg.ShowHelp, "help", "h", false, "display this help and exit")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "output version information")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	cfg.Forward = mode.forward
	cfg.Reverse = mode.reverse
	cfg.Files = fs.Args()
	return cfg, nil
}

// nullWriter discards pflag's own usage/error output; tummer prints its
// own usage text (usageText above) to match the original's wording.
type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

func printUsage() { fmt.Print(usageText) }

func printVersion() {
	fmt.Printf("tummer %s\n", version)
	fmt.Println("License GPLv3+: GNU GPL version 3 or later <http://gnu.org/licenses/gpl.html>")
	fmt.Println("This is free software: you are free to change and redistribute it.")
	fmt.Println("There is NO WARRANTY, to the extent permitted by law.")
}

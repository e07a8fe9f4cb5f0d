package main

import "os"

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		printUsage()
		os.Exit(1)
	}
	os.Exit(run(cfg))
}

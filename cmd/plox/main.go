// Command plox is the Lox interpreter CLI: zero arguments start a REPL, one
// positional argument interprets that file, and more than one prints usage
// and exits 64 (spec.md §6).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/RJ722/plox/pkg/plox"
)

func main() {
	var (
		historyDB = flag.String("history-db", "", "SQLite database for REPL session history (default: in-memory only)")
		stats     = flag.Bool("stats", false, "Print elapsed execution time after running a file")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: plox [script]")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	switch len(args) {
	case 0:
		runPrompt(*historyDB)
	case 1:
		os.Exit(runFile(args[0], *stats))
	default:
		fmt.Fprintln(os.Stderr, "Usage: plox [script]")
		os.Exit(64)
	}
}

func runFile(path string, stats bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "plox: %v\n", err)
		return 64
	}

	start := time.Now()
	rt := plox.New()
	result := rt.Run(string(source))

	if stats {
		fmt.Fprintf(os.Stderr, "plox: ran %s in %s\n", path, humanize.RelTime(start, time.Now(), "", ""))
	}

	return result.ExitCode
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"

	"github.com/RJ722/plox/internal/history"
	"github.com/RJ722/plox/pkg/plox"
)

// runPrompt is the REPL: one line per evaluation, printing `> ` as the
// prompt, resetting the compile-time error flag between lines while
// letting HadRuntimeError persist for the process (spec.md §6).
//
// Session history is recorded through internal/history, adapted from the
// teacher's store package, so `:history` can show this session's earlier
// lines. With -history-db pointing at a file the transcript is also kept in
// that database after the process exits, keyed by a per-process session
// UUID; `:history` lists only the current session's lines.
func runPrompt(historyDBPath string) {
	var hstore history.Store
	if historyDBPath != "" {
		s, err := history.NewSQLite(historyDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "plox: could not open history db: %v\n", err)
			hstore = history.NewMemory()
		} else {
			hstore = s
		}
	} else {
		hstore = history.NewMemory()
	}
	defer hstore.Close()

	session := uuid.New().String()
	interactive := isatty.IsTerminal(os.Stdin.Fd())

	var lineOutput strings.Builder
	rt := plox.New(plox.WithStdout(io.MultiWriter(os.Stdout, &lineOutput)))

	if interactive {
		fmt.Println("plox REPL (Ctrl+D to exit)")
	}

	reader := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !reader.Scan() {
			if interactive {
				fmt.Println()
			}
			return
		}

		line := reader.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			runMetaCommand(trimmed, session, hstore)
			continue
		}

		rt.ResetError()
		lineOutput.Reset()
		rt.Run(line)

		if err := hstore.Append(session, history.Entry{Source: line, Result: strings.TrimSpace(lineOutput.String())}); err != nil {
			fmt.Fprintf(os.Stderr, "plox: could not record history: %v\n", err)
		}
	}
}

// runMetaCommand handles REPL-only `:` commands. Arguments are split with
// shellquote so a quoted path containing spaces works the same way it
// would on a shell command line.
func runMetaCommand(line, session string, hstore history.Store) {
	fields, err := shellquote.Split(line[1:])
	if err != nil || len(fields) == 0 {
		fmt.Fprintln(os.Stderr, "plox: malformed command")
		return
	}

	switch fields[0] {
	case "history":
		limit := 0
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				limit = n
			}
		}
		entries, err := hstore.Recent(session, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "plox: %v\n", err)
			return
		}
		for _, e := range entries {
			fmt.Printf("%3d  %s\n", e.Seq, e.Source)
		}
	default:
		fmt.Fprintf(os.Stderr, "plox: unknown command ':%s'\n", fields[0])
	}
}

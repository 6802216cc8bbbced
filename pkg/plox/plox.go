// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plox is the public API for the Lox interpreter: a Runtime that
// drives the scanner -> parser -> resolver -> evaluator pipeline over a
// source string. It mirrors the teacher's pkg/losp.Runtime — a thin facade
// over the internal evaluator, built from functional options — adapted to
// front a tree-walk pipeline instead of an operator-stream one.
package plox

import (
	"io"
	"os"
	"time"

	"github.com/RJ722/plox/internal/diagnostics"
	"github.com/RJ722/plox/internal/eval"
	"github.com/RJ722/plox/internal/parser"
	"github.com/RJ722/plox/internal/resolver"
	"github.com/RJ722/plox/internal/scanner"
)

// Runtime is a Lox interpreter runtime. One Runtime's environment state
// (global variables and their bindings) persists across successive Run
// calls, which is what lets a REPL build up definitions line by line.
type Runtime struct {
	interp  *eval.Interpreter
	reports *diagnostics.Console
	output  io.Writer
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

type runtimeConfig struct {
	stdout io.Writer
	stderr io.Writer
	clock  eval.Option
}

// WithStdout sets the writer `print` statements write to. Defaults to
// os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *runtimeConfig) { c.stdout = w }
}

// WithStderr sets the writer diagnostics are reported to. Defaults to
// os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *runtimeConfig) { c.stderr = w }
}

// WithClock overrides the wall-clock source the `clock` native reads, for
// deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *runtimeConfig) { c.clock = eval.WithClock(now) }
}

// New creates a Runtime with a fresh global environment.
func New(opts ...Option) *Runtime {
	cfg := &runtimeConfig{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}

	reports := diagnostics.NewConsole(cfg.stderr)
	evalOpts := []eval.Option{eval.WithOutput(cfg.stdout)}
	if cfg.clock != nil {
		evalOpts = append(evalOpts, cfg.clock)
	}

	return &Runtime{
		interp:  eval.New(reports, evalOpts...),
		reports: reports,
		output:  cfg.stdout,
	}
}

// Result reports what happened running a chunk of source, mirroring the
// CLI exit codes spec.md §6 specifies: ExitCode is 0 on success, 64 on any
// compile-time error, 70 on any runtime error.
type Result struct {
	ExitCode int
}

// Run scans, parses, resolves, and evaluates source against the Runtime's
// persistent global environment. Compile-time errors (scanning, parsing,
// resolving) skip evaluation entirely per spec.md §7.
func (r *Runtime) Run(source string) Result {
	tokens := scanner.New(source, r.reports).ScanTokens()
	stmts := parser.New(tokens, r.reports).Parse()

	if r.reports.HadError() {
		return Result{ExitCode: 64}
	}

	res := resolver.New(r.interp, r.reports)
	res.ResolveStmts(stmts)

	if r.reports.HadError() {
		return Result{ExitCode: 64}
	}

	if err := r.interp.Interpret(stmts); err != nil {
		return Result{ExitCode: 70}
	}

	return Result{ExitCode: 0}
}

// ResetError clears the compile-time error flag between REPL lines.
// HadRuntimeError persists for the lifetime of the process per spec.md §6.
func (r *Runtime) ResetError() {
	r.reports.Reset()
}

// HadRuntimeError reports whether any line run by this Runtime has hit a
// runtime error.
func (r *Runtime) HadRuntimeError() bool {
	return r.reports.HadRuntimeError()
}

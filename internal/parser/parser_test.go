// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"io"
	"testing"

	"github.com/RJ722/plox/internal/ast"
	"github.com/RJ722/plox/internal/diagnostics"
	"github.com/RJ722/plox/internal/scanner"
)

func parse(t *testing.T, source string) ([]ast.Stmt, *diagnostics.Console) {
	t.Helper()
	reports := diagnostics.NewConsole(io.Discard)
	tokens := scanner.New(source, reports).ScanTokens()
	stmts := New(tokens, reports).Parse()
	return stmts, reports
}

func TestParseExpressionStatement(t *testing.T) {
	stmts, reports := parse(t, "1 + 2 * 3;")
	if reports.HadError() {
		t.Fatalf("unexpected parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %T", stmts[0])
	}
	bin, ok := es.Expression.(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level Binary (plus), got %T", es.Expression)
	}
	if bin.Operator.Lexeme != "+" {
		t.Errorf("expected '+' at the top (lowest precedence binds last), got %q", bin.Operator.Lexeme)
	}
	if _, ok := bin.Right.(*ast.Binary); !ok {
		t.Errorf("expected right side to be the '*' subexpression, got %T", bin.Right)
	}
}

func TestParseVarDeclaration(t *testing.T) {
	stmts, reports := parse(t, `var a = "hi";`)
	if reports.HadError() {
		t.Fatalf("unexpected parse error")
	}
	v, ok := stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected VarStmt, got %T", stmts[0])
	}
	if v.Name.Lexeme != "a" {
		t.Errorf("expected name 'a', got %q", v.Name.Lexeme)
	}
	lit, ok := v.Initializer.(*ast.Literal)
	if !ok || lit.Value != "hi" {
		t.Errorf("expected initializer literal \"hi\", got %#v", v.Initializer)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, reports := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if reports.HadError() {
		t.Fatalf("unexpected parse error")
	}
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected desugared for loop to be a BlockStmt, got %T", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected [initializer, while], got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Errorf("expected first statement to be the initializer VarStmt, got %T", block.Statements[0])
	}
	if _, ok := block.Statements[1].(*ast.WhileStmt); !ok {
		t.Errorf("expected second statement to be the desugared WhileStmt, got %T", block.Statements[1])
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	stmts, reports := parse(t, "fun add(a, b) { return a + b; }")
	if reports.HadError() {
		t.Fatalf("unexpected parse error")
	}
	fn, ok := stmts[0].(*ast.FunctionStmt)
	if !ok {
		t.Fatalf("expected FunctionStmt, got %T", stmts[0])
	}
	if fn.Name.Lexeme != "add" {
		t.Errorf("expected name 'add', got %q", fn.Name.Lexeme)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.ReturnStmt); !ok {
		t.Errorf("expected body to be a ReturnStmt, got %T", fn.Body[0])
	}
}

func TestParseInvalidAssignmentTargetStillReturnsExpr(t *testing.T) {
	stmts, reports := parse(t, "1 + 2 = 3;")
	if !reports.HadError() {
		t.Fatalf("expected an 'Invalid assignment target' error")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected the statement to still parse despite the error, got %d statements", len(stmts))
	}
}

func TestParseMissingSemicolonRecovers(t *testing.T) {
	// The missing-';' error is reported at 'print'; synchronization discards
	// that token and the rest of its statement, then resumes at 'var b'.
	stmts, reports := parse(t, "var a = 1\nprint a;\nvar b = 2;")
	if !reports.HadError() {
		t.Fatalf("expected a missing-';' error")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected synchronization to skip the bad statement and parse the next one, got %d statements", len(stmts))
	}
	v, ok := stmts[0].(*ast.VarStmt)
	if !ok || v.Name.Lexeme != "b" {
		t.Errorf("expected the recovered statement to be 'var b', got %#v", stmts[0])
	}
}

func TestParseTooManyArguments(t *testing.T) {
	src := "fn("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ","
		}
		src += "1"
	}
	src += ");"
	_, reports := parse(t, src)
	if !reports.HadError() {
		t.Fatalf("expected a 'Can't have more than 255 arguments' error")
	}
}

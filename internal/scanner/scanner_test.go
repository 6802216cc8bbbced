// SPDX-License-Identifier: AGPL-3.0-or-later

package scanner

import (
	"io"
	"testing"

	"github.com/RJ722/plox/internal/diagnostics"
	"github.com/RJ722/plox/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func eqKinds(t *testing.T, got []token.Kind, want ...token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestScanTokensPunctuation(t *testing.T) {
	reports := diagnostics.NewConsole(io.Discard)
	toks := New("(){}, . - + ; * != == <= >= < > = /", reports).ScanTokens()
	eqKinds(t, kinds(toks),
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.LESS, token.GREATER, token.EQUAL, token.SLASH, token.EOF)
	if reports.HadError() {
		t.Fatalf("unexpected scan error")
	}
}

func TestScanLineComment(t *testing.T) {
	reports := diagnostics.NewConsole(io.Discard)
	toks := New("1 // this is ignored\n2", reports).ScanTokens()
	eqKinds(t, kinds(toks), token.NUMBER, token.NUMBER, token.EOF)
	if toks[1].Line != 2 {
		t.Errorf("expected second number on line 2, got %d", toks[1].Line)
	}
}

func TestScanString(t *testing.T) {
	reports := diagnostics.NewConsole(io.Discard)
	toks := New(`"hello world"`, reports).ScanTokens()
	eqKinds(t, kinds(toks), token.STRING, token.EOF)
	if toks[0].Literal != "hello world" {
		t.Errorf("expected literal 'hello world', got %v", toks[0].Literal)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	reports := diagnostics.NewConsole(io.Discard)
	New(`"unterminated`, reports).ScanTokens()
	if !reports.HadError() {
		t.Fatalf("expected an error for an unterminated string")
	}
}

func TestScanNumber(t *testing.T) {
	reports := diagnostics.NewConsole(io.Discard)
	toks := New("123.45", reports).ScanTokens()
	eqKinds(t, kinds(toks), token.NUMBER, token.EOF)
	if toks[0].Literal != 123.45 {
		t.Errorf("expected literal 123.45, got %v", toks[0].Literal)
	}
}

func TestScanIdentifierAndKeywords(t *testing.T) {
	reports := diagnostics.NewConsole(io.Discard)
	toks := New("var _hidden = foo and true", reports).ScanTokens()
	eqKinds(t, kinds(toks),
		token.VAR, token.IDENTIFIER, token.EQUAL, token.IDENTIFIER, token.AND, token.TRUE, token.EOF)
	if toks[1].Lexeme != "_hidden" {
		t.Errorf("expected leading underscore identifier, got %q", toks[1].Lexeme)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	reports := diagnostics.NewConsole(io.Discard)
	New("@", reports).ScanTokens()
	if !reports.HadError() {
		t.Fatalf("expected an error for an unexpected character")
	}
}

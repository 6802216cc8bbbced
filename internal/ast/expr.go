// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ast defines the syntax tree the parser produces: tagged variants
// for expressions and statements, dispatched by type switch in the resolver
// and evaluator rather than through a visitor interface. Each expression
// node is used by pointer, so its address is a stable identity — the
// resolver keys its depth side-channel on that identity (see
// internal/resolver and the locals map in internal/eval's Interpreter).
package ast

import "github.com/RJ722/plox/internal/token"

// Expr is the marker interface implemented by every expression node.
type Expr interface {
	exprNode()
}

// Literal is a literal value: number, string, boolean, or nil.
type Literal struct {
	Value any
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Expression Expr
}

// Unary is a prefix operator applied to a single operand.
type Unary struct {
	Operator token.Token
	Right    Expr
}

// Binary is an infix operator applied to two operands.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Logical is `and`/`or`, which short-circuit unlike Binary.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Variable is a reference to a named variable.
type Variable struct {
	Name token.Token
}

// Assign assigns a new value to an existing variable.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Call invokes a callee with a list of argument expressions.
type Call struct {
	Callee Expr
	Paren  token.Token // closing ')' token, used for error locations
	Args   []Expr
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}

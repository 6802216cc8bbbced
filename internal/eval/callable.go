// SPDX-License-Identifier: AGPL-3.0-or-later

package eval

import (
	"github.com/RJ722/plox/internal/ast"
	"github.com/RJ722/plox/internal/environment"
)

// Callable is any value that can appear as the operand of a Call
// expression: it has an arity and an invocation operation.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []any) (any, error)
	String() string
}

// Function is a user-defined Lox function: a declaration paired with the
// environment captured at the point the function statement executed. That
// capture, not the environment active at call time, is what makes closures
// work (spec.md §3 invariants).
type Function struct {
	Declaration *ast.FunctionStmt
	Closure     *environment.Environment
}

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) String() string { return "<fn " + f.Declaration.Name.Lexeme + ">" }

func (f *Function) Call(interp *Interpreter, args []any) (any, error) {
	env := environment.NewEnclosed(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	result, err := interp.executeBlock(f.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if result.outcome == outcomeReturn {
		return result.value, nil
	}
	return nil, nil
}

// native wraps a Go function as a zero-or-more-arity Lox callable, the
// shape `clock` and any future builtins take.
type native struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []any) (any, error)
}

func (n *native) Arity() int { return n.arity }

func (n *native) String() string { return "<native fn>" }

func (n *native) Call(interp *Interpreter, args []any) (any, error) {
	return n.fn(interp, args)
}

// SPDX-License-Identifier: AGPL-3.0-or-later

// Package eval walks a resolved statement list against a chain of lexical
// environments, producing printed output or a runtime error. It is the
// evaluator component of spec.md §4.4, adapted from the teacher's
// Evaluator: the same functional-options construction and Option type, now
// configuring a tree-walk interpreter instead of an operator-stream one.
package eval

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/RJ722/plox/internal/ast"
	"github.com/RJ722/plox/internal/diagnostics"
	"github.com/RJ722/plox/internal/environment"
	"github.com/RJ722/plox/internal/token"
)

// execOutcome distinguishes a statement that ran to completion from one
// that triggered `return`. This is the "Outcome sum" design.md alternative
// to unwinding via panic/recover: Normal and Return propagate as ordinary
// return values through execute/executeBlock, and a Return outcome short-
// circuits every enclosing block and loop until the calling Function.Call
// converts it back into an ordinary value.
type execOutcome int

const (
	outcomeNormal execOutcome = iota
	outcomeReturn
)

type execResult struct {
	outcome execOutcome
	value   any
}

// Interpreter evaluates a resolved Lox program. The zero value is not
// usable; construct with New.
type Interpreter struct {
	globals     *environment.Environment
	environment *environment.Environment
	locals      map[ast.Expr]int
	reports     diagnostics.Reporter
	output      io.Writer
	now         func() time.Time
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the writer `print` statements write to. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.output = w }
}

// WithClock overrides the wall-clock source the `clock` native reads,
// for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// New creates an Interpreter reporting diagnostics to reports, with a
// global environment seeded with the `clock` native (spec.md §6).
func New(reports diagnostics.Reporter, opts ...Option) *Interpreter {
	globals := environment.New()
	i := &Interpreter{
		globals: globals,
		locals:  make(map[ast.Expr]int),
		reports: reports,
		output:  os.Stdout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.environment = i.globals

	globals.Define("clock", &native{
		name:  "clock",
		arity: 0,
		fn: func(interp *Interpreter, args []any) (any, error) {
			return float64(interp.now().UnixNano()) / 1e9, nil
		},
	})

	return i
}

// Resolve records the scope depth at which expr should be looked up,
// satisfying resolver.Interpreter. It is called once per Variable/Assign
// node before Interpret runs.
func (i *Interpreter) Resolve(expr ast.Expr, depth int) {
	i.locals[expr] = depth
}

// Interpret executes a resolved statement list. Execution halts at the
// first runtime error; the error is also reported to the diagnostics sink
// so the caller only needs to check its own exit-code logic once.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		result, err := i.execute(stmt)
		if err != nil {
			if rerr, ok := err.(*diagnostics.RuntimeError); ok {
				i.reports.RuntimeError(rerr)
			}
			return err
		}
		if result.outcome == outcomeReturn {
			// A bare top-level `return` is a resolver-time error already
			// reported; nothing further to do here.
			return nil
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) (execResult, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return execResult{}, err

	case *ast.PrintStmt:
		v, err := i.evaluate(s.Expression)
		if err != nil {
			return execResult{}, err
		}
		fmt.Fprintln(i.output, stringify(v))
		return execResult{}, nil

	case *ast.VarStmt:
		var value any
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return execResult{}, err
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return execResult{}, nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, environment.NewEnclosed(i.environment))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return execResult{}, err
		}
		if isTruthy(cond) {
			return i.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return i.execute(s.ElseBranch)
		}
		return execResult{}, nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return execResult{}, err
			}
			if !isTruthy(cond) {
				return execResult{}, nil
			}
			result, err := i.execute(s.Body)
			if err != nil || result.outcome == outcomeReturn {
				return result, err
			}
		}

	case *ast.FunctionStmt:
		fn := &Function{Declaration: s, Closure: i.environment}
		i.environment.Define(s.Name.Lexeme, fn)
		return execResult{}, nil

	case *ast.ReturnStmt:
		var value any
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return execResult{}, err
			}
			value = v
		}
		return execResult{outcome: outcomeReturn, value: value}, nil
	}

	return execResult{}, fmt.Errorf("unreachable statement type %T", stmt)
}

// executeBlock runs stmts in env, restoring the previous current
// environment on every exit path — normal completion, a Return outcome, or
// a runtime error propagating out.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) (execResult, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range stmts {
		result, err := i.execute(stmt)
		if err != nil || result.outcome == outcomeReturn {
			return result, err
		}
	}
	return execResult{}, nil
}

func (i *Interpreter) evaluate(expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return i.evaluate(e.Expression)

	case *ast.Unary:
		right, err := i.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Operator.Kind {
		case token.MINUS:
			n, err := i.checkNumberOperand(e.Operator, right)
			if err != nil {
				return nil, err
			}
			return -n, nil
		case token.BANG:
			return !isTruthy(right), nil
		}

	case *ast.Variable:
		return i.lookupVariable(e.Name, e)

	case *ast.Assign:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := i.locals[e]; ok {
			i.environment.AssignAt(depth, e.Name.Lexeme, value)
		} else if err := i.globals.Assign(e.Name.Lexeme, value); err != nil {
			return nil, i.runtimeError(e.Name, "Undefined variable '"+e.Name.Lexeme+"'.")
		}
		return value, nil

	case *ast.Logical:
		left, err := i.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Kind == token.OR {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return i.evaluate(e.Right)

	case *ast.Binary:
		return i.evaluateBinary(e)

	case *ast.Call:
		return i.evaluateCall(e)
	}

	return nil, fmt.Errorf("unreachable expression type %T", expr)
}

func (i *Interpreter) evaluateBinary(e *ast.Binary) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.MINUS:
		l, r, err := i.checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.SLASH:
		l, r, err := i.checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, i.runtimeError(e.Operator, "Division by zero.")
		}
		return l / r, nil
	case token.STAR:
		l, r, err := i.checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, i.runtimeError(e.Operator, "Operands must be two numbers or two strings.")
	case token.GREATER:
		l, r, err := i.checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GREATER_EQUAL:
		l, r, err := i.checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.LESS:
		l, r, err := i.checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LESS_EQUAL:
		l, r, err := i.checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	}

	return nil, fmt.Errorf("unreachable binary operator %v", e.Operator.Kind)
}

func (i *Interpreter) evaluateCall(e *ast.Call) (any, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, i.runtimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, i.runtimeError(e.Paren, fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}
	return fn.Call(i, args)
}

func (i *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (any, error) {
	if depth, ok := i.locals[expr]; ok {
		return i.environment.GetAt(depth, name.Lexeme), nil
	}
	v, err := i.globals.Get(name.Lexeme)
	if err != nil {
		return nil, i.runtimeError(name, "Undefined variable '"+name.Lexeme+"'.")
	}
	return v, nil
}

func (i *Interpreter) checkNumberOperand(op token.Token, v any) (float64, error) {
	if n, ok := v.(float64); ok {
		return n, nil
	}
	return 0, i.runtimeError(op, "Operand must be a number.")
}

func (i *Interpreter) checkNumberOperands(op token.Token, left, right any) (float64, float64, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if lok && rok {
		return ln, rn, nil
	}
	return 0, 0, i.runtimeError(op, "Operands must be numbers.")
}

func (i *Interpreter) runtimeError(tok token.Token, message string) *diagnostics.RuntimeError {
	return &diagnostics.RuntimeError{Token: tok, Message: message}
}

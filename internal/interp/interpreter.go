// Package interp implements the tree-walking evaluator, together with
// the Environment it threads through (environment.go), the runtime
// Value domain (value.go), and the Callable bridge between user
// functions and natives (callable.go, natives.go).
package interp

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/loxerror"
	"github.com/cwbudde/go-lox/internal/resolver"
	"github.com/cwbudde/go-lox/internal/token"
)

// controlReturn is the non-local control signal a `return` statement
// raises: it unwinds nested Block/While/If execution until caught at
// a UserFunction.Call boundary. It
// implements `error` purely so it can travel through the same
// propagation path as a genuine runtime error; it must never reach the
// top-level reporter (the resolver rejects top-level `return` so this
// invariant holds by construction).
type controlReturn struct {
	value Value
}

func (controlReturn) Error() string { return "return outside function (internal control signal)" }

// Interpreter executes a resolved ast.Program. It holds two shared
// Environment references: globals (fixed for the interpreter's
// lifetime) and environment (the current scope, initially globals).
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      resolver.Locals
	stdout      io.Writer
}

// New constructs an Interpreter with a fresh globals environment
// pre-populated with native functions, writing `print` output to
// stdout.
func New(stdout io.Writer) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{globals: globals, environment: globals, stdout: stdout}
	registerNatives(globals)
	return i
}

// Resolve attaches the resolver's distance table, computed by a
// separate pass between parsing and evaluation. Callers
// must call this (or leave locals nil, degrading every reference to a
// dynamic global lookup) before Interpret.
func (i *Interpreter) Resolve(locals resolver.Locals) {
	i.locals = locals
}

// Interpret executes every statement in program in order. It returns
// the first runtime error encountered (already anchored on the
// operator/name token responsible), or nil on normal completion.
func (i *Interpreter) Interpret(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) runtimeErr(line int, format string, args ...any) error {
	return loxerror.RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// EvaluateExpr evaluates a single expression and returns its Value.
// Used by the `evaluate` CLI subcommand, which operates on one
// expression with no enclosing program to resolve: every variable
// reference in it is necessarily a global lookup, so no
// resolver.Locals table is required.
func (i *Interpreter) EvaluateExpr(expr ast.Expr) (Value, error) {
	return i.evaluate(expr)
}

// ---- statement execution ---------------------------------------------

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		val, err := i.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, val.String())
		return nil

	case *ast.VarStmt:
		value := LiteralValue(token.NilLiteral)
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnclosedEnvironment(i.environment))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return i.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return i.execute(s.ElseBranch)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := CallableValue(&UserFunction{Declaration: s}, i.environment)
		i.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		value := LiteralValue(token.NilLiteral)
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return controlReturn{value: value}

	default:
		panic("interp: unhandled statement type")
	}
}

// executeBlock runs statements in env, restoring the interpreter's
// previous environment on every exit path: normal completion, an early
// controlReturn, or a propagated runtime error.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---- expression evaluation --------------------------------------------

func (i *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return LiteralValue(e.Value), nil

	case *ast.GroupingExpr:
		return i.evaluate(e.Expression)

	case *ast.UnaryExpr:
		return i.evalUnary(e)

	case *ast.BinaryExpr:
		return i.evalBinary(e)

	case *ast.LogicalExpr:
		return i.evalLogical(e)

	case *ast.VariableExpr:
		return i.lookupVariable(e.Name, e)

	case *ast.AssignExpr:
		return i.evalAssign(e)

	case *ast.CallExpr:
		return i.evalCall(e)

	default:
		panic("interp: unhandled expression type")
	}
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Operator.Type {
	case token.MINUS:
		n, ok := right.Literal.IsNumber()
		if right.IsCallable() || !ok {
			return Value{}, i.runtimeErr(e.Operator.Line, "Operand must be a number.")
		}
		return LiteralValue(token.NumberLiteral(-n)), nil
	case token.BANG:
		return LiteralValue(token.BoolLiteral(!right.Truthy())), nil
	default:
		panic("interp: unhandled unary operator")
	}
}

// evalBinary evaluates left then right; the order is observable when
// either side has side effects.
func (i *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Operator.Type {
	case token.PLUS:
		if ln, lok := left.Literal.IsNumber(); lok {
			if rn, rok := right.Literal.IsNumber(); rok {
				return LiteralValue(token.NumberLiteral(ln + rn)), nil
			}
		}
		if ls, lok := left.Literal.IsString(); lok {
			if rs, rok := right.Literal.IsString(); rok {
				return LiteralValue(token.StringLiteral(ls + rs)), nil
			}
		}
		return Value{}, i.runtimeErr(e.Operator.Line, "Operands must be two numbers or two strings.")

	case token.MINUS, token.STAR, token.SLASH:
		ln, rn, ok := bothNumbers(left, right)
		if !ok {
			return Value{}, i.runtimeErr(e.Operator.Line, "Operands must be numbers.")
		}
		switch e.Operator.Type {
		case token.MINUS:
			return LiteralValue(token.NumberLiteral(ln - rn)), nil
		case token.STAR:
			return LiteralValue(token.NumberLiteral(ln * rn)), nil
		default:
			return LiteralValue(token.NumberLiteral(ln / rn)), nil
		}

	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, rn, ok := bothNumbers(left, right)
		if !ok {
			return Value{}, i.runtimeErr(e.Operator.Line, "Operands must be numbers.")
		}
		var result bool
		switch e.Operator.Type {
		case token.GREATER:
			result = ln > rn
		case token.GREATER_EQUAL:
			result = ln >= rn
		case token.LESS:
			result = ln < rn
		case token.LESS_EQUAL:
			result = ln <= rn
		}
		return LiteralValue(token.BoolLiteral(result)), nil

	case token.EQUAL_EQUAL:
		return LiteralValue(token.BoolLiteral(valuesEqual(left, right))), nil
	case token.BANG_EQUAL:
		return LiteralValue(token.BoolLiteral(!valuesEqual(left, right))), nil

	default:
		panic("interp: unhandled binary operator")
	}
}

func bothNumbers(left, right Value) (float64, float64, bool) {
	ln, lok := left.Literal.IsNumber()
	rn, rok := right.Literal.IsNumber()
	if left.IsCallable() || right.IsCallable() || !lok || !rok {
		return 0, 0, false
	}
	return ln, rn, true
}

// valuesEqual implements structural Literal equality; two Callables
// are never equal.
func valuesEqual(left, right Value) bool {
	if left.IsCallable() || right.IsCallable() {
		return false
	}
	return left.Literal.Equal(right.Literal)
}

// evalLogical short-circuits and returns the operand value unchanged,
// not a coerced boolean.
func (i *Interpreter) evalLogical(e *ast.LogicalExpr) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return Value{}, err
	}

	if e.Operator.Type == token.OR {
		if left.Truthy() {
			return left, nil
		}
	} else {
		if !left.Truthy() {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) lookupVariable(name token.Token, ref ast.Expr) (Value, error) {
	if distance, ok := i.locals[ref]; ok {
		if val, ok := i.environment.GetAt(distance, name.Lexeme); ok {
			return val, nil
		}
	} else if val, ok := i.globals.Get(name.Lexeme); ok {
		return val, nil
	}
	return Value{}, i.runtimeErr(name.Line, "Undefined variable '%s'.", name.Lexeme)
}

func (i *Interpreter) evalAssign(e *ast.AssignExpr) (Value, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return Value{}, err
	}

	if distance, ok := i.locals[e]; ok {
		i.environment.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}
	if err := i.globals.Assign(e.Name.Lexeme, value); err != nil {
		return Value{}, i.runtimeErr(e.Name.Line, "%s", err.Error())
	}
	return value, nil
}

func (i *Interpreter) evalCall(e *ast.CallExpr) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return Value{}, err
	}

	if !callee.IsCallable() {
		return Value{}, i.runtimeErr(e.Paren.Line, "Can only call functions and classes.")
	}

	args := make([]Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg, err := i.evaluate(argExpr)
		if err != nil {
			return Value{}, err
		}
		args = append(args, arg)
	}

	if len(args) != callee.Callable.Arity() {
		return Value{}, i.runtimeErr(e.Paren.Line, "Expected %d arguments but got %d.", callee.Callable.Arity(), len(args))
	}

	result, err := callee.Callable.Call(i, callee.ClosureEnv, args)
	if err != nil {
		return Value{}, err
	}
	return result, nil
}

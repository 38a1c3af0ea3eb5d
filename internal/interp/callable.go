package interp

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/token"
)

// Callable is a value that can be invoked: a user-defined function or
// a native one. The environment a Callable closes over
// travels alongside it in the Value carrier (see value.go), not inside
// the Callable itself — this is what lets the same *ast.FunctionStmt
// be captured fresh for each declaration-time environment without the
// Callable needing to know about environments at all.
type Callable interface {
	Arity() int
	Call(i *Interpreter, closureEnv *Environment, args []Value) (Value, error)
	String() string
}

// UserFunction wraps a parsed function declaration. It retains an
// owned reference to the *ast.FunctionStmt the parser produced; no
// back-reference to its Value carrier exists, so no cycle forms
// between the function value and the environment it closes over.
type UserFunction struct {
	Declaration *ast.FunctionStmt
}

// Arity is the declared parameter count.
func (f *UserFunction) Arity() int {
	return len(f.Declaration.Params)
}

// Call creates a new environment enclosing closureEnv — never the
// caller's current environment — binds each parameter to its
// argument, and executes the body. Using the closure environment as
// the parent is what makes closures work.
func (f *UserFunction) Call(i *Interpreter, closureEnv *Environment, args []Value) (Value, error) {
	callEnv := NewEnclosedEnvironment(closureEnv)
	for idx, param := range f.Declaration.Params {
		callEnv.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(f.Declaration.Body, callEnv)
	if err == nil {
		return LiteralValue(token.NilLiteral), nil
	}
	if ret, ok := err.(controlReturn); ok {
		return ret.value, nil
	}
	return Value{}, err
}

func (f *UserFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

// NativeFunction bridges a Go function into the Callable interface.
type NativeFunction struct {
	Name   string
	ArityN int
	Fn     func(args []Value) (Value, error)
}

func (f *NativeFunction) Arity() int { return f.ArityN }

func (f *NativeFunction) Call(_ *Interpreter, _ *Environment, args []Value) (Value, error) {
	return f.Fn(args)
}

func (f *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", f.Name)
}

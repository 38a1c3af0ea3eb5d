package interp

import "github.com/cwbudde/go-lox/internal/token"

// Value is the runtime domain expressions evaluate over: either a
// plain Literal or a Callable paired with the environment that was
// current at its point of declaration. Go has no sum types, so the
// two cases are distinguished by a bool flag instead of an enum
// discriminant.
type Value struct {
	Literal    token.Literal
	Callable   Callable
	ClosureEnv *Environment
	isCallable bool
}

// LiteralValue lifts a token.Literal into a Value.
func LiteralValue(l token.Literal) Value {
	return Value{Literal: l}
}

// CallableValue bundles a Callable with the environment captured at
// the moment its declaration was evaluated. Native functions carry
// closureEnv equal to globals; this is a uniformity device, not a
// semantic one.
func CallableValue(c Callable, closureEnv *Environment) Value {
	return Value{Callable: c, ClosureEnv: closureEnv, isCallable: true}
}

// IsCallable reports whether v holds a Callable rather than a Literal.
func (v Value) IsCallable() bool {
	return v.isCallable
}

// Truthy implements Lox truthiness: every Value except
// Nil and Boolean(false) is truthy, including any Callable.
func (v Value) Truthy() bool {
	if v.isCallable {
		return true
	}
	return v.Literal.Truthy()
}

// String renders v the way `print` and the `evaluate` subcommand do
// (Callable.String for functions).
func (v Value) String() string {
	if v.isCallable {
		return v.Callable.String()
	}
	return v.Literal.String()
}

// TypeName returns the reflection name the `type()` native reports:
// "nil", "boolean", "number", "string", or "function".
func (v Value) TypeName() string {
	if v.isCallable {
		return "function"
	}
	switch {
	case v.Literal.IsNil():
		return "nil"
	default:
		if _, ok := v.Literal.IsBool(); ok {
			return "boolean"
		}
		if _, ok := v.Literal.IsNumber(); ok {
			return "number"
		}
		if _, ok := v.Literal.IsString(); ok {
			return "string"
		}
		return "nil"
	}
}

package interp

import (
	"time"

	"github.com/cwbudde/go-lox/internal/token"
)

// registerNatives pre-populates globals with the native function
// registry. Each native is registered as a CallableValue whose closure
// environment is globals itself, a uniformity device rather than a
// semantic one.
func registerNatives(globals *Environment) {
	register := func(name string, arity int, fn func(args []Value) (Value, error)) {
		native := &NativeFunction{Name: name, ArityN: arity, Fn: fn}
		globals.Define(name, CallableValue(native, globals))
	}

	// clock() — seconds since the Unix epoch, as a float.
	register("clock", 0, func(args []Value) (Value, error) {
		return LiteralValue(token.NumberLiteral(float64(time.Now().UnixNano()) / 1e9)), nil
	})

	// str(value) — the string form of any value's print representation,
	// as a Lox string.
	register("str", 1, func(args []Value) (Value, error) {
		return LiteralValue(token.StringLiteral(args[0].String())), nil
	})

	// type(value) — reflection primitive returning one of "nil",
	// "boolean", "number", "string", "function".
	register("type", 1, func(args []Value) (Value, error) {
		return LiteralValue(token.StringLiteral(args[0].TypeName())), nil
	})
}

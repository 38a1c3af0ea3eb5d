package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/cwbudde/go-lox/internal/interp"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/cwbudde/go-lox/internal/resolver"
	"github.com/gkampitakis/go-snaps/snaps"
)

// goldenPrograms is a representative sample of complete Lox programs run
// through the full scan/parse/resolve/evaluate pipeline, with output
// snapshotted by go-snaps.
var goldenPrograms = map[string]string{
	"fibonacci": `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
for (var i = 0; i < 8; i = i + 1) {
  print fib(i);
}
`,
	"closures_counter": `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    print count;
  }
  return increment;
}
var counter = makeCounter();
counter();
counter();
counter();
`,
	"shadowing_and_scope": `
var a = "global";
{
  var a = "block";
  print a;
}
print a;
`,
	"short_circuit_values": `
print "hi" or 2;
print nil or "last";
print false and "skipped";
`,
	"string_and_number_ops": `
print "count: " + str(3 * 4);
print type(1);
print type("x");
print type(nil);
print type(true);
`,
}

func TestGoldenPrograms(t *testing.T) {
	for name, source := range goldenPrograms {
		t.Run(name, func(t *testing.T) {
			output, err := runSource(source)
			if err != nil {
				t.Fatalf("unexpected error running %s: %v", name, err)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_output", name), output)
		})
	}
}

// runSource runs a complete program through the same pipeline stages
// `lox run` drives, without going through the cobra command layer.
func runSource(source string) (string, error) {
	l := lexer.New(source)
	tokens := l.ScanTokens()
	if errs := l.Errors(); len(errs) > 0 {
		return "", fmt.Errorf("scan error: %v", errs[0])
	}

	p := parser.New(tokens)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return "", fmt.Errorf("parse error: %v", errs[0])
	}

	res := resolver.New()
	locals := res.Resolve(program)
	if errs := res.Errors(); len(errs) > 0 {
		return "", fmt.Errorf("resolve error: %v", errs[0])
	}

	var buf bytes.Buffer
	interpreter := interp.New(&buf)
	interpreter.Resolve(locals)
	if err := interpreter.Interpret(program); err != nil {
		return "", err
	}
	return buf.String(), nil
}

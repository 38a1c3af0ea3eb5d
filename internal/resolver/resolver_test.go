package resolver

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
)

func resolve(t *testing.T, source string) (*ast.Program, Locals, []Error) {
	t.Helper()
	tokens := lexer.New(source).ScanTokens()
	p := parser.New(tokens)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors in test source: %v", errs)
	}
	r := New()
	locals := r.Resolve(program)
	return program, locals, r.Errors()
}

func TestResolveDistancesAndGlobalOmission(t *testing.T) {
	// a is global (never recorded); b is one block out from the inner
	// block; c is read in its own scope at distance 0.
	program, locals, errs := resolve(t, `
var a = 1;
{
  var b = 2;
  {
    var c = 3;
    print c;
    print b;
    print a;
  }
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	outer := program.Statements[1].(*ast.BlockStmt)
	inner := outer.Statements[1].(*ast.BlockStmt)

	refC := inner.Statements[1].(*ast.PrintStmt).Expression.(*ast.VariableExpr)
	refB := inner.Statements[2].(*ast.PrintStmt).Expression.(*ast.VariableExpr)
	refA := inner.Statements[3].(*ast.PrintStmt).Expression.(*ast.VariableExpr)

	if d, ok := locals[refC]; !ok || d != 0 {
		t.Fatalf("c: got (%d, %v), want distance 0", d, ok)
	}
	if d, ok := locals[refB]; !ok || d != 1 {
		t.Fatalf("b: got (%d, %v), want distance 1", d, ok)
	}
	if _, ok := locals[refA]; ok {
		t.Fatalf("a is global and must not be recorded in Locals")
	}
}

func TestResolveClosureFreeVariableDistance(t *testing.T) {
	program, locals, errs := resolve(t, `
fun outer() {
  var x = 1;
  fun inner() {
    print x;
  }
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	outer := program.Statements[0].(*ast.FunctionStmt)
	inner := outer.Body[1].(*ast.FunctionStmt)
	refX := inner.Body[0].(*ast.PrintStmt).Expression.(*ast.VariableExpr)

	// inner's body scope is one hop inside outer's body scope, where x
	// is declared.
	if d, ok := locals[refX]; !ok || d != 1 {
		t.Fatalf("x: got (%d, %v), want distance 1", d, ok)
	}
}

func TestResolveAssignmentTarget(t *testing.T) {
	program, locals, errs := resolve(t, `
{
  var n = 0;
  n = n + 1;
}
`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	block := program.Statements[0].(*ast.BlockStmt)
	assign := block.Statements[1].(*ast.ExpressionStmt).Expression.(*ast.AssignExpr)

	if d, ok := locals[assign]; !ok || d != 0 {
		t.Fatalf("assignment target: got (%d, %v), want distance 0", d, ok)
	}
}

func TestDuplicateDeclarationInSameScopeIsError(t *testing.T) {
	_, _, errs := resolve(t, `{ var a = 1; var a = 2; }`)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Message != "Already a variable with this name in this scope." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	_, _, errs := resolve(t, `{ var a = 1; { var a = 2; print a; } }`)
	if len(errs) != 0 {
		t.Fatalf("shadowing in a nested scope must not error, got %v", errs)
	}
}

func TestReadInOwnInitializerIsError(t *testing.T) {
	_, _, errs := resolve(t, `{ var a = a; }`)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Message != "Can't read local variable in its own initializer." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestTopLevelReturnIsError(t *testing.T) {
	_, _, errs := resolve(t, `return 1;`)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Message != "Can't return from top-level code." {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
	if !strings.Contains(errs[0].Error(), "[line 1]") {
		t.Fatalf("expected line anchor in %q", errs[0].Error())
	}
}

func TestReturnInsideFunctionIsAllowed(t *testing.T) {
	_, _, errs := resolve(t, `fun f() { return 1; }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestTwoReferencesOnOneLineResolveIndependently(t *testing.T) {
	// The reason Locals is keyed on node pointers rather than on
	// (line, lexeme): both sides of `n = n + 1` name n on one line.
	program, locals, errs := resolve(t, `{ var n = 0; n = n + 1; }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	block := program.Statements[0].(*ast.BlockStmt)
	assign := block.Statements[1].(*ast.ExpressionStmt).Expression.(*ast.AssignExpr)
	read := assign.Value.(*ast.BinaryExpr).Left.(*ast.VariableExpr)

	if _, ok := locals[assign]; !ok {
		t.Fatalf("write side of n = n + 1 not resolved")
	}
	if _, ok := locals[read]; !ok {
		t.Fatalf("read side of n = n + 1 not resolved")
	}
}

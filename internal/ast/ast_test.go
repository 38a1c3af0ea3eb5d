package ast

import (
	"testing"

	"github.com/cwbudde/go-lox/internal/token"
)

func TestBinaryExprString(t *testing.T) {
	expr := &BinaryExpr{
		Left:     &LiteralExpr{Value: token.NumberLiteral(1)},
		Operator: token.New(token.PLUS, "+", 1),
		Right:    &LiteralExpr{Value: token.NumberLiteral(2)},
	}
	if got, want := expr.String(), "(+ 1.0 2.0)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGroupingExprString(t *testing.T) {
	expr := &GroupingExpr{Expression: &LiteralExpr{Value: token.StringLiteral("hi")}}
	if got, want := expr.String(), "(group hi)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnaryExprString(t *testing.T) {
	expr := &UnaryExpr{
		Operator: token.New(token.MINUS, "-", 1),
		Right:    &LiteralExpr{Value: token.NumberLiteral(3)},
	}
	if got, want := expr.String(), "(- 3.0)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestVariableExprPointerIdentity(t *testing.T) {
	a := &VariableExpr{Name: token.New(token.IDENTIFIER, "x", 1)}
	b := &VariableExpr{Name: token.New(token.IDENTIFIER, "x", 1)}
	if a == b {
		t.Fatalf("expected two distinct VariableExpr allocations to have distinct pointer identity")
	}

	m := map[Expr]int{}
	m[a] = 0
	m[b] = 1
	if len(m) != 2 {
		t.Fatalf("expected map keyed on *VariableExpr pointer to hold both nodes separately, got %d entries", len(m))
	}
}

func TestProgramString(t *testing.T) {
	prog := &Program{
		Statements: []Stmt{
			&PrintStmt{Expression: &LiteralExpr{Value: token.StringLiteral("hi")}},
		},
	}
	if got, want := prog.String(), "(print hi)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBlockStmtString(t *testing.T) {
	stmt := &BlockStmt{
		Statements: []Stmt{
			&VarStmt{Name: token.New(token.IDENTIFIER, "a", 1)},
		},
	}
	if got, want := stmt.String(), "(block (var a))"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

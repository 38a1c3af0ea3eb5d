// Package ast defines the abstract syntax tree produced by the parser
// and walked by the resolver and the evaluator.
package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-lox/internal/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	// String renders the node in the fully parenthesized prefix form
	// the `parse` CLI subcommand prints.
	String() string
}

// Expr is any node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed Lox program: an ordered list of
// top-level statements.
type Program struct {
	Statements []Stmt
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// ---- Expressions ----------------------------------------------------

// BinaryExpr is `left operator right`.
type BinaryExpr struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return parenthesize(b.Operator.Lexeme, b.Left, b.Right)
}

// GroupingExpr is a parenthesized sub-expression.
type GroupingExpr struct {
	Expression Expr
}

func (*GroupingExpr) exprNode() {}
func (g *GroupingExpr) String() string {
	return parenthesize("group", g.Expression)
}

// LiteralExpr lifts a scanned literal value into an expression.
type LiteralExpr struct {
	Value token.Literal
}

func (*LiteralExpr) exprNode() {}
func (l *LiteralExpr) String() string {
	return l.Value.String()
}

// UnaryExpr is `operator right` (`-x`, `!x`).
type UnaryExpr struct {
	Operator token.Token
	Right    Expr
}

func (*UnaryExpr) exprNode() {}
func (u *UnaryExpr) String() string {
	return parenthesize(u.Operator.Lexeme, u.Right)
}

// VariableExpr reads a variable by name. Its own pointer identity is
// the resolver's map key — two distinct `x` references at the same line are two
// distinct *VariableExpr values because the parser allocates one node
// per reference.
type VariableExpr struct {
	Name token.Token
}

func (*VariableExpr) exprNode() {}
func (v *VariableExpr) String() string {
	return v.Name.Lexeme
}

// AssignExpr is `name = value`. Like VariableExpr, its pointer
// identity is the resolver's map key for the write side.
type AssignExpr struct {
	Name  token.Token
	Value Expr
}

func (*AssignExpr) exprNode() {}
func (a *AssignExpr) String() string {
	return parenthesize("= "+a.Name.Lexeme, a.Value)
}

// LogicalExpr is `left and right` / `left or right`. Kept distinct
// from BinaryExpr so the evaluator's short-circuit logic doesn't
// have to special-case two operators inside the arithmetic/comparison
// switch.
type LogicalExpr struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*LogicalExpr) exprNode() {}
func (l *LogicalExpr) String() string {
	return parenthesize(l.Operator.Lexeme, l.Left, l.Right)
}

// CallExpr is `callee(arguments...)`. Paren is the token of the
// closing `)`, kept for runtime-error line reporting (the
// arity-mismatch error is anchored there).
type CallExpr struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

func (*CallExpr) exprNode() {}
func (c *CallExpr) String() string {
	parts := make([]Expr, 0, len(c.Arguments)+1)
	parts = append(parts, c.Callee)
	parts = append(parts, c.Arguments...)
	return parenthesize("call", parts...)
}

// ---- Statements -------------------------------------------------------

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expression Expr
}

func (*ExpressionStmt) stmtNode() {}
func (e *ExpressionStmt) String() string {
	return e.Expression.String() + ";"
}

// PrintStmt evaluates an expression and writes its string form.
type PrintStmt struct {
	Expression Expr
}

func (*PrintStmt) stmtNode() {}
func (p *PrintStmt) String() string {
	return parenthesize("print", p.Expression)
}

// VarStmt is `var name = initializer;`. Initializer is nil when
// absent (the evaluator then defines the name bound to Nil).
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func (*VarStmt) stmtNode() {}
func (v *VarStmt) String() string {
	if v.Initializer == nil {
		return "(var " + v.Name.Lexeme + ")"
	}
	return parenthesize("var "+v.Name.Lexeme, v.Initializer)
}

// BlockStmt is `{ declaration* }`.
type BlockStmt struct {
	Statements []Stmt
}

func (*BlockStmt) stmtNode() {}
func (b *BlockStmt) String() string {
	var sb bytes.Buffer
	sb.WriteString("(block")
	for _, s := range b.Statements {
		sb.WriteString(" ")
		sb.WriteString(s.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// IfStmt is `if (condition) then_branch (else else_branch)?`.
// ElseBranch is nil when absent.
type IfStmt struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	if i.ElseBranch == nil {
		return "(if " + i.Condition.String() + " " + i.ThenBranch.String() + ")"
	}
	return "(if " + i.Condition.String() + " " + i.ThenBranch.String() + " " + i.ElseBranch.String() + ")"
}

// WhileStmt is `while (condition) body`. The parser desugars `for`
// loops into a WhileStmt wrapped in a BlockStmt; there
// is no separate ForStmt node.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return "(while " + w.Condition.String() + " " + w.Body.String() + ")"
}

// FunctionStmt is `fun name(params) body`.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (*FunctionStmt) stmtNode() {}
func (f *FunctionStmt) String() string {
	var sb bytes.Buffer
	sb.WriteString("(fun ")
	sb.WriteString(f.Name.Lexeme)
	sb.WriteString(" (")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(p.Lexeme)
	}
	sb.WriteString(")")
	for _, s := range f.Body {
		sb.WriteString(" ")
		sb.WriteString(s.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// ReturnStmt is `return expression?;`. Value is nil when absent (the
// evaluator treats an absent value as Nil).
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "(return)"
	}
	return parenthesize("return", r.Value)
}

// parenthesize renders `(name expr...)`, the AST print form the
// `parse` subcommand emits.
func parenthesize(name string, exprs ...Expr) string {
	var sb bytes.Buffer
	sb.WriteString("(")
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteString(" ")
		sb.WriteString(e.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Package resolver implements the static scope-distance analysis
// pass. It runs between parsing and evaluation,
// walking the AST once to compute, for every variable reference, how
// many enclosing scopes separate it from the scope that declares it.
// The evaluator later uses these distances to look a name up in
// exactly the right Environment, which is what makes closures resolve
// correctly even when a later declaration shadows a name in an
// enclosing scope after the closure was already created.
package resolver

import (
	"strconv"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/token"
)

// Error is a single resolution error: a duplicate declaration in one
// scope, a local read in its own initializer, or a `return` outside
// any function.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return "[line " + strconv.Itoa(e.Line) + "] Error: " + e.Message
}

// Locals maps an expression node to its resolved scope distance: the
// number of Environment hops from the scope the expression is
// evaluated in to the scope that declares the name. It is keyed on
// the AST node's own pointer identity rather than on (line, lexeme),
// since the parser allocates one *ast.VariableExpr/*ast.AssignExpr
// per reference — two uses of the same name at the same line are two
// distinct node pointers, so there is no collision risk keying this
// way.
type Locals map[ast.Expr]int

type functionKind int

const (
	kindNone functionKind = iota
	kindFunction
)

// Resolver walks a parsed program once, before evaluation, building
// the Locals table the Interpreter needs to resolve variable lookups
// by fixed distance rather than by walking the live environment chain
// and hoping for the best.
type Resolver struct {
	scopes      []map[string]bool
	locals      Locals
	errors      []Error
	currentFunc functionKind
}

// New creates a Resolver ready to resolve a single program.
func New() *Resolver {
	return &Resolver{locals: Locals{}}
}

// Errors returns every resolution error accumulated so far.
func (r *Resolver) Errors() []Error {
	return r.errors
}

// Resolve walks every statement in the program and returns the
// resulting Locals table. Callers must check Errors() before trusting
// the result (exit code 65 on any resolution error).
func (r *Resolver) Resolve(program *ast.Program) Locals {
	r.resolveStmts(program.Statements)
	return r.locals
}

func (r *Resolver) addError(line int, message string) {
	r.errors = append(r.errors, Error{Line: line, Message: message})
}

// ---- scope stack ------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) currentScope() map[string]bool {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare marks a name as known-but-not-yet-initialized in the
// innermost scope. Re-declaring a name already declared in the same
// scope is a resolution error: `var a = 1; var a = 2;` inside a block
// or function body is rejected, so shadowing bugs surface at resolve
// time rather than silently re-binding.
func (r *Resolver) declare(name token.Token) {
	scope := r.currentScope()
	if scope == nil {
		return
	}
	if _, ok := scope[name.Lexeme]; ok {
		r.addError(name.Line, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	scope := r.currentScope()
	if scope == nil {
		return
	}
	scope[name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost to outermost
// looking for name, recording the hop distance in Locals the moment
// it's found. An unresolved name is left out of Locals entirely — the
// evaluator then treats it as a global lookup.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ---- statements ------------------------------------------------------

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, kindFunction)
	case *ast.ReturnStmt:
		if r.currentFunc == kindNone {
			r.addError(s.Keyword.Line, "Can't return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFunc := r.currentFunc
	r.currentFunc = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosingFunc
}

// ---- expressions ------------------------------------------------------

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.VariableExpr:
		if scope := r.currentScope(); scope != nil {
			if ready, ok := scope[e.Name.Lexeme]; ok && !ready {
				r.addError(e.Name.Line, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.GroupingExpr:
		r.resolveExpr(e.Expression)
	case *ast.LiteralExpr:
		// No sub-expressions and no name to resolve.
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}
	default:
		panic("resolver: unhandled expression type")
	}
}

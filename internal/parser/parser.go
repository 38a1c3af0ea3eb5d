// Package parser implements the recursive-descent parser for Lox: it
// consumes the token stream produced by the scanner and builds the
// ast.Program tree walked by the resolver and the evaluator.
package parser

import (
	"strconv"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/token"
)

const maxArgs = 255

// Error is a single syntax error: a token that didn't match what the
// grammar expected at that point. Like the scanner, the parser never
// stops at the first error — it reports it and synchronizes to the
// next statement boundary.
type Error struct {
	Line    int
	Where   string
	Message string
}

func (e Error) Error() string {
	return "[line " + strconv.Itoa(e.Line) + "] Error" + e.Where + ": " + e.Message
}

// Parser turns a flat token slice into an ast.Program using one token
// of lookahead.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []Error
}

// New constructs a Parser over a complete token stream (already
// terminated by an EOF token).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every syntax error accumulated during Parse.
func (p *Parser) Errors() []Error {
	return p.errors
}

// Parse consumes the entire token stream and returns the resulting
// program. Errors are accumulated, not fatal: Parse always returns a
// best-effort tree, and callers must check Errors() before trusting
// it (exit code 65 on any parse error).
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

// ParseExpression parses a single expression, the input form the
// `parse` and `evaluate` subcommands operate on. A
// trailing semicolon is permitted but not required; anything left over
// after the expression is a syntax error. Returns nil when the
// expression itself fails to parse.
func (p *Parser) ParseExpression() (expr ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				expr = nil
				return
			}
			panic(r)
		}
	}()

	expr = p.expression()
	p.match(token.SEMICOLON)
	if !p.isAtEnd() {
		p.errorAt(p.peek(), "Expect a single expression.")
	}
	return expr
}

// ---- token cursor -------------------------------------------------

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the expected token type; on mismatch it
// records a syntax error anchored at the current token and unwinds to
// the nearest declaration boundary.
func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.fail(p.peek(), message)
	return token.Token{} // unreachable: fail always panics
}

func (p *Parser) errorAt(tok token.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = " at end"
	}
	p.errors = append(p.errors, Error{Line: tok.Line, Where: where, Message: message})
}

// synchronize discards tokens until it reaches a likely statement
// boundary, so that one syntax error doesn't cascade into a wall of
// spurious follow-on errors. It runs after every declaration-level
// parse failure.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// ---- declarations ---------------------------------------------------

func (p *Parser) declaration() ast.Stmt {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.VAR):
		return p.varDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	default:
		return p.statement()
	}
}

// parseError is a sentinel used internally to unwind to the nearest
// declaration boundary on a syntax error.
type parseError struct{}

func (p *Parser) fail(tok token.Token, message string) {
	p.errorAt(tok, message)
	panic(parseError{})
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var initializer ast.Expr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}

	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

// ---- statements -----------------------------------------------------

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Statements: p.block()}
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expression: value}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return statements
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

// forStatement desugars the C-style for loop into the equivalent
// block/while form: there is no ast.ForStmt node.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}}}
	}

	if condition == nil {
		condition = &ast.LiteralExpr{Value: token.TrueLiteral}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

// ---- expressions (precedence climbing) -------------------------------

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative and validates its left-hand side
// after the fact: parse the left side as a normal expression, then
// check whether it turned out to be a valid assignment target once
// `=` follows.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if variable, ok := expr.(*ast.VariableExpr); ok {
			return &ast.AssignExpr{Name: variable.Name, Value: value}
		}
		p.errorAt(equals, "Invalid assignment target.")
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		operator := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		operator := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		operator := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Operator: operator, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(token.LEFT_PAREN) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Paren: paren, Arguments: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.LiteralExpr{Value: token.FalseLiteral}
	case p.match(token.TRUE):
		return &ast.LiteralExpr{Value: token.TrueLiteral}
	case p.match(token.NIL):
		return &ast.LiteralExpr{Value: token.NilLiteral}
	case p.match(token.NUMBER, token.STRING):
		return &ast.LiteralExpr{Value: p.previous().Literal}
	case p.match(token.IDENTIFIER):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.GroupingExpr{Expression: expr}
	default:
		p.fail(p.peek(), "Expect expression.")
		return nil // unreachable: fail always panics
	}
}

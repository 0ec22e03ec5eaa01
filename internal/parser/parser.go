// Package parser implements the recursive-descent, operator-precedence
// parser described by the specification: ternary operator, REPL trailing
// expression handling, and panic-mode error recovery.
package parser

import (
	"github.com/archlox/glox/internal/ast"
	"github.com/archlox/glox/internal/diag"
	"github.com/archlox/glox/internal/token"
)

const maxArgs = 255

// parseError unwinds parsing to the nearest declaration boundary; it never
// escapes the Parser's public API.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// Parser consumes a token stream and produces a statement list, reporting
// diagnostics through reporter as it goes. It never panics to the caller.
type Parser struct {
	tokens   []token.Token
	current  int
	reporter diag.Reporter
	isREPL   bool
}

// New builds a Parser over tokens (which must end in an EOF token).
// isREPL enables the trailing-expression-becomes-print rule from spec.md §4.1.
func New(tokens []token.Token, reporter diag.Reporter, isREPL bool) *Parser {
	return &Parser{tokens: tokens, reporter: reporter, isREPL: isREPL}
}

// Parse consumes the whole token stream and returns the resulting
// statements. Statements dropped by panic-mode recovery are omitted, so the
// caller never sees a nil *ast.Stmt.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// --- declarations ---

func (p *Parser) declaration() ast.Stmt {
	stmt, err := p.declarationOrErr()
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) declarationOrErr() (stmt ast.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				err = parseError{}
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.Class):
		return p.classDeclaration(), nil
	case p.match(token.Fun):
		return p.function("function"), nil
	case p.match(token.Var):
		return p.varDeclaration(), nil
	default:
		return p.statement(), nil
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "Expect class name.")

	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superTok := p.consume(token.Identifier, "Expect superclass name.")
		superclass = ast.NewVariableExpr(superTok)
	}

	p.consume(token.LeftBrace, "Expect '{' before class body.")

	var methods []*ast.Method
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		isStatic := p.match(token.Class)
		methodName := p.consume(token.Identifier, "Expect method name.")
		fn := p.functionBody("method")
		methods = append(methods, &ast.Method{Name: methodName, Function: fn, IsStatic: isStatic})
	}

	p.consume(token.RightBrace, "Expect '}' after class body.")
	return ast.NewClassStmt(name, superclass, methods)
}

func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.Identifier, "Expect "+kind+" name.")
	fn := p.functionBody(kind)
	return ast.NewFunctionStmt(name, fn)
}

// functionBody parses the "(params) { body }" tail shared by named
// functions, methods and anonymous function expressions.
func (p *Parser) functionBody(kind string) *ast.FunctionExpr {
	p.consume(token.LeftParen, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return ast.NewFunctionExpr(params, body)
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")
	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return ast.NewVarStmt(name, initializer)
}

// --- statements ---

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Break):
		return p.breakStatement()
	case p.match(token.LeftBrace):
		return ast.NewBlockStmt(p.block())
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return ast.NewIfStmt(cond, then, els)
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after while condition.")
	body := p.statement()
	return ast.NewWhileStmt(cond, body)
}

// forStatement desugars the C-style for loop into a block containing an
// initializer followed by an equivalent while loop, as is traditional for a
// tree-walking Lox implementation.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.Semicolon) {
		condition = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = ast.NewBlockStmt([]ast.Stmt{body, ast.NewExpressionStmt(increment)})
	}
	if condition == nil {
		condition = ast.NewLiteralExpr(true)
	}
	body = ast.NewWhileStmt(condition, body)

	if initializer != nil {
		body = ast.NewBlockStmt([]ast.Stmt{initializer, body})
	}
	return body
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return ast.NewPrintStmt(value)
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return ast.NewReturnStmt(keyword, value)
}

func (p *Parser) breakStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.Semicolon, "Expect ';' after 'break'.")
	return ast.NewBreakStmt(keyword)
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	if p.isREPL && p.check(token.EOF) {
		// REPL trailing-expression rule: a missing ';' right before EOF
		// prints the expression instead of erroring.
		return ast.NewPrintStmt(expr)
	}
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return ast.NewExpressionStmt(expr)
}

// --- expressions ---

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return ast.NewAssignExpr(target.Name, value)
		case *ast.GetExpr:
			return ast.NewSetExpr(target.Object, target.Name, value)
		default:
			p.errorAt(equals, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

func (p *Parser) ternary() ast.Expr {
	expr := p.or()
	if p.match(token.Question) {
		ifTrue := p.expression()
		p.consume(token.Colon, "Expect ':' in ternary expression.")
		ifFalse := p.ternary()
		return ast.NewTernaryExpr(expr, ifTrue, ifFalse)
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogicalExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogicalExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.leftAssocBinary(p.comparison, token.BangEqual, token.EqualEqual)
	return expr
}

func (p *Parser) comparison() ast.Expr {
	return p.leftAssocBinary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() ast.Expr {
	// A leading '+' with no left operand is reported but parsing continues
	// with the right operand alone, suppressing cascading errors. A leading
	// '-' is not an error: it parses as unary negation.
	if p.check(token.Plus) {
		op := p.advance()
		p.errorAt(op, "Left operand missing.")
		return p.factor()
	}
	return p.leftAssocBinary(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() ast.Expr {
	if p.check(token.Slash) || p.check(token.Star) {
		op := p.advance()
		p.errorAt(op, "Left operand missing.")
		return p.unary()
	}
	return p.leftAssocBinary(p.unary, token.Slash, token.Star)
}

// leftAssocBinary parses `next (op next)*` for any of ops, left-associative.
func (p *Parser) leftAssocBinary(next func() ast.Expr, ops ...token.Type) ast.Expr {
	expr := next()
	for p.matchAny(ops...) {
		op := p.previous()
		right := next()
		expr = ast.NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang) || p.match(token.Minus) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnaryExpr(op, right)
	}
	if p.check(token.Plus) {
		op := p.advance()
		p.errorAt(op, "Unary '+' is not supported.")
		return p.unary()
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Identifier, "Expect property name after '.'.")
			expr = ast.NewGetExpr(expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return ast.NewCallExpr(callee, paren, args)
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return ast.NewLiteralExpr(false)
	case p.match(token.True):
		return ast.NewLiteralExpr(true)
	case p.match(token.Nil):
		return ast.NewLiteralExpr(nil)
	case p.matchAny(token.Number, token.String):
		return ast.NewLiteralExpr(p.previous().Literal)
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Identifier, "Expect superclass method name.")
		return ast.NewSuperExpr(keyword, method)
	case p.match(token.This):
		return ast.NewThisExpr(p.previous())
	case p.match(token.Identifier):
		return ast.NewVariableExpr(p.previous())
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return ast.NewGroupingExpr(expr)
	case p.match(token.Fun):
		return p.functionBody("function")
	default:
		p.errorAt(p.peek(), "Expect expression.")
		panic(parseError{})
	}
}

// --- token stream helpers ---

func (p *Parser) match(typ token.Type) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchAny(types ...token.Type) bool {
	for _, typ := range types {
		if p.match(typ) {
			return true
		}
	}
	return false
}

func (p *Parser) check(typ token.Type) bool {
	if p.isAtEnd() {
		return typ == token.EOF
	}
	return p.peek().Type == typ
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) consume(typ token.Type, message string) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) errorAt(tok token.Token, message string) {
	p.reporter.ErrorAtToken(tok, message)
}

// synchronize discards tokens until it reaches a point likely to begin a
// new statement, so a single parse error does not cascade into spurious
// follow-on diagnostics.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If,
			token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

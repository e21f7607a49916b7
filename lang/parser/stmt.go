package parser

import (
	"fmt"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/token"
)

// declaration := classDecl | funDecl | varDecl | statement
func (p *parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// classDecl := "class" IDENT ( "<" IDENT )? "{" function* "}"
//
// The "<" IDENT clause is the inheritance syntax spec.md §4.2 and §9 ask to
// be wired cleanly at scanner and parser (the scanner already emits LESS
// for comparison; the parser simply accepts it here too).
func (p *parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENT, "expect class name")

	var superclass *ast.VariableExpr
	if p.match(token.LESS) {
		p.consume(token.IDENT, "expect superclass name")
		superclass = ast.NewVariable(p.previous())
	}

	p.consume(token.LEFT_BRACE, "expect '{' before class body")

	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(token.RIGHT_BRACE, "expect '}' after class body")
	return ast.NewClassStmt(name, superclass, methods)
}

// function := IDENT "(" parameters? ")" block
func (p *parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENT, "expect "+kind+" name")
	p.consume(token.LEFT_PAREN, "expect '(' after "+kind+" name")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= MaxArgs {
				p.errorNonFatal(p.peek(), fmt.Sprintf("can't have more than %d parameters", MaxArgs))
			}
			params = append(params, p.consume(token.IDENT, "expect parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after parameters")

	p.consume(token.LEFT_BRACE, "expect '{' before "+kind+" body")
	body := p.block()
	return ast.NewFunctionStmt(name, params, body)
}

// varDecl := "var" IDENT ( "=" expression )? ";"
func (p *parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENT, "expect variable name")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}

	p.consume(token.SEMICOLON, "expect ';' after variable declaration")
	return ast.NewVarStmt(name, init)
}

// statement := exprStmt | forStmt | ifStmt | printStmt | whileStmt |
//              breakStmt | continueStmt | returnStmt | block
func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.BREAK):
		kw := p.previous()
		p.consume(token.SEMICOLON, "expect ';' after 'break'")
		return ast.NewBreakStmt(kw)
	case p.match(token.CONTINUE):
		kw := p.previous()
		p.consume(token.SEMICOLON, "expect ';' after 'continue'")
		return ast.NewContinueStmt(kw)
	case p.match(token.LEFT_BRACE):
		return ast.NewBlockStmt(p.block())
	default:
		return p.expressionStatement()
	}
}

func (p *parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after value")
	return ast.NewPrintStmt(value)
}

func (p *parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after return value")
	return ast.NewReturnStmt(keyword, value)
}

func (p *parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after expression")
	return ast.NewExpressionStmt(expr)
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after block")
	return stmts
}

func (p *parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "expect '(' after 'if'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expect ')' after if condition")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return ast.NewIfStmt(cond, then, els)
}

func (p *parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "expect '(' after 'while'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expect ')' after condition")
	body := p.statement()
	return ast.NewWhileStmt(cond, body, nil, false)
}

// forStatement desugars `for (init; cond; post) body` into:
//
//	{ init; while (cond) body /* with post run after every iteration */ }
//
// per spec.md §4.2. A missing cond is replaced by the literal `true`. post
// is kept on the WhileStmt node rather than appended into body, so that
// `continue` (which unwinds only the body) does not also skip it — see
// ast.WhileStmt's doc comment.
func (p *parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "expect '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after loop condition")

	var post ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		post = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after for clauses")

	body := p.statement()

	if cond == nil {
		cond = ast.NewLiteral(true)
	}
	loop := ast.Stmt(ast.NewWhileStmt(cond, body, post, true))

	if init != nil {
		loop = ast.NewBlockStmt([]ast.Stmt{init, loop})
	}
	return loop
}

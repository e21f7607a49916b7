package parser

import (
	"fmt"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/token"
)

// expression := comma
func (p *parser) expression() ast.Expr { return p.comma() }

// comma := assignment ( "," assignment )*
//
// Left-associative; evaluates both sides, yields the right (spec.md §4.2).
func (p *parser) comma() ast.Expr {
	expr := p.assignment()
	for p.match(token.COMMA) {
		op := p.previous()
		right := p.assignment()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

// assignment := ( call "." )? IDENT "=" assignment | conditional
//
// The left-hand side is always parsed at conditional (ternary) precedence
// first; only afterwards do we check for '=' and, if found, rewrite the
// already-parsed left side into an Assign or Set node (spec.md §4.2).
func (p *parser) assignment() ast.Expr {
	expr := p.conditional()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.VariableExpr:
			return ast.NewAssign(e.Name, value)
		case *ast.GetExpr:
			return ast.NewSet(e.Object, e.Name, value)
		default:
			// Per spec.md §4.2: report "Invalid assignment target" without
			// consuming further input; the '=' token is the error site.
			p.errorNonFatal(equals, "invalid assignment target")
			return expr
		}
	}
	return expr
}

// conditional := logic_or ( "?" conditional ":" conditional )?
func (p *parser) conditional() ast.Expr {
	expr := p.or()
	if p.match(token.QUESTION) {
		then := p.conditional()
		p.consume(token.COLON, "expect ':' after then branch of conditional expression")
		els := p.conditional()
		expr = ast.NewConditional(expr, then, els)
	}
	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogical(expr, op, right)
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR, token.PERCENT) {
		op := p.previous()
		right := p.unary()
		expr = ast.NewBinary(expr, op, right)
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnary(op, right)
	}
	return p.call()
}

// call := primary ( "(" arguments? ")" | "." IDENT )*
func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "expect property name after '.'")
			expr = ast.NewGet(expr, name)
		default:
			return expr
		}
	}
}

// arguments are parsed at conditional (ternary) precedence, so the comma
// operator does not swallow argument separators (spec.md §4.2).
func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= MaxArgs {
				p.errorNonFatal(p.peek(), fmt.Sprintf("can't have more than %d arguments", MaxArgs))
			}
			args = append(args, p.conditional())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "expect ')' after arguments")
	return ast.NewCall(callee, paren, args)
}

// primary := NUMBER | STRING | "true" | "false" | "nil" | "this" |
//            IDENT | "(" expression ")" | "super" "." IDENT
func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return ast.NewLiteral(false)
	case p.match(token.TRUE):
		return ast.NewLiteral(true)
	case p.match(token.NIL):
		return ast.NewLiteral(nil)
	case p.match(token.NUMBER, token.STRING):
		return ast.NewLiteral(p.previous().Literal)
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "expect '.' after 'super'")
		method := p.consume(token.IDENT, "expect superclass method name")
		return ast.NewSuper(keyword, method)
	case p.match(token.THIS):
		return ast.NewThis(p.previous())
	case p.match(token.IDENT):
		return ast.NewVariable(p.previous())
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "expect ')' after expression")
		return ast.NewGrouping(expr)
	default:
		panic(p.error(p.peek(), "expect expression"))
	}
}

// Package parser implements the recursive-descent grammar of spec.md §4.2:
// operator precedence, statement and declaration productions, for-loop
// desugaring, the ternary and comma operators, assignment-vs-property-set
// disambiguation, and panic-mode error recovery. It is modeled on the
// teacher's own recursive-descent parser (github.com/mna/nenuphar/lang/parser)
// but follows this spec's own grammar rather than the teacher's.
package parser

import (
	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/diag"
	"github.com/mna/larch/lang/token"
)

// MaxArgs is the maximum number of call arguments or function parameters
// accepted without a diagnostic (spec.md §4.2). Exceeding it is reported but
// does not stop parsing. It is a var, not a const, so the CLI can tighten
// or loosen it from internal/config's max_call_args knob at startup.
var MaxArgs = 255

// Parse tokenizes is assumed to already have happened; Parse consumes a
// token slice (always EOF-terminated) and returns the parsed statement
// list. The returned error, if non-nil, is a *diag.List; per spec.md §7 its
// presence means later pipeline stages must not run on this chunk.
func Parse(tokens []token.Token) ([]ast.Stmt, error) {
	p := &parser{tokens: tokens}
	return p.parseProgram()
}

type parser struct {
	tokens  []token.Token
	current int
	errs    diag.List
}

// parseError is a sentinel used internally to unwind to the nearest
// recovery point (synchronize) via panic/recover, the same panic-mode
// recovery strategy spec.md §4.2 describes.
type parseError struct{}

func (p *parser) parseProgram() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, ok := p.declarationRecover()
		if ok {
			stmts = append(stmts, stmt)
		}
	}
	p.errs.Sort()
	return stmts, p.errs.Err()
}

// declarationRecover parses a single top-level declaration, recovering via
// synchronize if a parseError panics out of it.
func (p *parser) declarationRecover() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(parseError); !isParseErr {
				panic(r)
			}
			p.synchronize()
			ok = false
		}
	}()
	return p.declaration(), true
}

// ---- token stream helpers ----

func (p *parser) peek() token.Token     { return p.tokens[p.current] }
func (p *parser) previous() token.Token { return p.tokens[p.current-1] }
func (p *parser) isAtEnd() bool         { return p.peek().Type == token.EOF }

func (p *parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	panic(p.error(p.peek(), message))
}

func (p *parser) error(tok token.Token, message string) parseError {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = " at end"
	}
	p.errs.Add(diag.Diagnostic{Line: tok.Line, Where: where, Message: message})
	return parseError{}
}

// errorNonFatal records a diagnostic without unwinding the parse (used for
// the >MaxArgs case, spec.md §4.2: "non-fatal diagnostic but continue").
func (p *parser) errorNonFatal(tok token.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = " at end"
	}
	p.errs.Add(diag.Diagnostic{Line: tok.Line, Where: where, Message: message})
}

// synchronize advances past the offending statement, stopping just after a
// consumed ';' or just before a token that begins a fresh statement
// (spec.md §4.2).
func (p *parser) synchronize() {
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

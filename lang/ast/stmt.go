package ast

import "github.com/mna/larch/lang/token"

type (
	// ExpressionStmt is an expression evaluated for its side effect.
	ExpressionStmt struct {
		stmtBase
		Expr Expr
	}

	// PrintStmt evaluates an expression and writes its stringified form,
	// followed by a newline, to the interpreter's output sink.
	PrintStmt struct {
		stmtBase
		Expr Expr
	}

	// VarStmt declares a new local (or global, at the top level) binding.
	VarStmt struct {
		stmtBase
		Name Token
		Init Expr // nil if no initializer was given; defaults to nil at runtime
	}

	// BlockStmt is a `{ ... }` sequence of statements sharing a fresh
	// environment.
	BlockStmt struct {
		stmtBase
		Stmts []Stmt
	}

	// IfStmt is an `if (...) ... else ...` statement; Else is nil when there
	// is no else clause.
	IfStmt struct {
		stmtBase
		Cond Expr
		Then Stmt
		Else Stmt
	}

	// WhileStmt is a `while (...) ...` statement, or the desugared form of a
	// `for` loop. Post is nil for a plain `while`; for a desugared `for` it
	// holds the loop's increment clause, which runs after every iteration —
	// including one ended early by `continue` — and before the condition is
	// re-tested (spec.md §4.2/§4.7). FromFor records whether this node was
	// synthesized by desugaring a `for` loop, purely for the benefit of the
	// AST printer and the astjson dump (spec.md §3).
	WhileStmt struct {
		stmtBase
		Cond    Expr
		Body    Stmt
		Post    Expr
		FromFor bool
	}

	// BreakStmt exits the innermost enclosing loop.
	BreakStmt struct {
		stmtBase
		Keyword Token
	}

	// ContinueStmt skips to the next iteration test of the innermost
	// enclosing loop.
	ContinueStmt struct {
		stmtBase
		Keyword Token
	}

	// ReturnStmt exits the current function, optionally carrying a value.
	ReturnStmt struct {
		stmtBase
		Keyword Token
		Value   Expr // nil if bare `return;`
	}

	// FunctionStmt declares a named function (or, reused, a class method).
	FunctionStmt struct {
		stmtBase
		Name   Token
		Params []Token
		Body   []Stmt
	}

	// ClassStmt declares a class, with an optional superclass reference and
	// its methods.
	ClassStmt struct {
		stmtBase
		Name       Token
		Superclass *VariableExpr // nil if no `< Super` clause
		Methods    []*FunctionStmt
	}
)

// Token is an alias so stmt.go does not need to repeat the token package
// qualifier on every field; it is the same type as token.Token.
type Token = token.Token

func NewExpressionStmt(expr Expr) *ExpressionStmt { return &ExpressionStmt{Expr: expr} }
func NewPrintStmt(expr Expr) *PrintStmt           { return &PrintStmt{Expr: expr} }
func NewVarStmt(name Token, init Expr) *VarStmt   { return &VarStmt{Name: name, Init: init} }
func NewBlockStmt(stmts []Stmt) *BlockStmt        { return &BlockStmt{Stmts: stmts} }
func NewIfStmt(cond Expr, then, els Stmt) *IfStmt { return &IfStmt{Cond: cond, Then: then, Else: els} }
func NewWhileStmt(cond Expr, body Stmt, post Expr, fromFor bool) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body, Post: post, FromFor: fromFor}
}
func NewBreakStmt(keyword Token) *BreakStmt       { return &BreakStmt{Keyword: keyword} }
func NewContinueStmt(keyword Token) *ContinueStmt { return &ContinueStmt{Keyword: keyword} }
func NewReturnStmt(keyword Token, value Expr) *ReturnStmt {
	return &ReturnStmt{Keyword: keyword, Value: value}
}
func NewFunctionStmt(name Token, params []Token, body []Stmt) *FunctionStmt {
	return &FunctionStmt{Name: name, Params: params, Body: body}
}
func NewClassStmt(name Token, superclass *VariableExpr, methods []*FunctionStmt) *ClassStmt {
	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (n *ExpressionStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *PrintStmt) Walk(v Visitor)      { Walk(v, n.Expr) }
func (n *VarStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
	if n.Post != nil {
		Walk(v, n.Post)
	}
}
func (n *BreakStmt) Walk(_ Visitor)    {}
func (n *ContinueStmt) Walk(_ Visitor) {}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *FunctionStmt) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *ClassStmt) Walk(v Visitor) {
	if n.Superclass != nil {
		Walk(v, n.Superclass)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}

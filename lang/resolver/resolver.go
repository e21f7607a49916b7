// Package resolver implements the static pre-interpretation pass of
// spec.md §4.3: for every variable reference expression it computes the
// number of enclosing lexical scopes between the reference and its
// binding, and it enforces the contextual rules (return only inside a
// function, this only inside a class, and so on).
//
// It is modeled on the teacher's resolver package shape
// (github.com/mna/nenuphar/lang/resolver: a scope stack plus contextual
// state, walked with an exhaustive type-switch per spec.md §9's design
// note) but implements scope-*distance* resolution (Crafting Interpreters
// style) rather than the teacher's cell/freevar closure-conversion scheme,
// since that is what spec.md §3's side-table and §4.3/§4.4 call for.
package resolver

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/diag"
)

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

type loopType int

const (
	loopNone loopType = iota
	loopLoop
)

// Table is the resolver's side-table output: for every Variable, Assign,
// This or Super expression node that resolver.Resolve finds a binding for,
// Table maps its node identity (ast.Expr.ExprID()) to the number of
// environments to traverse from the current frame at evaluation time to
// reach the frame holding the binding. A node absent from Table resolves
// against the global frame (spec.md §3).
type Table map[int]int

// scope maps a declared name to whether its initializer has finished
// evaluating yet (spec.md §4.3: declare vs. define).
type scope map[string]bool

// Resolve walks stmts and returns the resolved side-table. The returned
// error, if non-nil, is a *diag.List; per spec.md §7 its presence means
// the evaluator must not run on this chunk.
func Resolve(stmts []ast.Stmt) (Table, error) {
	table, _, err := ResolveTrace(stmts)
	return table, err
}

// ScopeTrace records, for a single local scope entered and left during
// resolution, the names it declared, sorted for deterministic display.
// It exists purely for the `resolve` CLI subcommand's dump and has no
// bearing on evaluation.
type ScopeTrace struct {
	Depth int
	Names []string
}

// ResolveTrace is Resolve plus a flattened trace of every local scope
// visited, in the order scopes were closed (innermost finished first).
func ResolveTrace(stmts []ast.Stmt) (Table, []ScopeTrace, error) {
	r := &resolver{table: make(Table)}
	for _, s := range stmts {
		r.resolveStmt(s)
	}
	r.errs.Sort()
	return r.table, r.trace, r.errs.Err()
}

type resolver struct {
	scopes []scope
	table  Table
	errs   diag.List
	trace  []ScopeTrace

	currentFunction functionType
	currentClass    classType
	currentLoop     loopType
}

func (r *resolver) pushScope() { r.scopes = append(r.scopes, make(scope)) }
func (r *resolver) popScope() {
	top := r.scopes[len(r.scopes)-1]
	r.trace = append(r.trace, ScopeTrace{Depth: len(r.scopes) - 1, Names: sortedNames(top)})
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) peekScope() scope {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) errorf(line int, lexeme, format string, args ...any) {
	r.errs.Addf(line, " at '"+lexeme+"'", format, args...)
}

// declare records name in the innermost scope as not yet initialized.
// Redeclaring a name already declared in that same scope is a static
// error (spec.md §4.3).
func (r *resolver) declare(name ast.Token) {
	sc := r.peekScope()
	if sc == nil {
		return // global scope is not tracked; redeclaration there is allowed
	}
	if _, ok := sc[name.Lexeme]; ok {
		r.errorf(name.Line, name.Lexeme, "already a variable with this name in this scope")
		return
	}
	sc[name.Lexeme] = false
}

// define marks name as fully initialized in the innermost scope.
func (r *resolver) define(name ast.Token) {
	if sc := r.peekScope(); sc != nil {
		sc[name.Lexeme] = true
	}
}

// resolveLocal walks the scope stack from innermost outward; if name is
// found, it records (node -> distance) in the side-table.
func (r *resolver) resolveLocal(node ast.Expr, name ast.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.table[node.ExprID()] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any local scope: resolves against the global frame at
	// evaluation time, so no table entry is recorded.
}

// sortedNames returns the names declared in sc, sorted for deterministic
// diagnostic/dump ordering (used by the `resolve` CLI subcommand).
func sortedNames(sc scope) []string {
	names := maps.Keys(sc)
	slices.Sort(names)
	return names
}

// Package ast defines the tagged-sum node types for larch expressions and
// statements (spec.md §3), following the teacher's Node/Expr/Stmt/Visitor
// shape (github.com/mna/nenuphar/lang/ast) but sized to this grammar.
package ast

import "sync/atomic"

// Node is implemented by every expression and statement node.
type Node interface {
	// Walk visits the node's direct children, in evaluation order.
	Walk(v Visitor)
}

// Expr is implemented by every expression node. Every Expr has a unique ID
// assigned at construction (spec.md §3), so the resolver's side-table can
// key on node identity instead of structural equality: two syntactically
// identical references must resolve independently.
type Expr interface {
	Node
	ExprID() int
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

var nextID int64

// newID stamps a fresh, process-wide unique node identity.
func newID() int {
	return int(atomic.AddInt64(&nextID, 1))
}

type exprBase struct{ id int }

func newExprBase() exprBase { return exprBase{id: newID()} }

// ExprID returns this node's unique identity.
func (e exprBase) ExprID() int { return e.id }
func (exprBase) exprNode()     {}

type stmtBase struct{}

func (stmtBase) stmtNode() {}

// Visitor is called for each node Walk enters, in the teacher's
// enter/exit-free simplified form: a single visit per node. The resolver,
// the AST printer and astjson do not use it; they dispatch with their own
// type switches.
type Visitor interface {
	Visit(n Node)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(n Node)

// Visit implements Visitor.
func (f VisitorFunc) Visit(n Node) { f(n) }

// Walk visits node and recursively walks its children with v.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v.Visit(node)
	node.Walk(v)
}

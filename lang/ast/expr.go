package ast

import "github.com/mna/larch/lang/token"

type (
	// BinaryExpr is a binary operator expression, e.g. a + b.
	BinaryExpr struct {
		exprBase
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// LogicalExpr is a short-circuiting `and`/`or` expression.
	LogicalExpr struct {
		exprBase
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// UnaryExpr is a prefix unary operator expression, e.g. -a or !a.
	UnaryExpr struct {
		exprBase
		Op    token.Token
		Right Expr
	}

	// GroupingExpr is a parenthesized expression.
	GroupingExpr struct {
		exprBase
		Expr Expr
	}

	// LiteralExpr is a literal nil, bool, number or string.
	LiteralExpr struct {
		exprBase
		Value any // nil | bool | float64 | string
	}

	// ConditionalExpr is the ternary `cond ? then : else` expression.
	ConditionalExpr struct {
		exprBase
		Cond, Then, Else Expr
	}

	// VariableExpr is a reference to a named binding.
	VariableExpr struct {
		exprBase
		Name token.Token
	}

	// AssignExpr assigns a new value to a named binding.
	AssignExpr struct {
		exprBase
		Name  token.Token
		Value Expr
	}

	// CallExpr is a function or method call.
	CallExpr struct {
		exprBase
		Callee Expr
		Paren  token.Token // closing ')', for error line reporting
		Args   []Expr
	}

	// GetExpr reads a property (field or method) off an object.
	GetExpr struct {
		exprBase
		Object Expr
		Name   token.Token
	}

	// SetExpr writes a property on an object.
	SetExpr struct {
		exprBase
		Object Expr
		Name   token.Token
		Value  Expr
	}

	// ThisExpr refers to the bound instance inside a method body.
	ThisExpr struct {
		exprBase
		Keyword token.Token
	}

	// SuperExpr refers to a method defined on the superclass.
	SuperExpr struct {
		exprBase
		Keyword token.Token
		Method  token.Token
	}
)

// NewBinary, NewLogical, ... stamp a fresh node identity and return the
// node. Callers (the parser) should always construct nodes through these
// helpers rather than struct literals, so every node gets an ID.

func NewBinary(left Expr, op token.Token, right Expr) *BinaryExpr {
	return &BinaryExpr{exprBase: newExprBase(), Left: left, Op: op, Right: right}
}

func NewLogical(left Expr, op token.Token, right Expr) *LogicalExpr {
	return &LogicalExpr{exprBase: newExprBase(), Left: left, Op: op, Right: right}
}

func NewUnary(op token.Token, right Expr) *UnaryExpr {
	return &UnaryExpr{exprBase: newExprBase(), Op: op, Right: right}
}

func NewGrouping(expr Expr) *GroupingExpr {
	return &GroupingExpr{exprBase: newExprBase(), Expr: expr}
}

func NewLiteral(value any) *LiteralExpr {
	return &LiteralExpr{exprBase: newExprBase(), Value: value}
}

func NewConditional(cond, then, els Expr) *ConditionalExpr {
	return &ConditionalExpr{exprBase: newExprBase(), Cond: cond, Then: then, Else: els}
}

func NewVariable(name token.Token) *VariableExpr {
	return &VariableExpr{exprBase: newExprBase(), Name: name}
}

func NewAssign(name token.Token, value Expr) *AssignExpr {
	return &AssignExpr{exprBase: newExprBase(), Name: name, Value: value}
}

func NewCall(callee Expr, paren token.Token, args []Expr) *CallExpr {
	return &CallExpr{exprBase: newExprBase(), Callee: callee, Paren: paren, Args: args}
}

func NewGet(object Expr, name token.Token) *GetExpr {
	return &GetExpr{exprBase: newExprBase(), Object: object, Name: name}
}

func NewSet(object Expr, name token.Token, value Expr) *SetExpr {
	return &SetExpr{exprBase: newExprBase(), Object: object, Name: name, Value: value}
}

func NewThis(keyword token.Token) *ThisExpr {
	return &ThisExpr{exprBase: newExprBase(), Keyword: keyword}
}

func NewSuper(keyword, method token.Token) *SuperExpr {
	return &SuperExpr{exprBase: newExprBase(), Keyword: keyword, Method: method}
}

func (n *BinaryExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *LogicalExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *UnaryExpr) Walk(v Visitor)  { Walk(v, n.Right) }
func (n *GroupingExpr) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *LiteralExpr) Walk(_ Visitor) {}
func (n *ConditionalExpr) Walk(v Visitor) { Walk(v, n.Cond); Walk(v, n.Then); Walk(v, n.Else) }
func (n *VariableExpr) Walk(_ Visitor) {}
func (n *AssignExpr) Walk(v Visitor)  { Walk(v, n.Value) }
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *GetExpr) Walk(v Visitor) { Walk(v, n.Object) }
func (n *SetExpr) Walk(v Visitor) { Walk(v, n.Object); Walk(v, n.Value) }
func (n *ThisExpr) Walk(_ Visitor)  {}
func (n *SuperExpr) Walk(_ Visitor) {}

package resolver

import "github.com/mna/larch/lang/ast"

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.VariableExpr:
		if sc := r.peekScope(); sc != nil {
			if initialized, ok := sc[e.Name.Lexeme]; ok && !initialized {
				r.errorf(e.Name.Line, e.Name.Lexeme, "can't read local variable in its own initializer")
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
		r.resolveExpr(e.Expr)

	case *ast.LiteralExpr:
		// no sub-expressions, nothing to resolve

	case *ast.ConditionalExpr:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)

	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.GetExpr:
		r.resolveExpr(e.Object)

	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.errorf(e.Keyword.Line, e.Keyword.Lexeme, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.SuperExpr:
		switch r.currentClass {
		case classNone:
			r.errorf(e.Keyword.Line, e.Keyword.Lexeme, "can't use 'super' outside of a class")
		case classClass:
			r.errorf(e.Keyword.Line, e.Keyword.Lexeme, "can't use 'super' in a class with no superclass")
		default:
			r.resolveLocal(e, e.Keyword)
		}

	default:
		panic("resolver: unexpected expr type")
	}
}

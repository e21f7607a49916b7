package resolver

import "github.com/mna/larch/lang/ast"

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveBlock(stmts []ast.Stmt) {
	r.pushScope()
	r.resolveStmts(stmts)
	r.popScope()
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case *ast.BlockStmt:
		r.resolveBlock(s.Stmts)

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		enclosingLoop := r.currentLoop
		r.currentLoop = loopLoop
		r.resolveStmt(s.Body)
		if s.Post != nil {
			r.resolveExpr(s.Post)
		}
		r.currentLoop = enclosingLoop

	case *ast.BreakStmt:
		if r.currentLoop == loopNone {
			r.errorf(s.Keyword.Line, s.Keyword.Lexeme, "'break' outside a loop")
		}

	case *ast.ContinueStmt:
		if r.currentLoop == loopNone {
			r.errorf(s.Keyword.Line, s.Keyword.Lexeme, "'continue' outside a loop")
		}

	case *ast.ReturnStmt:
		if r.currentFunction == fnNone {
			r.errorf(s.Keyword.Line, s.Keyword.Lexeme, "can't return from top-level code")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.errorf(s.Keyword.Line, s.Keyword.Lexeme, "can't return a value from an initializer")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)

	default:
		panic("resolver: unexpected stmt type")
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	enclosingLoop := r.currentLoop
	r.currentFunction = kind
	r.currentLoop = loopNone

	r.pushScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.popScope()

	r.currentFunction = enclosingFunction
	r.currentLoop = enclosingLoop
}

func (r *resolver) resolveClass(cl *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(cl.Name)
	r.define(cl.Name)

	if cl.Superclass != nil {
		if cl.Superclass.Name.Lexeme == cl.Name.Lexeme {
			r.errorf(cl.Superclass.Name.Line, cl.Superclass.Name.Lexeme, "a class can't inherit from itself")
		} else {
			r.currentClass = classSubclass
			r.resolveExpr(cl.Superclass)
		}

		r.pushScope()
		r.peekScope()["super"] = true
	}

	r.pushScope()
	r.peekScope()["this"] = true

	for _, method := range cl.Methods {
		kind := fnMethod
		if method.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.popScope()
	if cl.Superclass != nil {
		r.popScope()
	}

	r.currentClass = enclosingClass
}

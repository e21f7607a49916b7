// Package astjson renders a larch statement list as JSON, for the
// `astjson` CLI subcommand. It builds the document incrementally with
// github.com/tidwall/sjson rather than marshaling a parallel struct tree,
// and exposes github.com/tidwall/gjson accessors for tests and tooling
// that want to query the result without re-parsing it into Go types.
package astjson

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mna/larch/lang/ast"
)

// Marshal renders stmts as a JSON array, one object per top-level
// statement.
func Marshal(stmts []ast.Stmt) ([]byte, error) {
	doc := "[]"
	var err error
	for i, s := range stmts {
		doc, err = sjson.Set(doc, fmt.Sprintf("%d", i), stmtNode(s))
		if err != nil {
			return nil, err
		}
	}
	return []byte(doc), nil
}

// Get is a thin wrapper over gjson.GetBytes, letting callers query the
// marshaled document with a gjson path instead of unmarshaling it.
func Get(doc []byte, path string) gjson.Result {
	return gjson.GetBytes(doc, path)
}

// stmtNode renders s as a plain map[string]any; sjson.Set happily encodes
// nested maps and slices, so nested nodes are built the same way.
func stmtNode(s ast.Stmt) map[string]any {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		return map[string]any{"kind": "expression", "expr": exprNode(s.Expr)}
	case *ast.PrintStmt:
		return map[string]any{"kind": "print", "expr": exprNode(s.Expr)}
	case *ast.VarStmt:
		n := map[string]any{"kind": "var", "name": s.Name.Lexeme}
		if s.Init != nil {
			n["init"] = exprNode(s.Init)
		}
		return n
	case *ast.BlockStmt:
		return map[string]any{"kind": "block", "stmts": stmtNodes(s.Stmts)}
	case *ast.IfStmt:
		n := map[string]any{"kind": "if", "cond": exprNode(s.Cond), "then": stmtNode(s.Then)}
		if s.Else != nil {
			n["else"] = stmtNode(s.Else)
		}
		return n
	case *ast.WhileStmt:
		n := map[string]any{
			"kind": "while", "cond": exprNode(s.Cond), "body": stmtNode(s.Body), "fromFor": s.FromFor,
		}
		if s.Post != nil {
			n["post"] = exprNode(s.Post)
		}
		return n
	case *ast.BreakStmt:
		return map[string]any{"kind": "break"}
	case *ast.ContinueStmt:
		return map[string]any{"kind": "continue"}
	case *ast.ReturnStmt:
		n := map[string]any{"kind": "return"}
		if s.Value != nil {
			n["value"] = exprNode(s.Value)
		}
		return n
	case *ast.FunctionStmt:
		return map[string]any{
			"kind": "function", "name": s.Name.Lexeme,
			"params": paramNames(s.Params), "body": stmtNodes(s.Body),
		}
	case *ast.ClassStmt:
		n := map[string]any{"kind": "class", "name": s.Name.Lexeme, "methods": methodNodes(s.Methods)}
		if s.Superclass != nil {
			n["superclass"] = s.Superclass.Name.Lexeme
		}
		return n
	default:
		return map[string]any{"kind": fmt.Sprintf("unknown:%T", s)}
	}
}

func stmtNodes(stmts []ast.Stmt) []map[string]any {
	out := make([]map[string]any, len(stmts))
	for i, s := range stmts {
		out[i] = stmtNode(s)
	}
	return out
}

func methodNodes(methods []*ast.FunctionStmt) []map[string]any {
	out := make([]map[string]any, len(methods))
	for i, m := range methods {
		out[i] = stmtNode(m)
	}
	return out
}

func paramNames(params []ast.Token) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Lexeme
	}
	return out
}

func exprNode(e ast.Expr) map[string]any {
	if e == nil {
		return nil
	}
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return map[string]any{"kind": "binary", "op": e.Op.Lexeme, "left": exprNode(e.Left), "right": exprNode(e.Right)}
	case *ast.LogicalExpr:
		return map[string]any{"kind": "logical", "op": e.Op.Lexeme, "left": exprNode(e.Left), "right": exprNode(e.Right)}
	case *ast.UnaryExpr:
		return map[string]any{"kind": "unary", "op": e.Op.Lexeme, "right": exprNode(e.Right)}
	case *ast.GroupingExpr:
		return map[string]any{"kind": "grouping", "expr": exprNode(e.Expr)}
	case *ast.LiteralExpr:
		return map[string]any{"kind": "literal", "value": e.Value}
	case *ast.ConditionalExpr:
		return map[string]any{
			"kind": "conditional", "cond": exprNode(e.Cond), "then": exprNode(e.Then), "else": exprNode(e.Else),
		}
	case *ast.VariableExpr:
		return map[string]any{"kind": "variable", "name": e.Name.Lexeme, "id": e.ExprID()}
	case *ast.AssignExpr:
		return map[string]any{"kind": "assign", "name": e.Name.Lexeme, "id": e.ExprID(), "value": exprNode(e.Value)}
	case *ast.CallExpr:
		args := make([]map[string]any, len(e.Args))
		for i, a := range e.Args {
			args[i] = exprNode(a)
		}
		return map[string]any{"kind": "call", "callee": exprNode(e.Callee), "args": args}
	case *ast.GetExpr:
		return map[string]any{"kind": "get", "name": e.Name.Lexeme, "object": exprNode(e.Object)}
	case *ast.SetExpr:
		return map[string]any{
			"kind": "set", "name": e.Name.Lexeme, "object": exprNode(e.Object), "value": exprNode(e.Value),
		}
	case *ast.ThisExpr:
		return map[string]any{"kind": "this", "id": e.ExprID()}
	case *ast.SuperExpr:
		return map[string]any{"kind": "super", "method": e.Method.Lexeme, "id": e.ExprID()}
	default:
		return map[string]any{"kind": fmt.Sprintf("unknown:%T", e)}
	}
}

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/parser"
	"github.com/mna/larch/lang/scanner"
)

// countNodes walks stmts with ast.Walk, tallying how many nodes of each
// concrete Go type it visits. This is the Visitor machinery's one real
// consumer: everything in lang/ast/printer.go and lang/ast/astjson chooses
// an exhaustive type-switch instead (see printer.go's doc comment), but a
// generic "how big is this tree" walk is exactly what Walk/Visitor are for.
func countNodes(stmts []ast.Stmt) map[string]int {
	counts := make(map[string]int)
	visit := ast.VisitorFunc(func(n ast.Node) {
		switch n.(type) {
		case *ast.BinaryExpr:
			counts["BinaryExpr"]++
		case *ast.VariableExpr:
			counts["VariableExpr"]++
		case *ast.LiteralExpr:
			counts["LiteralExpr"]++
		case *ast.PrintStmt:
			counts["PrintStmt"]++
		case *ast.VarStmt:
			counts["VarStmt"]++
		case *ast.IfStmt:
			counts["IfStmt"]++
		}
	})
	for _, s := range stmts {
		ast.Walk(visit, s)
	}
	return counts
}

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, err := scanner.ScanTokens(src)
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	return stmts
}

func TestWalk_VisitsEveryDescendant(t *testing.T) {
	stmts := parse(t, `
		var a = 1 + 2;
		if (a) {
			print a;
		}
	`)

	counts := countNodes(stmts)
	assert.Equal(t, 1, counts["VarStmt"])
	assert.Equal(t, 1, counts["IfStmt"])
	assert.Equal(t, 1, counts["PrintStmt"])
	assert.Equal(t, 1, counts["BinaryExpr"])
	assert.Equal(t, 2, counts["LiteralExpr"])
	// `a` is referenced twice: once as the if-condition, once in the print
	assert.Equal(t, 2, counts["VariableExpr"])
}

func TestWalk_NilNodeIsANoOp(t *testing.T) {
	called := false
	ast.Walk(ast.VisitorFunc(func(ast.Node) { called = true }), nil)
	assert.False(t, called)
}

func TestExprID_IsUniquePerNode(t *testing.T) {
	stmts := parse(t, `a; a;`)
	first := stmts[0].(*ast.ExpressionStmt).Expr.(*ast.VariableExpr)
	second := stmts[1].(*ast.ExpressionStmt).Expr.(*ast.VariableExpr)
	assert.NotEqual(t, first.ExprID(), second.ExprID(), "syntactically identical references must resolve independently")
}

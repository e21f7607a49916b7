package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/parser"
	"github.com/mna/larch/lang/scanner"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, err := scanner.ScanTokens(src)
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	return stmts
}

func TestParse_VarDeclaration(t *testing.T) {
	stmts := parse(t, "var x = 1 + 2;")
	require.Len(t, stmts, 1)

	v, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name.Lexeme)

	bin, ok := v.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op.Lexeme)
}

func TestParse_ConditionalPrecedenceOverComma(t *testing.T) {
	// the comma operator must not swallow the ':' branch of a ternary
	stmts := parse(t, "print 1, 2 ? 3 : 4;")
	require.Len(t, stmts, 1)

	p, ok := stmts[0].(*ast.PrintStmt)
	require.True(t, ok)

	bin, ok := p.Expr.(*ast.BinaryExpr)
	require.True(t, ok, "top-level operator should be the comma")
	assert.Equal(t, ",", bin.Op.Lexeme)

	_, ok = bin.Right.(*ast.ConditionalExpr)
	assert.True(t, ok, "right side of comma should be the conditional")
}

func TestParse_AssignmentTargets(t *testing.T) {
	stmts := parse(t, "x = 1; obj.field = 2;")
	require.Len(t, stmts, 2)

	es1 := stmts[0].(*ast.ExpressionStmt)
	_, ok := es1.Expr.(*ast.AssignExpr)
	assert.True(t, ok)

	es2 := stmts[1].(*ast.ExpressionStmt)
	set, ok := es2.Expr.(*ast.SetExpr)
	require.True(t, ok)
	assert.Equal(t, "field", set.Name.Lexeme)
}

func TestParse_InvalidAssignmentTargetIsNonFatal(t *testing.T) {
	tokens, err := scanner.ScanTokens("1 = 2; print 3;")
	require.NoError(t, err)

	stmts, err := parser.Parse(tokens)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assignment target")
	// parsing continues past the error: both statements are still produced
	require.Len(t, stmts, 2)
}

func TestParse_ForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)

	_, ok = block.Stmts[0].(*ast.VarStmt)
	assert.True(t, ok, "initializer should be the first statement in the block")

	while, ok := block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	assert.True(t, while.FromFor)

	_, ok = while.Body.(*ast.PrintStmt)
	assert.True(t, ok, "body should be just the loop statement, not merged with post")

	require.NotNil(t, while.Post, "the increment clause should be kept on Post")
	assign, ok := while.Post.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "i", assign.Name.Lexeme)
}

func TestParse_ClassWithSuperclassAndMethods(t *testing.T) {
	stmts := parse(t, "class Foo < Bar { init(a) { this.a = a; } greet() { print this.a; } }")
	require.Len(t, stmts, 1)

	cl, ok := stmts[0].(*ast.ClassStmt)
	require.True(t, ok)
	assert.Equal(t, "Foo", cl.Name.Lexeme)
	require.NotNil(t, cl.Superclass)
	assert.Equal(t, "Bar", cl.Superclass.Name.Lexeme)
	require.Len(t, cl.Methods, 2)
	assert.Equal(t, "init", cl.Methods[0].Name.Lexeme)
	assert.Equal(t, "greet", cl.Methods[1].Name.Lexeme)
}

func TestParse_SuperCall(t *testing.T) {
	stmts := parse(t, "class A < B { m() { super.m(); } }")
	cl := stmts[0].(*ast.ClassStmt)
	es := cl.Methods[0].Body[0].(*ast.ExpressionStmt)
	call := es.Expr.(*ast.CallExpr)
	sup, ok := call.Callee.(*ast.SuperExpr)
	require.True(t, ok)
	assert.Equal(t, "m", sup.Method.Lexeme)
}

func TestParse_MissingSemicolonIsFatal(t *testing.T) {
	tokens, err := scanner.ScanTokens("var x = 1")
	require.NoError(t, err)
	_, err = parser.Parse(tokens)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect ';'")
}

func TestParse_TooManyArgumentsIsNonFatal(t *testing.T) {
	args := make([]byte, 0, 256*2)
	for i := 0; i < 256; i++ {
		if i > 0 {
			args = append(args, ',')
		}
		args = append(args, '1')
	}
	src := "f(" + string(args) + ");"

	tokens, err := scanner.ScanTokens(src)
	require.NoError(t, err)
	_, err = parser.Parse(tokens)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't have more than 255 arguments")
}

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/parser"
	"github.com/mna/larch/lang/resolver"
	"github.com/mna/larch/lang/scanner"
)

func resolveSrc(t *testing.T, src string) ([]ast.Stmt, resolver.Table, error) {
	t.Helper()
	tokens, err := scanner.ScanTokens(src)
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	table, err := resolver.Resolve(stmts)
	return stmts, table, err
}

func TestResolve_LocalShadowsGlobal(t *testing.T) {
	stmts, table, err := resolveSrc(t, `
		var a = "global";
		{
			var a = "local";
			print a;
		}
	`)
	require.NoError(t, err)

	block := stmts[1].(*ast.BlockStmt)
	printStmt := block.Stmts[1].(*ast.PrintStmt)
	varExpr := printStmt.Expr.(*ast.VariableExpr)

	dist, ok := table[varExpr.ExprID()]
	require.True(t, ok, "inner 'a' should resolve to a local scope")
	assert.Equal(t, 0, dist)
}

func TestResolve_GlobalReferenceIsUnrecorded(t *testing.T) {
	_, table, err := resolveSrc(t, `
		var a = 1;
		print a;
	`)
	require.NoError(t, err)
	assert.Empty(t, table, "top-level references resolve against globals and get no table entry")
}

func TestResolve_ClosureCapturesEnclosingFunctionLocal(t *testing.T) {
	stmts, table, err := resolveSrc(t, `
		fun outer() {
			var x = 1;
			fun inner() {
				print x;
			}
			return inner;
		}
	`)
	require.NoError(t, err)

	outer := stmts[0].(*ast.FunctionStmt)
	inner := outer.Body[1].(*ast.FunctionStmt)
	printStmt := inner.Body[0].(*ast.PrintStmt)
	varExpr := printStmt.Expr.(*ast.VariableExpr)

	dist, ok := table[varExpr.ExprID()]
	require.True(t, ok)
	assert.Equal(t, 1, dist, "x is one function scope up from inner's body")
}

func TestResolve_SelfInitializerIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `{ var a = a; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "own initializer")
}

func TestResolve_RedeclarationInSameScopeIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `{ var a = 1; var a = 2; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already a variable")
}

func TestResolve_ReturnOutsideFunctionIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `return 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top-level")
}

func TestResolve_ReturnValueFromInitializerIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `class A { init() { return 1; } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initializer")
}

func TestResolve_ThisOutsideClassIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `print this;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'this'")
}

func TestResolve_SuperWithoutSuperclassIsAnError(t *testing.T) {
	_, _, err := resolveSrc(t, `class A { m() { super.m(); } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no superclass")
}

func TestResolve_ClassCannotInheritFromItself(t *testing.T) {
	_, _, err := resolveSrc(t, `class A < A {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inherit from itself")
}

func TestResolve_BreakAndContinueOutsideLoopAreErrors(t *testing.T) {
	_, _, err := resolveSrc(t, `break;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'break'")

	_, _, err = resolveSrc(t, `continue;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'continue'")
}

func TestResolve_BreakInsideLoopIsFine(t *testing.T) {
	_, _, err := resolveSrc(t, `while (true) { break; }`)
	assert.NoError(t, err)
}

func TestResolveTrace_EmptyProgramRecordsNoScopes(t *testing.T) {
	_, trace, err := resolver.ResolveTrace([]ast.Stmt{})
	require.NoError(t, err)
	assert.Empty(t, trace)
}

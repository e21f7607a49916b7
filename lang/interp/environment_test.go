package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment_DefineShadowsEnclosing(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", 1.0)

	inner := NewEnvironment(outer)
	inner.Define("x", 2.0)

	v, ok := inner.GetAt(0, "x")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = outer.GetAt(0, "x")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestEnvironment_GetAtWalksAncestors(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("g", "global")
	mid := NewEnvironment(root)
	leaf := NewEnvironment(mid)

	v, ok := leaf.GetAt(2, "g")
	assert.True(t, ok)
	assert.Equal(t, "global", v)
}

func TestEnvironment_AssignAtFailsWhenNameNeverDeclaredThere(t *testing.T) {
	env := NewEnvironment(nil)
	ok := env.AssignAt(0, "missing", 1.0)
	assert.False(t, ok, "AssignAt must not silently create a binding")
}

func TestEnvironment_AssignAtOverwritesTargetFrame(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("x", 1.0)
	leaf := NewEnvironment(root)

	ok := leaf.AssignAt(1, "x", 9.0)
	assert.True(t, ok)

	v, _ := root.GetAt(0, "x")
	assert.Equal(t, 9.0, v)
}

func TestEnvironment_NamesListsOnlyThisFrame(t *testing.T) {
	root := NewEnvironment(nil)
	root.Define("a", 1.0)
	leaf := NewEnvironment(root)
	leaf.Define("b", 2.0)

	assert.ElementsMatch(t, []string{"b"}, leaf.Names())
	assert.ElementsMatch(t, []string{"a"}, root.Names())
}

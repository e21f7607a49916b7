package interp

import "github.com/dolthub/swiss"

// Environment is a single link in the lexical scope chain (spec.md §3/§4.4):
// a name-to-value mapping plus an optional parent. Closures retain a
// reference to the chain that was current at their declaration; several
// closures and frames may share the same Environment, which is why cyclic
// references (instance -> class -> method closure -> environment holding
// the instance) are possible and, per spec.md §9, left for the garbage
// collector rather than reclaimed explicitly.
type Environment struct {
	values    *swiss.Map[string, Value]
	enclosing *Environment
}

// NewEnvironment returns a fresh frame whose parent is enclosing (nil for
// the root/global frame).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: swiss.NewMap[string, Value](8), enclosing: enclosing}
}

// Define unconditionally inserts name into this frame, shadowing any
// binding of the same name in an enclosing frame.
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt walks distance parent links and reads name from that frame.
func (e *Environment) GetAt(distance int, name string) (Value, bool) {
	return e.ancestor(distance).values.Get(name)
}

// AssignAt walks distance parent links and writes name in that frame. It
// reports whether name was already bound there; per spec.md §4.4 the
// resolver guarantees presence for resolved locals, but the global frame
// (distance 0 from the permanent root reference) may legitimately see an
// assignment to a name that isn't declared yet, which the caller handles
// by defining it instead.
func (e *Environment) AssignAt(distance int, name string, value Value) bool {
	target := e.ancestor(distance)
	if _, ok := target.values.Get(name); !ok {
		return false
	}
	target.values.Put(name, value)
	return true
}

// Names returns every name bound directly in this frame (not its
// ancestors), in arbitrary order. Used by the REPL's tab completion.
func (e *Environment) Names() []string {
	names := make([]string, 0, e.values.Count())
	e.values.Iter(func(k string, _ Value) bool {
		names = append(names, k)
		return false
	})
	return names
}

package interp

import (
	"fmt"
	"strconv"
)

// Value is the tagged sum of spec.md §3: nil, bool, float64, string, or one
// of the Callable-implementing types in callable.go (*Function,
// *NativeFunction, *Class) and *Instance. Go's any stands in for the tag;
// a type switch recovers the variant wherever one is needed.
type Value = any

// Callable is implemented by every value that can appear on the left of a
// call expression.
type Callable interface {
	Arity() int
	Call(in *Interp, args []Value) (Value, error)
}

// truthy implements spec.md §4.6: nil and false are false; so, per the
// preserved source behavior documented in spec.md §9's Open Questions, are
// the empty string and the number zero. Everything else is true.
func truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// equalValues implements spec.md §4.6 equality: same-tag structural
// equality, cross-tag always false.
func equalValues(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return a == b
	}
}

// stringify implements spec.md §4.7's Print stringification rules.
func stringify(v Value) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// formatNumber renders a float64 using its shortest round-tripping decimal
// form; integral values come out without a trailing ".0" (spec.md §4.7).
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

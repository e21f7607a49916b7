package interp

import "time"

// defineNatives installs the single predefined global of spec.md §6:
// clock(), returning seconds since an arbitrary epoch.
func defineNatives(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		Name:   "clock",
		Arity_: 0,
		Fn: func(*Interp, []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}

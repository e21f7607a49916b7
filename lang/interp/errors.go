package interp

import (
	"fmt"

	"github.com/mna/larch/lang/token"
)

// RuntimeError is the single runtime error kind of spec.md §7: a type
// mismatch, undefined variable, division by zero, arity mismatch, or
// illegal property access, reported with the offending token's line and
// terminating the current program (or REPL input).
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Token.Line, e.Message)
}

func runtimeErrorf(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// returnSignal, breakSignal and continueSignal are the non-local exits of
// spec.md §4.7 and §9: they are never errors and must never reach the
// diagnostics channel. They unwind the Go call stack via panic/recover,
// caught at the nearest handler (a function call for returnSignal, a loop
// iteration for break/continueSignal) -- the same panic/recover-to-a-
// sentinel idiom the parser uses for its own internal control flow.
type returnSignal struct{ value Value }
type breakSignal struct{}
type continueSignal struct{}

// Package diag implements the collected-diagnostics model shared by the
// scanner, parser and resolver stages: each stage gathers every error it
// finds in a List rather than stopping at the first one, following
// spec.md §7's "four error kinds" design.
package diag

import (
	"fmt"
	"sort"
	"strings"
)

// Diagnostic is a single scanner, parse or resolve error, formatted per
// spec.md §6: "[line N] Error<location>: <message>".
type Diagnostic struct {
	Line    int
	Where   string // "" | " at end" | " at 'lexeme'"
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// List accumulates Diagnostics produced while processing a single chunk of
// source. A List is itself an error (once non-empty) so that a pipeline
// stage can propagate "did this stage fail" with a single return value,
// while still giving the caller access to every individual Diagnostic.
type List struct {
	items []Diagnostic
}

// Add appends a Diagnostic to the list.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
}

// Addf builds and appends a Diagnostic from a line, location and formatted
// message.
func (l *List) Addf(line int, where, format string, args ...any) {
	l.Add(Diagnostic{Line: line, Where: where, Message: fmt.Sprintf(format, args...)})
}

// Len returns the number of diagnostics collected so far.
func (l *List) Len() int { return len(l.items) }

// Items returns the collected diagnostics in the order they were added.
func (l *List) Items() []Diagnostic { return l.items }

// Sort orders the diagnostics by line number, stable within a line.
func (l *List) Sort() {
	sort.SliceStable(l.items, func(i, j int) bool { return l.items[i].Line < l.items[j].Line })
}

// Err returns l as an error if it is non-empty, or nil otherwise. This is
// the idiom every pipeline stage uses to report "see the collected errors".
func (l *List) Err() error {
	if len(l.items) == 0 {
		return nil
	}
	return l
}

func (l *List) Error() string {
	var sb strings.Builder
	for i, d := range l.items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Unwrap exposes each Diagnostic as a standalone error, so callers can use
// errors.Is/As against individual diagnostics if needed.
func (l *List) Unwrap() []error {
	errs := make([]error, len(l.items))
	for i, d := range l.items {
		errs[i] = diagError(d)
	}
	return errs
}

type diagError Diagnostic

func (d diagError) Error() string { return Diagnostic(d).String() }

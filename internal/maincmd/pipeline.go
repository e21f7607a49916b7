package maincmd

import (
	"io"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/parser"
	"github.com/mna/larch/lang/resolver"
	"github.com/mna/larch/lang/scanner"
)

// compile runs the scanner, parser and resolver stages on src in sequence,
// stopping at the first stage that reports an error (spec.md §7: a parse
// or resolve error suppresses later stages). Diagnostics are written to
// stderr as they're produced by whichever stage failed.
func compile(stderr io.Writer, src string) ([]ast.Stmt, resolver.Table, bool) {
	tokens, err := scanner.ScanTokens(src)
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return nil, nil, false
	}

	stmts, err := parser.Parse(tokens)
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return nil, nil, false
	}

	table, err := resolver.Resolve(stmts)
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return nil, nil, false
	}
	return stmts, table, true
}

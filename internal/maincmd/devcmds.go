package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/ast/astjson"
	"github.com/mna/larch/lang/parser"
	"github.com/mna/larch/lang/resolver"
	"github.com/mna/larch/lang/scanner"
)

// runDevCommand dispatches one of the pipeline-stage developer subcommands
// over each file in files, modeled on the teacher's per-stage
// tokenize/parse/resolve commands (github.com/mna/nenuphar/internal/maincmd).
func (c *Cmd) runDevCommand(_ context.Context, stdio mainer.Stdio, mode string, files []string) error {
	var failed bool
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			failed = true
			continue
		}

		var ok bool
		switch mode {
		case "tokenize":
			ok = TokenizeSource(stdio.Stdout, stdio.Stderr, string(src))
		case "parse":
			ok = ParseSource(stdio.Stdout, stdio.Stderr, string(src))
		case "resolve":
			ok = ResolveSource(stdio.Stdout, stdio.Stderr, string(src))
		case "astjson":
			ok = ASTJSONSource(stdio.Stdout, stdio.Stderr, string(src))
		default:
			panic("maincmd: unknown dev command " + mode)
		}
		if !ok {
			failed = true
		}
	}
	if failed {
		return errCompileFailed
	}
	return nil
}

// TokenizeSource scans src and writes one "<line> <type> <lexeme>" line per
// token to stdout; a scanner error is written to stderr.
func TokenizeSource(stdout, stderr io.Writer, src string) bool {
	tokens, err := scanner.ScanTokens(src)
	for _, tok := range tokens {
		fmt.Fprintf(stdout, "%d %s %q\n", tok.Line, tok.Type, tok.Lexeme)
	}
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return false
	}
	return true
}

// ParseSource scans and parses src, writing the syntax tree dump to
// stdout; a scanner or parse error is written to stderr.
func ParseSource(stdout, stderr io.Writer, src string) bool {
	tokens, err := scanner.ScanTokens(src)
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return false
	}
	stmts, err := parser.Parse(tokens)
	ast.Print(stdout, stmts)
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return false
	}
	return true
}

// ResolveSource runs src through scan, parse and resolve, writing the
// syntax tree dump plus the resolver's scope trace to stdout.
func ResolveSource(stdout, stderr io.Writer, src string) bool {
	tokens, err := scanner.ScanTokens(src)
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return false
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		io.WriteString(stderr, err.Error()+"\n")
		return false
	}
	_, trace, rerr := resolver.ResolveTrace(stmts)
	ast.Print(stdout, stmts)
	for _, t := range trace {
		fmt.Fprintf(stdout, "scope[%d]: %v\n", t.Depth, t.Names)
	}
	if rerr != nil {
		io.WriteString(stderr, rerr.Error()+"\n")
		return false
	}
	return true
}

// ASTJSONSource runs src through the full compile pipeline and writes its
// JSON-encoded syntax tree to stdout.
func ASTJSONSource(stdout, stderr io.Writer, src string) bool {
	stmts, _, ok := compile(stderr, src)
	if !ok {
		return false
	}
	doc, err := astjson.Marshal(stmts)
	if err != nil {
		fmt.Fprintf(stderr, "astjson: %s\n", err)
		return false
	}
	stdout.Write(doc)
	io.WriteString(stdout, "\n")
	return true
}

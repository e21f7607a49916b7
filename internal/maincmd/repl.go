package maincmd

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/maruel/natural"
	"github.com/mna/mainer"

	"github.com/mna/larch/internal/config"
	"github.com/mna/larch/lang/ast"
	"github.com/mna/larch/lang/interp"
	"github.com/mna/larch/lang/resolver"
)

var (
	promptColor = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed)
)

// repl implements spec.md §6's interactive prompt: one line at a time,
// `exit`/`quit`/`q`/empty input terminates, a top-level expression
// statement echoes its value before being discarded. Grounded on the
// readline+color REPL shape the pack shows in its go-mix example
// (chzyer/readline, fatih/color), adapted here to drive the larch
// pipeline instead.
func (c *Cmd) repl(_ context.Context, stdio mainer.Stdio) error {
	in := interp.New(stdio.Stdout)

	historyFile := ""
	if c.cfg != nil {
		historyFile = expandHome(c.cfg.HistoryFile)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(c.cfg),
		HistoryFile:     historyFile,
		AutoComplete:    newGlobalCompleter(in),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl+D) or readline.ErrInterrupt
			return nil
		}

		line = strings.TrimSpace(line)
		switch line {
		case "", "exit", "quit", "q":
			return nil
		}

		c.evalLine(stdio, in, line)
	}
}

// prompt colors the REPL prompt when the config asks for it; otherwise it
// is plain text so output stays readable when piped to a file.
func prompt(cfg *config.Config) string {
	if cfg != nil && cfg.PromptColor {
		return promptColor.Sprint("larch> ")
	}
	return "larch> "
}

// evalLine runs one line of REPL input to completion, recovering from any
// panic so a single bad input never kills the session, and printing a
// top-level expression statement's value per spec.md §6's REPL sugar.
func (c *Cmd) evalLine(stdio mainer.Stdio, in *interp.Interp, line string) {
	defer func() {
		if r := recover(); r != nil {
			errorColor.Fprintf(stdio.Stderr, "panic: %v\n", r)
		}
	}()

	stmts, table, ok := compile(stdio.Stderr, line)
	if !ok {
		return
	}

	if len(stmts) == 1 {
		if es, isExpr := stmts[0].(*ast.ExpressionStmt); isExpr {
			c.echoExpr(stdio, in, es, table)
			return
		}
	}

	if err := in.Run(stmts, table); err != nil {
		errorColor.Fprintf(stdio.Stderr, "%s\n", err)
	}
}

func (c *Cmd) echoExpr(stdio mainer.Stdio, in *interp.Interp, es *ast.ExpressionStmt, table resolver.Table) {
	echo := ast.NewPrintStmt(es.Expr)
	if err := in.Run([]ast.Stmt{echo}, table); err != nil {
		errorColor.Fprintf(stdio.Stderr, "%s\n", err)
	}
}

// newGlobalCompleter offers the currently-bound global names as tab
// completions, sorted the way a human reads them (maruel/natural: "a2"
// before "a10") rather than plain byte order.
func newGlobalCompleter(in *interp.Interp) *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItemDynamic(func(string) []string {
			names := in.GlobalNames()
			sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
			return names
		}),
	)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

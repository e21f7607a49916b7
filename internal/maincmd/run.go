package maincmd

import (
	"context"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/larch/lang/interp"
)

// run implements spec.md §6's one-file mode: read path once, execute it,
// and report a non-zero exit on any diagnostic or runtime error.
func (c *Cmd) run(_ context.Context, stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	stmts, table, ok := compile(stdio.Stderr, string(src))
	if !ok {
		return errCompileFailed
	}

	in := interp.New(stdio.Stdout)
	if err := in.Run(stmts, table); err != nil {
		io.WriteString(stdio.Stderr, err.Error()+"\n")
		return err
	}
	return nil
}

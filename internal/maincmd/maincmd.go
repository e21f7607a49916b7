// Package maincmd implements larch's command-line surface, following the
// shape of the teacher's own internal/maincmd package
// (github.com/mna/nenuphar/internal/maincmd): a Cmd struct driven by
// github.com/mna/mainer's flag parser, one method per mode of operation.
//
// spec.md §6 specifies a minimal CLI (`prog [<file>]`: zero arguments is
// an interactive prompt, one argument is a file to run). The teacher's
// richer subcommand-per-pipeline-stage surface (tokenize/parse/resolve)
// is additive: larch keeps it, plus an astjson subcommand, as developer
// tooling layered on top of the required run/repl behavior.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/larch/internal/config"
	"github.com/mna/larch/lang/parser"
)

const binName = "larch"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<file>]
       %[1]s [<option>...] <tokenize|parse|resolve|astjson> <file>...
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<file>]
       %[1]s [<option>...] <tokenize|parse|resolve|astjson> <file>...
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the %[1]s scripting language.

With no <file>, starts an interactive prompt. With exactly one <file> that
is not one of the subcommand names below, runs that file once.

The <command> can be one of:
       tokenize                  Print the token stream for each file.
       parse                     Print the parsed syntax tree for each file.
       resolve                   Print the parsed syntax tree with scope
                                 resolution information for each file.
       astjson                   Print the parsed syntax tree as JSON for
                                 each file.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -c --config <path>        Path to a YAML config file.

More information:
       https://github.com/mna/larch
`, binName)

	devCommands = map[string]bool{"tokenize": true, "parse": true, "resolve": true, "astjson": true}
)

// Cmd is larch's entry point, parsed from argv by github.com/mna/mainer.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help       bool   `flag:"h,help"`
	Version    bool   `flag:"v,version"`
	ConfigPath string `flag:"c,config"`

	args []string
	mode string
	cfg  *config.Config
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(map[string]bool)   {}

// Validate classifies the invocation into one of larch's modes (spec.md
// §6: repl, run, or one of the developer subcommands), rejecting anything
// with more than one bare file argument.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	switch {
	case len(c.args) == 0:
		c.mode = "repl"
	case devCommands[c.args[0]]:
		if len(c.args) < 2 {
			return fmt.Errorf("%s: at least one file must be provided", c.args[0])
		}
		c.mode = c.args[0]
	case len(c.args) == 1:
		c.mode = "run"
	default:
		return errors.New("too many arguments")
	}
	return nil
}

// Main is larch's mainer.Main implementation: parse flags, load config,
// dispatch to the mode Validate selected.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: true, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "config: %s\n", err)
		return mainer.Failure
	}
	c.cfg = cfg
	if cfg.MaxCallArgs > 0 {
		parser.MaxArgs = cfg.MaxCallArgs
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	var runErr error
	switch c.mode {
	case "repl":
		runErr = c.repl(ctx, stdio)
	case "run":
		runErr = c.run(ctx, stdio, c.args[0])
	case "tokenize", "parse", "resolve", "astjson":
		runErr = c.runDevCommand(ctx, stdio, c.mode, c.args[1:])
	}
	if runErr != nil {
		return mainer.Failure
	}
	return mainer.Success
}

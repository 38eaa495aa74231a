package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/internal/cliopt"
	"github.com/ministore/filterexpr/internal/cliutil"
)

func newFlagSet(g cliopt.GlobalOptions, name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(g.Stderr)
	return fs
}

// parseFlags returns -1 when the command should continue, otherwise the
// exit code to return.
func parseFlags(g cliopt.GlobalOptions, fs *pflag.FlagSet, argv []string) int {
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(g.Stderr, "%s: %v\n", fs.Name(), err)
		return 2
	}
	return -1
}

func addTypeFlag(fs *pflag.FlagSet, t *string) {
	fs.StringVarP(t, "type", "t", "", "filter type: boolean|number|string|date")
}

func addFormatFlag(fs *pflag.FlagSet, g cliopt.GlobalOptions, f *string) {
	fs.StringVarP(f, "format", "f", g.Format, "output format: pretty|json|yaml|msgpack")
}

func requireType(g cliopt.GlobalOptions, s string) (clause.FilterType, bool) {
	if s == "" {
		fmt.Fprintln(g.Stderr, "missing --type")
		return "", false
	}
	t, ok := clause.ParseFilterType(s)
	if !ok {
		fmt.Fprintf(g.Stderr, "unknown filter type: %s\n", s)
		return "", false
	}
	return t, true
}

// expression picks the filter text from --expr, the remaining arguments, or
// stdin, in that order.
func expression(g cliopt.GlobalOptions, expr string, args []string) (string, error) {
	if expr != "" {
		return expr, nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if g.Stdin == nil {
		return "", errors.New("missing expression")
	}
	b, err := io.ReadAll(g.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func format(s string) cliutil.OutputFormat {
	return cliutil.ParseOutputFormat(s)
}

func fail(g cliopt.GlobalOptions, err error) int {
	fmt.Fprintln(g.Stderr, err)
	return 1
}

package commands

import (
	"io"
	"log/slog"

	"github.com/ministore/filterexpr/filterexpr"
	"github.com/ministore/filterexpr/internal/cliopt"
	"github.com/ministore/filterexpr/internal/cliutil"
)

// RunParse parses one expression and prints clauses and diagnostics. It exits
// with 1 when any error diagnostic was produced.
func RunParse(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet(g, "parse")
	var typ, expr, out string
	addTypeFlag(fs, &typ)
	addFormatFlag(fs, g, &out)
	fs.StringVarP(&expr, "expr", "e", "", "filter expression (default: remaining args or stdin)")
	if code := parseFlags(g, fs, argv); code >= 0 {
		return code
	}
	t, ok := requireType(g, typ)
	if !ok {
		return 2
	}
	src, err := expression(g, expr, fs.Args())
	if err != nil {
		return fail(g, err)
	}

	res := filterexpr.Parse(src, t)
	slog.Debug("parsed filter", "type", t, "clauses", len(res.Clauses), "errors", len(res.Errors))
	view, err := cliutil.NewParseView(src, t, res)
	if err != nil {
		return fail(g, err)
	}
	err = cliutil.Emit(g.Stdout, format(out), view, func(w io.Writer) error {
		return cliutil.PrintParse(w, view)
	})
	if err != nil {
		return fail(g, err)
	}
	if res.HasErrors() {
		return 1
	}
	return 0
}

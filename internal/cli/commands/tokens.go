package commands

import (
	"io"

	"github.com/ministore/filterexpr/filterexpr"
	"github.com/ministore/filterexpr/internal/cliopt"
	"github.com/ministore/filterexpr/internal/cliutil"
)

func RunTokens(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet(g, "tokens")
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

	views := cliutil.TokenViews(filterexpr.Tokens(src, t))
	err = cliutil.Emit(g.Stdout, format(out), views, func(w io.Writer) error {
		cliutil.PrintTokens(w, views)
		return nil
	})
	if err != nil {
		return fail(g, err)
	}
	return 0
}

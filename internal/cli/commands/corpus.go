package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/corpus"
	"github.com/ministore/filterexpr/internal/cliopt"
	"github.com/ministore/filterexpr/internal/cliutil"
)

func RunCorpus(g cliopt.GlobalOptions, argv []string) int {
	if len(argv) == 0 {
		fmt.Fprintln(g.Stderr, "corpus requires a subcommand: add|get|list|replay|delete")
		return 2
	}
	verb := argv[0]
	args := argv[1:]
	switch verb {
	case "add":
		return runCorpusAdd(g, args)
	case "get":
		return runCorpusGet(g, args)
	case "list":
		return runCorpusList(g, args)
	case "replay":
		return runCorpusReplay(g, args)
	case "delete":
		return runCorpusDelete(g, args)
	case "--help", "-h", "help":
		fmt.Fprintln(g.Stdout, "corpus subcommands: add|get|list|replay|delete")
		return 0
	default:
		fmt.Fprintf(g.Stderr, "unknown corpus subcommand: %s\n", verb)
		return 2
	}
}

func withStore(g cliopt.GlobalOptions, fn func(ctx context.Context, s *corpus.Store) int) int {
	ctx := context.Background()
	s, err := cliutil.OpenCorpus(ctx, g)
	if err != nil {
		return fail(g, err)
	}
	defer s.Close()
	return fn(ctx, s)
}

func runCorpusAdd(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet(g, "corpus add")
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
	return withStore(g, func(ctx context.Context, s *corpus.Store) int {
		e, err := s.Add(ctx, t, src)
		if err != nil {
			return fail(g, err)
		}
		return emitEntries(g, out, e, []corpus.Entry{e})
	})
}

func runCorpusGet(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet(g, "corpus get")
	var id int64
	var out string
	fs.Int64Var(&id, "id", 0, "entry id")
	addFormatFlag(fs, g, &out)
	if code := parseFlags(g, fs, argv); code >= 0 {
		return code
	}
	if id == 0 {
		fmt.Fprintln(g.Stderr, "missing --id")
		return 2
	}
	return withStore(g, func(ctx context.Context, s *corpus.Store) int {
		e, err := s.Get(ctx, id)
		if err != nil {
			return fail(g, err)
		}
		return emitEntries(g, out, e, []corpus.Entry{e})
	})
}

func runCorpusList(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet(g, "corpus list")
	var typ, out string
	var opts corpus.ListOptions
	fs.StringVarP(&typ, "type", "t", "", "only entries of this filter type")
	fs.BoolVar(&opts.UnstableOnly, "unstable", false, "only entries whose round trip is unstable")
	fs.IntVar(&opts.Limit, "limit", 0, "max entries (0 = all)")
	addFormatFlag(fs, g, &out)
	if code := parseFlags(g, fs, argv); code >= 0 {
		return code
	}
	if typ != "" {
		t, ok := requireType(g, typ)
		if !ok {
			return 2
		}
		opts.Type = t
	}
	return withStore(g, func(ctx context.Context, s *corpus.Store) int {
		entries, err := s.List(ctx, opts)
		if err != nil {
			return fail(g, err)
		}
		return emitEntries(g, out, entries, entries)
	})
}

func runCorpusReplay(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet(g, "corpus replay")
	var typ, out string
	fs.StringVarP(&typ, "type", "t", "", "only entries of this filter type")
	addFormatFlag(fs, g, &out)
	if code := parseFlags(g, fs, argv); code >= 0 {
		return code
	}
	var t clause.FilterType
	if typ != "" {
		var ok bool
		if t, ok = requireType(g, typ); !ok {
			return 2
		}
	}
	return withStore(g, func(ctx context.Context, s *corpus.Store) int {
		report, err := s.Replay(ctx, t)
		if err != nil {
			return fail(g, err)
		}
		err = cliutil.Emit(g.Stdout, format(out), report, func(w io.Writer) error {
			fmt.Fprintf(w, "replayed %d: %d stable, %d unstable, %d changed\n",
				report.Total, report.Stable, report.Unstable, len(report.Changes))
			for _, c := range report.Changes {
				fmt.Fprintf(w, "  #%d %s %q: %q -> %q (stable=%t)\n",
					c.ID, c.Type, c.Source, c.OldCanonical, c.NewCanonical, c.Stable)
			}
			return nil
		})
		if err != nil {
			return fail(g, err)
		}
		if report.Unstable > 0 {
			return 1
		}
		return 0
	})
}

func runCorpusDelete(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet(g, "corpus delete")
	var id int64
	fs.Int64Var(&id, "id", 0, "entry id")
	if code := parseFlags(g, fs, argv); code >= 0 {
		return code
	}
	if id == 0 {
		fmt.Fprintln(g.Stderr, "missing --id")
		return 2
	}
	return withStore(g, func(ctx context.Context, s *corpus.Store) int {
		ok, err := s.Delete(ctx, id)
		if err != nil {
			return fail(g, err)
		}
		if ok {
			fmt.Fprintln(g.Stdout, "deleted")
		} else {
			fmt.Fprintln(g.Stdout, "not found")
		}
		return 0
	})
}

// emitEntries writes v in the chosen format, rendering entries as a listing
// for pretty output.
func emitEntries(g cliopt.GlobalOptions, out string, v any, entries []corpus.Entry) int {
	err := cliutil.Emit(g.Stdout, format(out), v, func(w io.Writer) error {
		for _, e := range entries {
			stable := "stable"
			if !e.Stable {
				stable = "UNSTABLE"
			}
			fmt.Fprintf(w, "#%s %-7s %-8s %q -> %q\n", strconv.FormatInt(e.ID, 10), e.Type, stable, e.Source, e.Canonical)
			for _, d := range e.Diagnostics {
				fmt.Fprintf(w, "    %s\n", d)
			}
		}
		return nil
	})
	if err != nil {
		return fail(g, err)
	}
	return 0
}

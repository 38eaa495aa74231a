package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ministore/filterexpr/internal/cli/commands"
	"github.com/ministore/filterexpr/internal/cliopt"
	"github.com/ministore/filterexpr/internal/config"
)

// Execute runs the CLI on the process streams and returns an exit code.
func Execute(argv []string) int {
	return Run(argv, os.Stdin, os.Stdout, os.Stderr)
}

// Run runs the CLI with explicit streams.
func Run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	globalFS := pflag.NewFlagSet("filterexpr", pflag.ContinueOnError)
	globalFS.SetOutput(stderr)
	globalFS.SetInterspersed(false)
	cliopt.BindGlobalFlags(globalFS)

	if err := globalFS.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			PrintRootHelp(stdout)
			return 0
		}
		fmt.Fprintf(stderr, "filterexpr: %v\n", err)
		return 2
	}

	cfg, err := config.Load(globalFS)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	slog.SetDefault(cfg.Logger(stderr))
	if path := cfg.File(); path != "" {
		slog.Debug("loaded config file", "path", path)
	} else {
		slog.Debug("no config file found, using defaults and environment")
	}
	g := cliopt.FromConfig(cfg, stdin, stdout, stderr)

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(stdout)
		return 0
	case "parse":
		return commands.RunParse(g, rest)
	case "serialize":
		return commands.RunSerialize(g, rest)
	case "tokens":
		return commands.RunTokens(g, rest)
	case "corpus":
		return commands.RunCorpus(g, rest)
	case "config":
		if err := cfg.Dump(stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(stderr)
		return 2
	}
}

package cliopt

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/ministore/filterexpr/internal/config"
)

// GlobalOptions are resolved once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Backend     string
	SQLitePath  string
	PostgresDSN string
	PGSchema    string

	Format string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// BindGlobalFlags registers the root flags. Defaults live in the config
// package; a flag only wins when it is set explicitly.
func BindGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: ./config.yaml, then the user config dir)")
	fs.String("log-level", "error", "log level: debug|info|warn|error")
	fs.String("format", "pretty", "output format: pretty|json|yaml|msgpack")
	fs.String("backend", "sqlite", "corpus backend: sqlite|postgres")
	fs.String("sqlite-path", "filters.db", "corpus sqlite file")
	fs.String("pg-dsn", "", "corpus postgres DSN")
	fs.String("pg-schema", "filterexpr", "corpus postgres schema")
}

// FromConfig copies the resolved settings into GlobalOptions.
func FromConfig(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) GlobalOptions {
	return GlobalOptions{
		Backend:     cfg.Corpus.Backend,
		SQLitePath:  cfg.Corpus.SQLitePath,
		PostgresDSN: cfg.Corpus.PGDSN,
		PGSchema:    cfg.Corpus.PGSchema,
		Format:      cfg.Output.Format,
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
	}
}

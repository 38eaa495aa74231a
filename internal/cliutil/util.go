package cliutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/ministore/filterexpr/filterexpr/corpus"
	"github.com/ministore/filterexpr/filterexpr/corpus/postgres"
	"github.com/ministore/filterexpr/filterexpr/corpus/sqlite"
	"github.com/ministore/filterexpr/internal/cliopt"
)

type OutputFormat string

const (
	FormatPretty  OutputFormat = "pretty"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatMsgpack OutputFormat = "msgpack"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON, FormatYAML, FormatMsgpack:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Emit writes v in a structured format. Pretty output is produced by pretty,
// which may be nil when v has no human rendering; JSON is used then.
func Emit(w io.Writer, f OutputFormat, v any, pretty func(io.Writer) error) error {
	switch f {
	case FormatJSON:
		return PrintJSON(w, v)
	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case FormatMsgpack:
		b, err := msgpack.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		if pretty == nil {
			return PrintJSON(w, v)
		}
		return pretty(w)
	}
}

// NewCorpusAdapter picks the corpus storage adapter for the configured backend.
func NewCorpusAdapter(g cliopt.GlobalOptions) (corpus.Adapter, error) {
	switch strings.ToLower(g.Backend) {
	case "postgres", "pg":
		if g.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend requires --pg-dsn")
		}
		a := postgres.New(g.PostgresDSN, g.PGSchema)
		if err := a.ValidateSchema(); err != nil {
			return nil, err
		}
		return a, nil
	case "sqlite", "":
		return sqlite.New(g.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", g.Backend)
	}
}

// OpenCorpus opens the configured corpus store.
func OpenCorpus(ctx context.Context, g cliopt.GlobalOptions) (*corpus.Store, error) {
	adapter, err := NewCorpusAdapter(g)
	if err != nil {
		return nil, err
	}
	return corpus.Open(ctx, adapter, corpus.Options{})
}

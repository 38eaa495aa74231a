package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("log-level", "error", "")
	fs.String("format", "pretty", "")
	fs.String("backend", "sqlite", "")
	fs.String("sqlite-path", "filters.db", "")
	fs.String("pg-dsn", "", "")
	fs.String("pg-schema", "filterexpr", "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Output.Format != "pretty" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Corpus.Backend != "sqlite" || cfg.Corpus.SQLitePath != "filters.db" || cfg.Corpus.PGSchema != "filterexpr" {
		t.Errorf("unexpected corpus defaults: %+v", cfg.Corpus)
	}
	if cfg.SlogLevel() != slog.LevelError {
		t.Errorf("SlogLevel = %v", cfg.SlogLevel())
	}
	if cfg.File() != "" {
		t.Errorf("File() = %q, want empty", cfg.File())
	}
}

func TestLoadFileFromWorkingDir(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "logging:\n  level: debug\ncorpus:\n  sqlitePath: corpus.db\n")
	cfg, err := Load(flagSet(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if cfg.Corpus.SQLitePath != "corpus.db" {
		t.Errorf("sqlitePath = %q", cfg.Corpus.SQLitePath)
	}
	if cfg.Output.Format != "pretty" {
		t.Errorf("format = %q", cfg.Output.Format)
	}
	if got, want := filepath.Base(cfg.File()), "config.yaml"; got != want {
		t.Errorf("File() = %q, want a path ending in %q", cfg.File(), want)
	}
}

func TestPrecedence(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "output:\n  format: yaml\ncorpus:\n  backend: postgres\n  pgSchema: fromfile\n")
	t.Setenv("FILTEREXPR_CORPUS_PGSCHEMA", "fromenv")
	t.Setenv("FILTEREXPR_OUTPUT_FORMAT", "msgpack")

	cfg, err := Load(flagSet(t, "--config", path, "--format", "json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("flag should win: format = %q", cfg.Output.Format)
	}
	if cfg.Corpus.PGSchema != "fromenv" {
		t.Errorf("env should beat file: pgSchema = %q", cfg.Corpus.PGSchema)
	}
	if cfg.Corpus.Backend != "postgres" {
		t.Errorf("file should beat default: backend = %q", cfg.Corpus.Backend)
	}
	if cfg.Corpus.SQLitePath != "filters.db" {
		t.Errorf("unset flag must not override: sqlitePath = %q", cfg.Corpus.SQLitePath)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)
	tests := []struct {
		name string
		body string
		args []string
		want string
	}{
		{name: "missing explicit file", args: []string{"--config", filepath.Join(dir, "nope.yaml")}, want: "reading config"},
		{name: "bad level", body: "logging:\n  level: loud\n", want: "invalid log level"},
		{name: "bad format", args: []string{"--format", "xml"}, want: "invalid output format"},
		{name: "bad backend", args: []string{"--backend", "redis"}, want: "invalid corpus backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.body != "" {
				args = append(args, "--config", writeConfig(t, t.TempDir(), tt.body))
			}
			_, err := Load(flagSet(t, args...))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestDumpIsLoadable(t *testing.T) {
	isolate(t)
	cfg, err := Load(flagSet(t, "--pg-dsn", "postgres://localhost/db"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var buf bytes.Buffer
	if err := cfg.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	var back Config
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal dump: %v", err)
	}
	want := *cfg
	want.file = ""
	if back != want {
		t.Errorf("dump round trip = %+v, want %+v", back, want)
	}
}

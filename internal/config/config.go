// Package config loads CLI settings from config.yaml, FILTEREXPR_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "FILTEREXPR"

// Config holds all CLI settings.
type Config struct {
	Logging struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"logging" yaml:"logging"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`

	Corpus struct {
		Backend    string `mapstructure:"backend" yaml:"backend"`
		SQLitePath string `mapstructure:"sqlitePath" yaml:"sqlitePath"`
		PGDSN      string `mapstructure:"pgDSN" yaml:"pgDSN"`
		PGSchema   string `mapstructure:"pgSchema" yaml:"pgSchema"`
	} `mapstructure:"corpus" yaml:"corpus"`

	file string
}

// File returns the config file that was read, or "" when none was found.
func (c *Config) File() string {
	return c.file
}

// flagKeys maps global flag names to config keys.
var flagKeys = map[string]string{
	"log-level":   "logging.level",
	"format":      "output.format",
	"backend":     "corpus.backend",
	"sqlite-path": "corpus.sqlitePath",
	"pg-dsn":      "corpus.pgDSN",
	"pg-schema":   "corpus.pgSchema",
}

// Load builds a Config. A config file named by the --config flag must exist;
// otherwise config.yaml is looked up in the working directory and then in
// the user config directory, and a missing file is not an error. fs may be
// nil; only flags that were set on it override file and environment values.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "filterexpr"))
		}
	}

	file := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		file = v.ConfigFileUsed()
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	cfg := Config{file: file}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "error")
	v.SetDefault("output.format", "pretty")
	v.SetDefault("corpus.backend", "sqlite")
	v.SetDefault("corpus.sqlitePath", "filters.db")
	v.SetDefault("corpus.pgDSN", "")
	v.SetDefault("corpus.pgSchema", "filterexpr")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Output.Format {
	case "pretty", "json", "yaml", "msgpack":
	default:
		return fmt.Errorf("invalid output format %q (want pretty|json|yaml|msgpack)", c.Output.Format)
	}
	switch strings.ToLower(c.Corpus.Backend) {
	case "sqlite", "postgres", "pg":
	default:
		return fmt.Errorf("invalid corpus backend %q (want sqlite|postgres)", c.Corpus.Backend)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		return slog.LevelError
	}
	return level
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// Dump renders the effective configuration as YAML.
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

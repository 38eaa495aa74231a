// Package postgres stores the corpus in a dedicated PostgreSQL schema through
// pgx.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ministore/filterexpr/filterexpr/corpus"
	"github.com/ministore/filterexpr/filterexpr/corpus/sqlbuilder"
)

type Adapter struct {
	DSN    string
	Schema string // used as dedicated schema via search_path
}

func New(dsn, schema string) *Adapter {
	return &Adapter{DSN: dsn, Schema: schema}
}

func (a *Adapter) Backend() corpus.Backend { return corpus.BackendPostgres }

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle { return sqlbuilder.PlaceholderDollar }

func (a *Adapter) StoreID() string { return "postgres:" + a.Schema }

func (a *Adapter) Close() error { return nil }

func (a *Adapter) SQL() corpus.SQL { return SQLTemplates }

var schemaNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateSchema checks that the schema name is a plain identifier.
func (a *Adapter) ValidateSchema() error {
	if a.Schema == "" || !schemaNameRe.MatchString(a.Schema) {
		return fmt.Errorf("invalid postgres schema name %q (must match %s)", a.Schema, schemaNameRe.String())
	}
	return nil
}

func quoteIdent(ident string) string {
	// ident is validated to contain no quotes; safe to wrap
	return `"` + ident + `"`
}

// connConfig parses the DSN and pins search_path to the corpus schema.
func (a *Adapter) connConfig() (*pgx.ConnConfig, error) {
	if err := a.ValidateSchema(); err != nil {
		return nil, err
	}
	cfg, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = make(map[string]string)
	}
	cfg.RuntimeParams["search_path"] = fmt.Sprintf("%s,public", quoteIdent(a.Schema))
	return cfg, nil
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	cfg, err := a.connConfig()
	if err != nil {
		return nil, err
	}
	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) EnsureSchema(ctx context.Context, db *sql.DB) error {
	if err := a.ValidateSchema(); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+quoteIdent(a.Schema)); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, ddlBase)
	return err
}

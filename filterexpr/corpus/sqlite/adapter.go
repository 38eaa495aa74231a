// Package sqlite stores the corpus in a SQLite file through the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ministore/filterexpr/filterexpr/corpus"
	"github.com/ministore/filterexpr/filterexpr/corpus/sqlbuilder"
)

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: "sqlite"}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() corpus.Backend {
	return corpus.BackendSQLite
}

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	return sqlbuilder.PlaceholderQuestion
}

func (a *Adapter) StoreID() string {
	return a.Path
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	dsn := a.Path
	if !strings.Contains(dsn, "?") {
		dsn = dsn + "?_pragma=busy_timeout(5000)"
	} else {
		dsn = dsn + "&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open(a.DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) SQL() corpus.SQL {
	return SQLTemplates
}

func (a *Adapter) EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ddlBase); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous=NORMAL;")
	return nil
}

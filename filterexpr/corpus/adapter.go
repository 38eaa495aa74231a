package corpus

import (
	"context"
	"database/sql"

	"github.com/ministore/filterexpr/filterexpr/corpus/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Adapter abstracts database-specific operations
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle
	StoreID() string

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// EnsureSchema creates the corpus tables if they are missing. It is
	// idempotent.
	EnsureSchema(ctx context.Context, db *sql.DB) error

	SQL() SQL
}

// SQL holds prepared SQL templates for common operations
type SQL struct {
	GetMeta  string
	InitMeta string

	// UpsertFilter takes filter_type, source, canonical, stable,
	// diagnostics, created_at, updated_at and returns id, created_at.
	UpsertFilter string
	GetFilter    string
	DeleteFilter string
	// UpdateReplay takes canonical, stable, diagnostics, updated_at, id.
	UpdateReplay string
	// ListFilters is the SELECT list without any WHERE clause.
	ListFilters string
}

package sqlite

import "github.com/ministore/filterexpr/filterexpr/corpus"

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT
);

CREATE TABLE IF NOT EXISTS filters (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  filter_type TEXT    NOT NULL,
  source      TEXT    NOT NULL,
  canonical   TEXT    NOT NULL DEFAULT '',
  stable      INTEGER NOT NULL DEFAULT 0,
  diagnostics TEXT    NOT NULL DEFAULT '[]',
  created_at  INTEGER NOT NULL,
  updated_at  INTEGER NOT NULL,
  UNIQUE (filter_type, source)
);
CREATE INDEX IF NOT EXISTS idx_filters_type ON filters(filter_type, id);
`

const filterColumns = "id, filter_type, source, canonical, stable, diagnostics, created_at, updated_at"

var SQLTemplates = corpus.SQL{
	GetMeta:  "SELECT value FROM meta WHERE key = ?1",
	InitMeta: "INSERT INTO meta(key,value) VALUES(?1,?2) ON CONFLICT(key) DO NOTHING",
	UpsertFilter: `INSERT INTO filters(filter_type, source, canonical, stable, diagnostics, created_at, updated_at)
		VALUES(?1, ?2, ?3, ?4, ?5, ?6, ?7)
		ON CONFLICT(filter_type, source) DO UPDATE SET canonical=excluded.canonical, stable=excluded.stable,
			diagnostics=excluded.diagnostics, updated_at=excluded.updated_at
		RETURNING id, created_at`,
	GetFilter:    "SELECT " + filterColumns + " FROM filters WHERE id = ?1",
	DeleteFilter: "DELETE FROM filters WHERE id = ?1",
	UpdateReplay: "UPDATE filters SET canonical = ?1, stable = ?2, diagnostics = ?3, updated_at = ?4 WHERE id = ?5",
	ListFilters:  "SELECT " + filterColumns + " FROM filters",
}

package postgres

import "github.com/ministore/filterexpr/filterexpr/corpus"

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT
);

CREATE TABLE IF NOT EXISTS filters (
  id          BIGSERIAL PRIMARY KEY,
  filter_type TEXT    NOT NULL,
  source      TEXT    NOT NULL,
  canonical   TEXT    NOT NULL DEFAULT '',
  stable      BOOLEAN NOT NULL DEFAULT FALSE,
  diagnostics JSONB   NOT NULL DEFAULT '[]'::jsonb,
  created_at  BIGINT  NOT NULL,
  updated_at  BIGINT  NOT NULL,
  UNIQUE (filter_type, source)
);
CREATE INDEX IF NOT EXISTS idx_filters_type ON filters(filter_type, id);
`

const filterColumns = "id, filter_type, source, canonical, stable, diagnostics::text, created_at, updated_at"

var SQLTemplates = corpus.SQL{
	GetMeta:  "SELECT value FROM meta WHERE key = $1",
	InitMeta: "INSERT INTO meta(key,value) VALUES($1,$2) ON CONFLICT(key) DO NOTHING",
	UpsertFilter: `INSERT INTO filters(filter_type, source, canonical, stable, diagnostics, created_at, updated_at)
	        VALUES($1, $2, $3, $4, $5::jsonb, $6, $7)
	        ON CONFLICT(filter_type, source) DO UPDATE
	          SET canonical=EXCLUDED.canonical,
	              stable=EXCLUDED.stable,
	              diagnostics=EXCLUDED.diagnostics,
	              updated_at=EXCLUDED.updated_at
	        RETURNING id, created_at`,
	GetFilter:    "SELECT " + filterColumns + " FROM filters WHERE id = $1",
	DeleteFilter: "DELETE FROM filters WHERE id = $1",
	UpdateReplay: "UPDATE filters SET canonical = $1, stable = $2, diagnostics = $3::jsonb, updated_at = $4 WHERE id = $5",
	ListFilters:  "SELECT " + filterColumns + " FROM filters",
}

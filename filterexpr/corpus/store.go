// Package corpus keeps a persistent collection of filter expressions and
// replays them through parse and serialize to find unstable round trips.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ministore/filterexpr/filterexpr"
	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/corpus/sqlbuilder"
)

const (
	metaMagicKey   = "corpus_magic"
	metaMagic      = "filterexpr"
	metaVersionKey = "corpus_version"
	metaVersion    = "1"
)

// Entry is one saved filter expression.
type Entry struct {
	ID          int64               `json:"id"`
	Type        clause.FilterType   `json:"type"`
	Source      string              `json:"source"`
	Canonical   string              `json:"canonical"`
	Stable      bool                `json:"stable"`
	Diagnostics []clause.Diagnostic `json:"diagnostics"`
	CreatedAt   int64               `json:"createdAt"`
	UpdatedAt   int64               `json:"updatedAt"`
}

type Options struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

type Store struct {
	adapter Adapter
	db      *sql.DB
	now     func() time.Time
}

// Open connects through adapter, creating the corpus tables when needed.
func Open(ctx context.Context, adapter Adapter, opts Options) (*Store, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, filterexpr.Wrap(filterexpr.ErrCorpus, "connect to database", err)
	}
	if err := adapter.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, filterexpr.Wrap(filterexpr.ErrCorpus, "create corpus schema", err)
	}

	sqlt := adapter.SQL()
	if _, err := db.ExecContext(ctx, sqlt.InitMeta, metaMagicKey, metaMagic); err != nil {
		db.Close()
		return nil, filterexpr.Wrap(filterexpr.ErrCorpus, "init meta", err)
	}
	if _, err := db.ExecContext(ctx, sqlt.InitMeta, metaVersionKey, metaVersion); err != nil {
		db.Close()
		return nil, filterexpr.Wrap(filterexpr.ErrCorpus, "init meta", err)
	}
	var magic string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, metaMagicKey).Scan(&magic); err != nil {
		db.Close()
		return nil, filterexpr.Wrap(filterexpr.ErrCorpus, "read meta", err)
	}
	if magic != metaMagic {
		db.Close()
		return nil, filterexpr.New(filterexpr.ErrCorpus, "not a filterexpr corpus")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	slog.Debug("corpus opened", "backend", adapter.Backend(), "store", adapter.StoreID())
	return &Store{adapter: adapter, db: db, now: now}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		s.db.Close()
	}
	return s.adapter.Close()
}

func (s *Store) Adapter() Adapter {
	return s.adapter
}

// Add saves source under type t together with its current canonical form.
// Adding the same source twice refreshes the existing entry.
func (s *Store) Add(ctx context.Context, t clause.FilterType, source string) (Entry, error) {
	if _, ok := clause.ParseFilterType(string(t)); !ok {
		return Entry{}, filterexpr.UnknownTypeError(t)
	}
	canonical, stable, res := filterexpr.RoundTrip(source, t)
	diags, err := json.Marshal(res.Errors)
	if err != nil {
		return Entry{}, filterexpr.Wrap(filterexpr.ErrCorpus, "encode diagnostics", err)
	}

	nowMS := s.nowMS()
	e := Entry{
		Type:        t,
		Source:      source,
		Canonical:   canonical,
		Stable:      stable,
		Diagnostics: res.Errors,
		UpdatedAt:   nowMS,
	}
	err = s.db.QueryRowContext(ctx, s.adapter.SQL().UpsertFilter,
		string(t), source, canonical, stable, string(diags), nowMS, nowMS,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return Entry{}, filterexpr.Wrap(filterexpr.ErrCorpus, "save filter", err)
	}
	return e, nil
}

// Get returns the entry with the given id.
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx, s.adapter.SQL().GetFilter, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, filterexpr.New(filterexpr.ErrCorpus, fmt.Sprintf("filter not found: %d", id))
	}
	if err != nil {
		return Entry{}, filterexpr.Wrap(filterexpr.ErrCorpus, "get filter", err)
	}
	return e, nil
}

// Delete removes an entry. It reports whether the entry existed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.adapter.SQL().DeleteFilter, id)
	if err != nil {
		return false, filterexpr.Wrap(filterexpr.ErrCorpus, "delete filter", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, filterexpr.Wrap(filterexpr.ErrCorpus, "delete filter", err)
	}
	return n > 0, nil
}

type ListOptions struct {
	// Type restricts the listing to one filter type when set.
	Type clause.FilterType
	// UnstableOnly skips entries whose round trip is stable.
	UnstableOnly bool
	// Limit caps the number of entries; 0 means no limit.
	Limit int
}

// List returns entries in insertion order.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	b := sqlbuilder.New(s.adapter.PlaceholderStyle())
	b.Write(s.adapter.SQL().ListFilters)
	if opts.Type != "" {
		b.Where("filter_type = " + b.Arg(string(opts.Type)))
	}
	if opts.UnstableOnly {
		b.Where("stable = " + b.Arg(false))
	}
	b.Write(" ORDER BY id")
	if opts.Limit > 0 {
		b.Write(" LIMIT ", b.Arg(opts.Limit))
	}

	rows, err := s.db.QueryContext(ctx, b.SQL(), b.Args()...)
	if err != nil {
		return nil, filterexpr.Wrap(filterexpr.ErrCorpus, "list filters", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, filterexpr.Wrap(filterexpr.ErrCorpus, "scan filter", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, filterexpr.Wrap(filterexpr.ErrCorpus, "list filters", err)
	}
	return entries, nil
}

// ReplayChange records an entry whose canonical form or stability changed.
type ReplayChange struct {
	ID           int64             `json:"id"`
	Type         clause.FilterType `json:"type"`
	Source       string            `json:"source"`
	OldCanonical string            `json:"oldCanonical"`
	NewCanonical string            `json:"newCanonical"`
	Stable       bool              `json:"stable"`
}

type ReplayReport struct {
	Total    int            `json:"total"`
	Stable   int            `json:"stable"`
	Unstable int            `json:"unstable"`
	Changes  []ReplayChange `json:"changes"`
}

// Replay round-trips every entry of type t (all types when t is empty) with
// the current parsers and serializers and stores the results in a single
// transaction.
func (s *Store) Replay(ctx context.Context, t clause.FilterType) (ReplayReport, error) {
	entries, err := s.List(ctx, ListOptions{Type: t})
	if err != nil {
		return ReplayReport{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReplayReport{}, filterexpr.Wrap(filterexpr.ErrCorpus, "begin transaction", err)
	}
	defer tx.Rollback()

	report := ReplayReport{Changes: []ReplayChange{}}
	update := s.adapter.SQL().UpdateReplay
	nowMS := s.nowMS()
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return ReplayReport{}, err
		}
		canonical, stable, res := filterexpr.RoundTrip(e.Source, e.Type)
		report.Total++
		if stable {
			report.Stable++
		} else {
			report.Unstable++
		}
		if canonical == e.Canonical && stable == e.Stable {
			continue
		}

		diags, err := json.Marshal(res.Errors)
		if err != nil {
			return ReplayReport{}, filterexpr.Wrap(filterexpr.ErrCorpus, "encode diagnostics", err)
		}
		if _, err := tx.ExecContext(ctx, update, canonical, stable, string(diags), nowMS, e.ID); err != nil {
			return ReplayReport{}, filterexpr.Wrap(filterexpr.ErrCorpus, "update filter", err)
		}
		report.Changes = append(report.Changes, ReplayChange{
			ID:           e.ID,
			Type:         e.Type,
			Source:       e.Source,
			OldCanonical: e.Canonical,
			NewCanonical: canonical,
			Stable:       stable,
		})
		slog.Debug("corpus replay changed entry", "id", e.ID, "type", e.Type, "old", e.Canonical, "new", canonical)
	}

	if err := tx.Commit(); err != nil {
		return ReplayReport{}, filterexpr.Wrap(filterexpr.ErrCorpus, "commit replay", err)
	}
	return report, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry reads the columns id, filter_type, source, canonical, stable,
// diagnostics, created_at, updated_at.
func scanEntry(row rowScanner) (Entry, error) {
	var (
		e     Entry
		typ   string
		diags []byte
	)
	if err := row.Scan(&e.ID, &typ, &e.Source, &e.Canonical, &e.Stable, &diags, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return Entry{}, err
	}
	e.Type = clause.FilterType(typ)
	e.Diagnostics = []clause.Diagnostic{}
	if len(diags) > 0 {
		if err := json.Unmarshal(diags, &e.Diagnostics); err != nil {
			return Entry{}, fmt.Errorf("decode diagnostics of filter %d: %w", e.ID, err)
		}
	}
	return e, nil
}

func (s *Store) nowMS() int64 {
	return s.now().UnixMilli()
}

package postgres

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/ministore/filterexpr/filterexpr/corpus"
	"github.com/ministore/filterexpr/filterexpr/corpus/sqlbuilder"
)

func TestValidateSchema(t *testing.T) {
	for _, name := range []string{"filterexpr", "_corpus2"} {
		if err := New("", name).ValidateSchema(); err != nil {
			t.Errorf("%q rejected: %v", name, err)
		}
	}
	for _, name := range []string{"", "1abc", `bad"name`, "a-b"} {
		if err := New("", name).ValidateSchema(); err == nil {
			t.Errorf("%q accepted", name)
		}
	}
}

func TestConnConfigPinsSearchPath(t *testing.T) {
	cfg, err := New("postgres://user:pw@localhost:5432/db", "filters").connConfig()
	if err != nil {
		t.Fatalf("connConfig: %v", err)
	}
	if got := cfg.RuntimeParams["search_path"]; got != `"filters",public` {
		t.Errorf("search_path = %q", got)
	}
}

func TestAdapterDescribesItself(t *testing.T) {
	a := New("", "filters")
	if a.Backend() != corpus.BackendPostgres || a.PlaceholderStyle() != sqlbuilder.PlaceholderDollar {
		t.Errorf("unexpected backend description")
	}
	if !strings.Contains(a.SQL().UpsertFilter, "$5::jsonb") {
		t.Errorf("upsert should cast diagnostics to jsonb")
	}
}

// Set FILTEREXPR_TEST_PG_DSN to run against a live server.
func TestStoreAgainstPostgres(t *testing.T) {
	dsn := os.Getenv("FILTEREXPR_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("FILTEREXPR_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	st, err := corpus.Open(ctx, New(dsn, "filterexpr_test"), corpus.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	e, err := st.Add(ctx, "number", "[1, 2)")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := st.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Canonical != "[1, 2)" || !got.Stable {
		t.Errorf("unexpected entry %+v", got)
	}
	if _, err := st.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

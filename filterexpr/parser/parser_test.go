package parser

import (
	"testing"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

var hostileInputs = []string{
	"",
	",,,,",
	"\\",
	"[[[(((",
	"!=!=!=",
	"before before after",
	"last last next this",
	"null not -null NOT",
	"%_%_\\%\\",
	"1 2 3 days ago ago from now now",
	"2025-13-99 99:99 for to for",
	"été, naïve \\é",
	"   \t\n  ",
}

func checkDiagnostics(t *testing.T, src string, diags []clause.Diagnostic) {
	t.Helper()
	for _, d := range diags {
		if d.StartIndex < 0 || d.EndIndex > len(src) || d.StartIndex > d.EndIndex {
			t.Errorf("diagnostic %v out of range for %q", d, src)
		}
	}
}

func TestParsersTerminateAndStayInRange(t *testing.T) {
	for _, src := range hostileInputs {
		b := Boolean(src)
		checkDiagnostics(t, src, b.Errors)
		if len(b.Errors) > len(b.Tokens) {
			t.Errorf("boolean %q: %d errors for %d tokens", src, len(b.Errors), len(b.Tokens))
		}

		n := Number(src)
		checkDiagnostics(t, src, n.Errors)
		if len(n.Errors) > len(n.Tokens) {
			t.Errorf("number %q: %d errors for %d tokens", src, len(n.Errors), len(n.Tokens))
		}

		s := String(src)
		checkDiagnostics(t, src, s.Errors)
		if len(s.Errors) > len(s.Tokens) {
			t.Errorf("string %q: %d errors for %d tokens", src, len(s.Errors), len(s.Tokens))
		}

		d := Date(src)
		checkDiagnostics(t, src, d.Errors)
		// A dangling prefix can add one diagnostic per token.
		if len(d.Errors) > 2*len(d.Tokens) {
			t.Errorf("date %q: %d errors for %d tokens", src, len(d.Errors), len(d.Tokens))
		}
	}
}

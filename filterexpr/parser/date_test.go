package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/tokenize"
)

func on(m clause.Moment) clause.DateMoment {
	return clause.DateMoment{Operator: clause.DateOn, Moment: m}
}

func TestDateParse(t *testing.T) {
	tests := []struct {
		input string
		want  []clause.DateClause
	}{
		{"3 days ago", []clause.DateClause{
			on(clause.OffsetMoment{Direction: clause.OffsetAgo, Amount: 3, Unit: clause.Day}),
		}},
		{"before 2025-08-30 08:30:20", []clause.DateClause{
			clause.DateMoment{Operator: clause.DateBefore, Moment: clause.AbsoluteMoment{Date: "2025-08-30 08:30:20", Unit: clause.Second}},
		}},
		{"After 2024-01-05 10:30", []clause.DateClause{
			clause.DateMoment{Operator: clause.DateAfter, Moment: clause.AbsoluteMoment{Date: "2024-01-05 10:30", Unit: clause.Minute}},
		}},
		{"2024-01-05, 2024-01, 2024", []clause.DateClause{
			on(clause.AbsoluteMoment{Date: "2024-01-05", Unit: clause.Day}),
			on(clause.AbsoluteMoment{Date: "2024-01", Unit: clause.Month}),
			on(clause.AbsoluteMoment{Date: "2024", Unit: clause.Year}),
		}},
		{"today, Yesterday, tomorrow, now", []clause.DateClause{
			on(clause.NamedMoment{Name: clause.Today}),
			on(clause.NamedMoment{Name: clause.Yesterday}),
			on(clause.NamedMoment{Name: clause.Tomorrow}),
			on(clause.NamedMoment{Name: clause.Now}),
		}},
		{"last week, this quarter, next Monday", []clause.DateClause{
			on(clause.IntervalMoment{Kind: clause.IntervalLast, Unit: "WEEK"}),
			on(clause.IntervalMoment{Kind: clause.IntervalThis, Unit: "QUARTER"}),
			on(clause.IntervalMoment{Kind: clause.IntervalNext, Unit: "MONDAY"}),
		}},
		{"last 3 weeks, next 2000 years", []clause.DateClause{
			on(clause.SpanMoment{Direction: clause.SpanLast, Amount: 3, Unit: clause.Week}),
			on(clause.SpanMoment{Direction: clause.SpanNext, Amount: 2000, Unit: clause.Year}),
		}},
		{"2 hours from now", []clause.DateClause{
			on(clause.OffsetMoment{Direction: clause.OffsetFromNow, Amount: 2, Unit: clause.Hour}),
		}},
		{"3 days", []clause.DateClause{
			clause.DateDuration{Duration: clause.Duration{Amount: 3, Unit: clause.Day}},
		}},
		{"today to 2 days from now", []clause.DateClause{
			clause.DateToRange{
				From: clause.NamedMoment{Name: clause.Today},
				To:   clause.OffsetMoment{Direction: clause.OffsetFromNow, Amount: 2, Unit: clause.Day},
			},
		}},
		{"2025-01-01 for 2 weeks", []clause.DateClause{
			clause.DateForRange{
				From:     clause.AbsoluteMoment{Date: "2025-01-01", Unit: clause.Day},
				Duration: clause.Duration{Amount: 2, Unit: clause.Week},
			},
		}},
		{"null, -NULL", []clause.DateClause{
			clause.DateNull{Operator: clause.DateIsNull},
			clause.DateNull{Operator: clause.DateNotNull},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := Date(tt.input)
			if len(res.Errors) != 0 {
				t.Fatalf("unexpected errors: %v", res.Errors)
			}
			if diff := cmp.Diff(tt.want, res.Clauses); diff != "" {
				t.Fatalf("clauses mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDateDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []clause.DateClause
		wantErr []clause.Diagnostic
	}{
		{
			name:    "prefix on a duration",
			input:   "before 3 days",
			want:    []clause.DateClause{},
			wantErr: []clause.Diagnostic{clause.Errorf(0, 13, "Invalid before")},
		},
		{
			name:    "prefix before a comma",
			input:   "before, today",
			want:    []clause.DateClause{on(clause.NamedMoment{Name: clause.Today})},
			wantErr: []clause.Diagnostic{clause.Errorf(0, 6, "Invalid before")},
		},
		{
			name:    "dangling prefix",
			input:   "today, after",
			want:    []clause.DateClause{on(clause.NamedMoment{Name: clause.Today})},
			wantErr: []clause.Diagnostic{clause.Errorf(7, 12, "Invalid after")},
		},
		{
			name:    "fractional amount",
			input:   "1.5 days ago",
			want:    []clause.DateClause{},
			wantErr: []clause.Diagnostic{clause.Errorf(0, 3, "Invalid number 1.5")},
		},
		{
			name:    "unknown word",
			input:   "foo",
			want:    []clause.DateClause{},
			wantErr: []clause.Diagnostic{clause.Errorf(0, 3, "Invalid token foo")},
		},
		{
			name:  "range needs moments on both sides",
			input: "today to 3 days",
			want: []clause.DateClause{
				on(clause.NamedMoment{Name: clause.Today}),
				clause.DateDuration{Duration: clause.Duration{Amount: 3, Unit: clause.Day}},
			},
			wantErr: []clause.Diagnostic{clause.Errorf(6, 8, "Invalid token to")},
		},
		{
			name:    "prefixed range",
			input:   "before last week to today",
			want:    []clause.DateClause{},
			wantErr: []clause.Diagnostic{clause.Errorf(0, 6, "Invalid before")},
		},
		{
			name:    "prefixed for range",
			input:   "after 2024 for 2 days, today",
			want:    []clause.DateClause{on(clause.NamedMoment{Name: clause.Today})},
			wantErr: []clause.Diagnostic{clause.Errorf(0, 5, "Invalid after")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Date(tt.input)
			if diff := cmp.Diff(tt.want, res.Clauses); diff != "" {
				t.Errorf("clauses mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantErr, res.Errors); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeMomentsPrefersLongerShapes(t *testing.T) {
	tokens := MergeMoments(tokenize.Tokenize("last 3 weeks, 2025-08-30 08:30", dateConfig))

	var types []string
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	want := []string{"MERGE:LAST|NUMBER|UNITOFTIME", TypeComma, "MERGE:DATE|TIME"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if got := len(tokens[0].Children); got != 3 {
		t.Fatalf("expected 3 children, got %d", got)
	}
	if tokens[2].Value != "2025-08-30 08:30" || tokens[2].StartIndex != 14 || tokens[2].EndIndex != 30 {
		t.Errorf("unexpected composite %v", tokens[2])
	}
}

package filterexpr_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ministore/filterexpr/filterexpr"
	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/parser"
)

func TestParseDispatchesByType(t *testing.T) {
	tests := []struct {
		src  string
		typ  clause.FilterType
		want []clause.Clause
	}{
		{"not null", clause.Boolean, []clause.Clause{clause.BooleanClause{Operator: clause.BoolNotNull}}},
		{"1, 2, 3", clause.Number, []clause.Clause{
			clause.NumberCondition{Operator: clause.NumEq, Values: []clause.NumberValue{clause.Num(1), clause.Num(2), clause.Num(3)}},
		}},
		{"a%b,c", clause.String, []clause.Clause{
			clause.StringLike{Operator: clause.StrLike, EscapedValues: []string{"a%b"}},
			clause.StringCondition{Operator: clause.StrEq, Values: []string{"c"}},
		}},
		{"3 days ago", clause.Date, []clause.Clause{
			clause.DateMoment{Operator: clause.DateOn, Moment: clause.OffsetMoment{Direction: clause.OffsetAgo, Amount: 3, Unit: clause.Day}},
		}},
	}
	for _, tt := range tests {
		res := filterexpr.Parse(tt.src, tt.typ)
		if len(res.Errors) != 0 {
			t.Fatalf("Parse(%q, %s): unexpected errors %v", tt.src, tt.typ, res.Errors)
		}
		if diff := cmp.Diff(tt.want, res.Clauses); diff != "" {
			t.Errorf("Parse(%q, %s) mismatch (-want +got):\n%s", tt.src, tt.typ, diff)
		}
	}
}

func TestParseUnknownType(t *testing.T) {
	res := filterexpr.Parse("anything", clause.FilterType("color"))
	if len(res.Clauses) != 0 {
		t.Fatalf("expected no clauses, got %v", res.Clauses)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected one diagnostic, got %v", res.Errors)
	}
	d := res.Errors[0]
	if d.StartIndex != 0 || d.EndIndex != len("anything") {
		t.Errorf("diagnostic should span the input, got %d:%d", d.StartIndex, d.EndIndex)
	}
	if !res.HasErrors() {
		t.Errorf("HasErrors should be true")
	}
}

func TestParseStringReportsQuoteStyles(t *testing.T) {
	res := filterexpr.Parse(`"quoted", 'x'`, clause.String)
	want := []parser.QuoteStyle{parser.QuoteSingle, parser.QuoteDouble}
	if diff := cmp.Diff(want, res.QuoteStyles); diff != "" {
		t.Fatalf("quote styles mismatch (-want +got):\n%s", diff)
	}
	if other := filterexpr.Parse(`"quoted"`, clause.Number); len(other.QuoteStyles) != 0 {
		t.Errorf("quote styles reported for number filter: %v", other.QuoteStyles)
	}
}

func TestSerializeRejectsForeignClauses(t *testing.T) {
	res := filterexpr.Serialize([]clause.Clause{clause.BooleanClause{Operator: clause.BoolTrue}}, clause.Number)
	if res.Result != "" || res.Error == "" {
		t.Fatalf("expected error result, got %+v", res)
	}

	_, err := filterexpr.SerializeText([]clause.Clause{clause.BooleanClause{Operator: clause.BoolTrue}}, clause.Number)
	if !filterexpr.IsKind(err, filterexpr.ErrSerialize) {
		t.Errorf("expected serialize error, got %v", err)
	}
	_, err = filterexpr.SerializeText(nil, clause.FilterType("color"))
	if !filterexpr.IsKind(err, filterexpr.ErrUnknownType) {
		t.Errorf("expected unknown_type error, got %v", err)
	}
}

func TestSerialize(t *testing.T) {
	res := filterexpr.Serialize([]clause.Clause{
		clause.NumberRange{StartOperator: clause.NumGe, StartValue: -5, EndOperator: clause.NumLe, EndValue: 90},
		clause.NumberCondition{Operator: clause.NumNe, Values: []clause.NumberValue{clause.NullValue()}},
	}, clause.Number)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Result != "[-5, 90], -NULL" {
		t.Errorf("got %q", res.Result)
	}
}

func TestTokensAreMerged(t *testing.T) {
	tokens := filterexpr.Tokens("last 3 weeks", clause.Date)
	if len(tokens) != 1 || !strings.HasPrefix(tokens[0].Type, parser.MergePrefix) {
		t.Fatalf("expected one composite token, got %v", tokens)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		src       string
		typ       clause.FilterType
		canonical string
	}{
		{"= 42", clause.Number, "42"},
		{"true,false", clause.Boolean, "TRUE, FALSE"},
		{"  a ,b  ", clause.String, "a, b"},
		{"BEFORE 2025-08-30 08:30:20", clause.Date, "before 2025-08-30 08:30:20"},
		{`\ a`, clause.String, `\ a`},
		{` a\  ,b`, clause.String, `a\ , b`},
	}
	for _, tt := range tests {
		canonical, stable, res := filterexpr.RoundTrip(tt.src, tt.typ)
		if canonical != tt.canonical {
			t.Errorf("RoundTrip(%q) canonical = %q, want %q", tt.src, canonical, tt.canonical)
		}
		if !stable {
			t.Errorf("RoundTrip(%q) not stable", tt.src)
		}
		if len(res.Errors) != 0 {
			t.Errorf("RoundTrip(%q) errors: %v", tt.src, res.Errors)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	err := filterexpr.SerializeError(clause.Date, filterexpr.New(filterexpr.ErrInternal, "boom"))
	want := "serialize: cannot serialize clauses (type=date): internal: boom"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if !filterexpr.IsKind(err, filterexpr.ErrSerialize) {
		t.Errorf("IsKind should match the outer kind")
	}
}

package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

func cond(op clause.StringOperator, values ...string) clause.StringCondition {
	return clause.StringCondition{Operator: op, Values: values}
}

func like(op clause.StringOperator, values ...string) clause.StringLike {
	return clause.StringLike{Operator: op, EscapedValues: values}
}

func TestStringParse(t *testing.T) {
	tests := []struct {
		input string
		want  []clause.StringClause
	}{
		{`a%b,c`, []clause.StringClause{like(clause.StrLike, "a%b"), cond(clause.StrEq, "c")}},
		{`a\%b`, []clause.StringClause{cond(clause.StrEq, "a%b")}},
		{`abc%`, []clause.StringClause{cond(clause.StrStarts, "abc")}},
		{`%abc`, []clause.StringClause{cond(clause.StrEnds, "abc")}},
		{`%abc%`, []clause.StringClause{cond(clause.StrContains, "abc")}},
		{`%a%`, []clause.StringClause{cond(clause.StrContains, "a")}},
		{`-%abc%`, []clause.StringClause{cond(clause.StrNotContains, "abc")}},
		{`-abc%`, []clause.StringClause{cond(clause.StrNotStarts, "abc")}},
		{`%%`, []clause.StringClause{like(clause.StrLike, "%%")}},
		{`a_c`, []clause.StringClause{like(clause.StrLike, "a_c")}},
		{`-a_c`, []clause.StringClause{like(clause.StrNotLike, "a_c")}},
		{`a\_c`, []clause.StringClause{cond(clause.StrEq, "a_c")}},
		{`%a\%`, []clause.StringClause{cond(clause.StrEnds, "a%")}},
		{`a, b, -c, -d`, []clause.StringClause{cond(clause.StrEq, "a", "b"), cond(clause.StrNe, "c", "d")}},
		{` hello world , x`, []clause.StringClause{cond(clause.StrEq, "hello world", "x")}},
		{`a\,b`, []clause.StringClause{cond(clause.StrEq, "a,b")}},
		{`\null`, []clause.StringClause{cond(clause.StrEq, "null")}},
		{`\-x`, []clause.StringClause{cond(clause.StrEq, "-x")}},
		{`null, -empty, EMPTY, -Null`, []clause.StringClause{
			clause.StringSpecial{Operator: clause.StrNull},
			clause.StringSpecial{Operator: clause.StrNotEmpty},
			clause.StringSpecial{Operator: clause.StrEmpty},
			clause.StringSpecial{Operator: clause.StrNotNull},
		}},
		{`a,,b,`, []clause.StringClause{cond(clause.StrEq, "a", "b")}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := String(tt.input)
			if len(res.Errors) != 0 {
				t.Fatalf("unexpected errors: %v", res.Errors)
			}
			if diff := cmp.Diff(tt.want, res.Clauses); diff != "" {
				t.Fatalf("clauses mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStringRejectsEmptyValues(t *testing.T) {
	res := String("-, %%%, ok")

	if diff := cmp.Diff([]clause.StringClause{like(clause.StrLike, "%%%"), cond(clause.StrEq, "ok")}, res.Clauses); diff != "" {
		t.Fatalf("clauses mismatch (-want +got):\n%s", diff)
	}
	want := []clause.Diagnostic{clause.Errorf(0, 1, "Invalid expression")}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestQuoteStyles(t *testing.T) {
	tests := []struct {
		input string
		want  []QuoteStyle
	}{
		{`plain`, []QuoteStyle{}},
		{`'a' "b" \'c '''d'''`, []QuoteStyle{QuoteTripleSingle, QuoteSingle, QuoteDouble, QuoteEscapedSingle}},
		{"```x``` \\`", []QuoteStyle{QuoteTripleBacktick, QuoteEscapedTick}},
		{`\"only\"`, []QuoteStyle{QuoteEscapedDouble}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, QuoteStyles(tt.input)); diff != "" {
			t.Errorf("QuoteStyles(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

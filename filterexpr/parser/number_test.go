package parser

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

func eq(values ...clause.NumberValue) clause.NumberCondition {
	return clause.NumberCondition{Operator: clause.NumEq, Values: values}
}

func TestNumberParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []clause.NumberClause
	}{
		{
			name:  "grouped values",
			input: "1, 2, 3",
			want:  []clause.NumberClause{eq(clause.Num(1), clause.Num(2), clause.Num(3))},
		},
		{
			name:  "null joins the equality group",
			input: "1, 3, null , 7",
			want:  []clause.NumberClause{eq(clause.Num(1), clause.Num(3), clause.NullValue(), clause.Num(7))},
		},
		{
			name:  "explicit equals",
			input: "= 42",
			want:  []clause.NumberClause{eq(clause.Num(42))},
		},
		{
			name:  "not null",
			input: "-NULL",
			want: []clause.NumberClause{
				clause.NumberCondition{Operator: clause.NumNe, Values: []clause.NumberValue{clause.NullValue()}},
			},
		},
		{
			name:  "comparisons",
			input: ">=10, <20.5, <-3",
			want: []clause.NumberClause{
				clause.NumberCondition{Operator: clause.NumGe, Values: []clause.NumberValue{clause.Num(10)}},
				clause.NumberCondition{Operator: clause.NumLt, Values: []clause.NumberValue{clause.Num(20.5), clause.Num(-3)}},
			},
		},
		{
			name:  "only adjacent conditions merge",
			input: "1, >5, 2",
			want: []clause.NumberClause{
				eq(clause.Num(1)),
				clause.NumberCondition{Operator: clause.NumGt, Values: []clause.NumberValue{clause.Num(5)}},
				eq(clause.Num(2)),
			},
		},
		{
			name:  "inclusive range",
			input: "[-5, 90]",
			want: []clause.NumberClause{
				clause.NumberRange{StartOperator: clause.NumGe, StartValue: -5, EndOperator: clause.NumLe, EndValue: 90},
			},
		},
		{
			name:  "negated range",
			input: "!=(12,20]",
			want: []clause.NumberClause{
				clause.NumberRange{StartOperator: clause.NumLe, StartValue: 12, EndOperator: clause.NumGt, EndValue: 20},
			},
		},
		{
			name:  "range breaks a group",
			input: "1, [2, 3), 4",
			want: []clause.NumberClause{
				eq(clause.Num(1)),
				clause.NumberRange{StartOperator: clause.NumGe, StartValue: 2, EndOperator: clause.NumLt, EndValue: 3},
				eq(clause.Num(4)),
			},
		},
		{
			name:  "infinite endpoint",
			input: "(-inf, 0]",
			want: []clause.NumberClause{
				clause.NumberRange{StartOperator: clause.NumGt, StartValue: math.Inf(-1), EndOperator: clause.NumLe, EndValue: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Number(tt.input)
			if len(res.Errors) != 0 {
				t.Fatalf("unexpected errors: %v", res.Errors)
			}
			if diff := cmp.Diff(tt.want, res.Clauses); diff != "" {
				t.Fatalf("clauses mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNumberDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []clause.NumberClause
		wantErr []clause.Diagnostic
	}{
		{
			name:    "bad endpoint drops the range",
			input:   "[1, x]",
			want:    []clause.NumberClause{},
			wantErr: []clause.Diagnostic{clause.Errorf(4, 5, "Invalid number x")},
		},
		{
			name:  "malformed range advances one token",
			input: "[1 2]",
			want:  []clause.NumberClause{eq(clause.Num(1), clause.Num(2))},
			wantErr: []clause.Diagnostic{
				clause.Errorf(0, 1, "Invalid range expression"),
				clause.Errorf(4, 5, "Invalid expression"),
			},
		},
		{
			name:    "malformed negated range consumes the operator",
			input:   "!=[1",
			want:    []clause.NumberClause{eq(clause.Num(1))},
			wantErr: []clause.Diagnostic{clause.Errorf(0, 3, "Invalid range expression")},
		},
		{
			name:  "operator without a number",
			input: "> abc",
			want:  []clause.NumberClause{},
			wantErr: []clause.Diagnostic{
				clause.Errorf(0, 1, "Invalid expression"),
				clause.Errorf(2, 5, "Invalid expression"),
			},
		},
		{
			name:    "inf outside a range",
			input:   "inf",
			want:    []clause.NumberClause{},
			wantErr: []clause.Diagnostic{clause.Errorf(0, 3, "Invalid expression")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Number(tt.input)
			if diff := cmp.Diff(tt.want, res.Clauses); diff != "" {
				t.Errorf("clauses mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantErr, res.Errors); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

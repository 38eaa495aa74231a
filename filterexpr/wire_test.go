package filterexpr_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ministore/filterexpr/filterexpr"
	"github.com/ministore/filterexpr/filterexpr/clause"
)

var wireCases = []struct {
	typ     clause.FilterType
	clauses []clause.Clause
}{
	{clause.Boolean, []clause.Clause{
		clause.BooleanClause{Operator: clause.BoolFalseOrNull},
	}},
	{clause.Number, []clause.Clause{
		clause.NumberCondition{Operator: clause.NumEq, Values: []clause.NumberValue{clause.Num(1), clause.NullValue(), clause.Num(2.5)}},
		clause.NumberRange{StartOperator: clause.NumGt, StartValue: math.Inf(-1), EndOperator: clause.NumLe, EndValue: 0},
	}},
	{clause.String, []clause.Clause{
		clause.StringCondition{Operator: clause.StrNotContains, Values: []string{"abc"}},
		clause.StringLike{Operator: clause.StrLike, EscapedValues: []string{`a\%b_`}},
		clause.StringSpecial{Operator: clause.StrEmpty},
	}},
	{clause.Date, []clause.Clause{
		clause.DateMoment{Operator: clause.DateBefore, Moment: clause.AbsoluteMoment{Date: "2025-08-30", Unit: clause.Day}},
		clause.DateMoment{Operator: clause.DateOn, Moment: clause.OffsetMoment{Direction: clause.OffsetAgo, Amount: 0, Unit: clause.Day}},
		clause.DateToRange{From: clause.IntervalMoment{Kind: clause.IntervalLast, Unit: "MONDAY"}, To: clause.NamedMoment{Name: clause.Now}},
		clause.DateForRange{From: clause.SpanMoment{Direction: clause.SpanNext, Amount: 2, Unit: clause.Week}, Duration: clause.Duration{Amount: 3, Unit: clause.Day}},
		clause.DateDuration{Duration: clause.Duration{Amount: 1, Unit: clause.Hour}},
		clause.DateNull{Operator: clause.DateNotNull},
	}},
}

func TestWireCodecs(t *testing.T) {
	codecs := []struct {
		name   string
		encode func([]clause.Clause) ([]byte, error)
		decode func([]byte, clause.FilterType) ([]clause.Clause, error)
	}{
		{"json", filterexpr.EncodeJSON, filterexpr.DecodeJSON},
		{"msgpack", filterexpr.EncodeMsgpack, filterexpr.DecodeMsgpack},
		{"yaml", filterexpr.EncodeYAML, filterexpr.DecodeYAML},
	}
	for _, codec := range codecs {
		for _, tc := range wireCases {
			t.Run(codec.name+"/"+string(tc.typ), func(t *testing.T) {
				data, err := codec.encode(tc.clauses)
				if err != nil {
					t.Fatalf("encode: %v", err)
				}
				got, err := codec.decode(data, tc.typ)
				if err != nil {
					t.Fatalf("decode: %v", err)
				}
				if diff := cmp.Diff(tc.clauses, got); diff != "" {
					t.Fatalf("clauses mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestEncodeJSONShape(t *testing.T) {
	data, err := filterexpr.EncodeJSON([]clause.Clause{
		clause.NumberRange{StartOperator: clause.NumGe, StartValue: -5, EndOperator: clause.NumLe, EndValue: 90},
		clause.NumberCondition{Operator: clause.NumEq, Values: []clause.NumberValue{clause.Num(1), clause.NullValue()}},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"operator":"range","startOperator":">=","startValue":-5,"endOperator":"<=","endValue":90},{"operator":"=","values":[1,null]}]`
	if string(data) != want {
		t.Fatalf("got  %s\nwant %s", data, want)
	}
}

func TestMsgpackKeepsZeroEndpoints(t *testing.T) {
	res := filterexpr.Parse("[0, 5], (-1, 0), =0", clause.Number)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Errors)
	}
	data, err := filterexpr.EncodeMsgpack(res.Clauses)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := filterexpr.DecodeMsgpack(data, clause.Number)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(res.Clauses, got); diff != "" {
		t.Fatalf("clauses mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsInvalidClauses(t *testing.T) {
	inputs := []struct {
		typ  clause.FilterType
		data string
	}{
		{clause.Boolean, `[{"operator":"MAYBE"}]`},
		{clause.Number, `[{"operator":"<","values":[null]}]`},
		{clause.Number, `[{"operator":"range","startOperator":">=","startValue":"x","endOperator":"<=","endValue":1}]`},
		{clause.Number, `[{"operator":">","values":["inf"]}]`},
		{clause.String, `[{"operator":"=","values":[1]}]`},
		{clause.Date, `[{"operator":"ON"}]`},
		{clause.Date, `[{"operator":"ON","moment":{"type":"NAMED","name":"SOMEDAY"}}]`},
		{clause.Date, `[{"operator":"DURATION"}]`},
	}
	for _, in := range inputs {
		_, err := filterexpr.DecodeJSON([]byte(in.data), in.typ)
		if err == nil {
			t.Errorf("DecodeJSON(%s, %s) succeeded", in.data, in.typ)
			continue
		}
		if !filterexpr.IsKind(err, filterexpr.ErrWire) {
			t.Errorf("expected wire error, got %v", err)
		}
		if !strings.Contains(err.Error(), "clause 0") {
			t.Errorf("error should name the clause: %v", err)
		}
	}
}

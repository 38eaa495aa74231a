package filterexpr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

// RangeOperator is the wire operator of a number range.
const RangeOperator = "range"

// WireClause is the exchange form of a clause. Which fields are set depends
// on the clause variant; Operator is always present.
type WireClause struct {
	Operator      string        `json:"operator" msgpack:"operator" yaml:"operator"`
	Values        []any         `json:"values,omitempty" msgpack:"values,omitempty" yaml:"values,omitempty"`
	EscapedValues []string      `json:"escaped_values,omitempty" msgpack:"escaped_values,omitempty" yaml:"escaped_values,omitempty"`
	StartOperator string        `json:"startOperator,omitempty" msgpack:"startOperator,omitempty" yaml:"startOperator,omitempty"`
	StartValue    any           `json:"startValue,omitempty" msgpack:"startValue" yaml:"startValue,omitempty"`
	EndOperator   string        `json:"endOperator,omitempty" msgpack:"endOperator,omitempty" yaml:"endOperator,omitempty"`
	EndValue      any           `json:"endValue,omitempty" msgpack:"endValue" yaml:"endValue,omitempty"`
	Moment        *WireMoment   `json:"moment,omitempty" msgpack:"moment,omitempty" yaml:"moment,omitempty"`
	From          *WireMoment   `json:"from,omitempty" msgpack:"from,omitempty" yaml:"from,omitempty"`
	To            *WireMoment   `json:"to,omitempty" msgpack:"to,omitempty" yaml:"to,omitempty"`
	Duration      *WireDuration `json:"duration,omitempty" msgpack:"duration,omitempty" yaml:"duration,omitempty"`
}

// WireMoment is the exchange form of a moment, tagged by Type.
type WireMoment struct {
	Type      string `json:"type" msgpack:"type" yaml:"type"`
	Name      string `json:"name,omitempty" msgpack:"name,omitempty" yaml:"name,omitempty"`
	Kind      string `json:"kind,omitempty" msgpack:"kind,omitempty" yaml:"kind,omitempty"`
	Direction string `json:"direction,omitempty" msgpack:"direction,omitempty" yaml:"direction,omitempty"`
	Amount    *int   `json:"amount,omitempty" msgpack:"amount,omitempty" yaml:"amount,omitempty"`
	Unit      string `json:"unit,omitempty" msgpack:"unit,omitempty" yaml:"unit,omitempty"`
	Date      string `json:"date,omitempty" msgpack:"date,omitempty" yaml:"date,omitempty"`
}

// WireDuration is the exchange form of a duration.
type WireDuration struct {
	Amount int    `json:"amount" msgpack:"amount" yaml:"amount"`
	Unit   string `json:"unit" msgpack:"unit" yaml:"unit"`
}

// ToWire converts clauses to their exchange form. Null numbers become nil and
// infinities become the strings "inf" and "-inf".
func ToWire(clauses []clause.Clause) ([]WireClause, error) {
	out := make([]WireClause, 0, len(clauses))
	for i, c := range clauses {
		w, err := toWire(c)
		if err != nil {
			return nil, WireError(fmt.Sprintf("clause %d", i), err)
		}
		out = append(out, w)
	}
	return out, nil
}

func toWire(c clause.Clause) (WireClause, error) {
	switch c := c.(type) {
	case clause.BooleanClause:
		return WireClause{Operator: string(c.Operator)}, nil

	case clause.NumberCondition:
		values := make([]any, len(c.Values))
		for i, v := range c.Values {
			if v.Null {
				values[i] = nil
				continue
			}
			values[i] = wireNumber(v.Value)
		}
		return WireClause{Operator: string(c.Operator), Values: values}, nil
	case clause.NumberRange:
		return WireClause{
			Operator:      RangeOperator,
			StartOperator: string(c.StartOperator),
			StartValue:    wireNumber(c.StartValue),
			EndOperator:   string(c.EndOperator),
			EndValue:      wireNumber(c.EndValue),
		}, nil

	case clause.StringCondition:
		values := make([]any, len(c.Values))
		for i, v := range c.Values {
			values[i] = v
		}
		return WireClause{Operator: string(c.Operator), Values: values}, nil
	case clause.StringLike:
		return WireClause{Operator: string(c.Operator), EscapedValues: append([]string(nil), c.EscapedValues...)}, nil
	case clause.StringSpecial:
		return WireClause{Operator: string(c.Operator)}, nil

	case clause.DateMoment:
		m, err := momentToWire(c.Moment)
		return WireClause{Operator: string(c.Operator), Moment: m}, err
	case clause.DateToRange:
		from, err := momentToWire(c.From)
		if err != nil {
			return WireClause{}, err
		}
		to, err := momentToWire(c.To)
		return WireClause{Operator: string(clause.DateTo), From: from, To: to}, err
	case clause.DateForRange:
		from, err := momentToWire(c.From)
		return WireClause{Operator: string(clause.DateFor), From: from, Duration: durationToWire(c.Duration)}, err
	case clause.DateDuration:
		return WireClause{Operator: string(clause.DateDur), Duration: durationToWire(c.Duration)}, nil
	case clause.DateNull:
		return WireClause{Operator: string(c.Operator)}, nil
	}
	return WireClause{}, fmt.Errorf("unsupported clause %T", c)
}

func wireNumber(v float64) any {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return v
}

func momentToWire(m clause.Moment) (*WireMoment, error) {
	amount := func(n int) *int { return &n }
	switch m := m.(type) {
	case clause.NamedMoment:
		return &WireMoment{Type: string(clause.MomentNamed), Name: string(m.Name)}, nil
	case clause.IntervalMoment:
		return &WireMoment{Type: string(clause.MomentInterval), Kind: string(m.Kind), Unit: m.Unit}, nil
	case clause.SpanMoment:
		return &WireMoment{Type: string(clause.MomentSpan), Direction: string(m.Direction), Amount: amount(m.Amount), Unit: string(m.Unit)}, nil
	case clause.OffsetMoment:
		return &WireMoment{Type: string(clause.MomentOffset), Direction: string(m.Direction), Amount: amount(m.Amount), Unit: string(m.Unit)}, nil
	case clause.AbsoluteMoment:
		return &WireMoment{Type: string(clause.MomentAbsolute), Date: m.Date, Unit: string(m.Unit)}, nil
	}
	return nil, fmt.Errorf("unsupported moment %T", m)
}

func durationToWire(d clause.Duration) *WireDuration {
	return &WireDuration{Amount: d.Amount, Unit: string(d.Unit)}
}

// FromWire converts exchange clauses of type t back into clauses. Decoded
// clauses are validated.
func FromWire(ws []WireClause, t clause.FilterType) ([]clause.Clause, error) {
	out := make([]clause.Clause, 0, len(ws))
	for i, w := range ws {
		c, err := fromWire(w, t)
		if err != nil {
			return nil, &Error{Kind: ErrWire, Message: fmt.Sprintf("clause %d", i), Type: t, Cause: err}
		}
		out = append(out, c)
	}
	return out, nil
}

type validator interface {
	Validate() error
}

func fromWire(w WireClause, t clause.FilterType) (clause.Clause, error) {
	var c clause.Clause
	switch t {
	case clause.Boolean:
		op := clause.BooleanOperator(w.Operator)
		if !op.Valid() {
			return nil, fmt.Errorf("unknown boolean operator %q", w.Operator)
		}
		return clause.BooleanClause{Operator: op}, nil

	case clause.Number:
		if w.Operator == RangeOperator {
			lo, err := numberFromWire(w.StartValue)
			if err != nil {
				return nil, err
			}
			hi, err := numberFromWire(w.EndValue)
			if err != nil {
				return nil, err
			}
			if lo.Null || hi.Null {
				return nil, fmt.Errorf("range endpoints cannot be null")
			}
			c = clause.NumberRange{
				StartOperator: clause.NumberOperator(w.StartOperator),
				StartValue:    lo.Value,
				EndOperator:   clause.NumberOperator(w.EndOperator),
				EndValue:      hi.Value,
			}
			break
		}
		values := make([]clause.NumberValue, len(w.Values))
		for i, raw := range w.Values {
			v, err := numberFromWire(raw)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		c = clause.NumberCondition{Operator: clause.NumberOperator(w.Operator), Values: values}

	case clause.String:
		op := clause.StringOperator(w.Operator)
		switch op {
		case clause.StrLike, clause.StrNotLike:
			c = clause.StringLike{Operator: op, EscapedValues: w.EscapedValues}
		case clause.StrNull, clause.StrNotNull, clause.StrEmpty, clause.StrNotEmpty:
			c = clause.StringSpecial{Operator: op}
		default:
			values := make([]string, len(w.Values))
			for i, raw := range w.Values {
				s, ok := raw.(string)
				if !ok {
					return nil, fmt.Errorf("string value %v is %T", raw, raw)
				}
				values[i] = s
			}
			c = clause.StringCondition{Operator: op, Values: values}
		}

	case clause.Date:
		var err error
		c, err = dateFromWire(w)
		if err != nil {
			return nil, err
		}

	default:
		return nil, UnknownTypeError(t)
	}

	if v, ok := c.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func dateFromWire(w WireClause) (clause.DateClause, error) {
	op := clause.DateOperator(w.Operator)
	switch op {
	case clause.DateOn, clause.DateBefore, clause.DateAfter:
		m, err := momentFromWire(w.Moment)
		if err != nil {
			return nil, err
		}
		return clause.DateMoment{Operator: op, Moment: m}, nil
	case clause.DateTo:
		from, err := momentFromWire(w.From)
		if err != nil {
			return nil, err
		}
		to, err := momentFromWire(w.To)
		if err != nil {
			return nil, err
		}
		return clause.DateToRange{From: from, To: to}, nil
	case clause.DateFor:
		from, err := momentFromWire(w.From)
		if err != nil {
			return nil, err
		}
		if w.Duration == nil {
			return nil, fmt.Errorf("FOR_RANGE without duration")
		}
		return clause.DateForRange{From: from, Duration: durationFromWire(w.Duration)}, nil
	case clause.DateDur:
		if w.Duration == nil {
			return nil, fmt.Errorf("DURATION without duration")
		}
		return clause.DateDuration{Duration: durationFromWire(w.Duration)}, nil
	case clause.DateIsNull, clause.DateNotNull:
		return clause.DateNull{Operator: op}, nil
	}
	return nil, fmt.Errorf("unknown date operator %q", w.Operator)
}

func momentFromWire(w *WireMoment) (clause.Moment, error) {
	if w == nil {
		return nil, fmt.Errorf("missing moment")
	}
	amount := 0
	if w.Amount != nil {
		amount = *w.Amount
	}
	switch clause.MomentType(w.Type) {
	case clause.MomentNamed:
		return clause.NamedMoment{Name: clause.MomentName(w.Name)}, nil
	case clause.MomentInterval:
		return clause.IntervalMoment{Kind: clause.IntervalKind(w.Kind), Unit: w.Unit}, nil
	case clause.MomentSpan:
		return clause.SpanMoment{Direction: clause.SpanDirection(w.Direction), Amount: amount, Unit: clause.TimeUnit(w.Unit)}, nil
	case clause.MomentOffset:
		return clause.OffsetMoment{Direction: clause.OffsetDirection(w.Direction), Amount: amount, Unit: clause.TimeUnit(w.Unit)}, nil
	case clause.MomentAbsolute:
		return clause.AbsoluteMoment{Date: w.Date, Unit: clause.TimeUnit(w.Unit)}, nil
	}
	return nil, fmt.Errorf("unknown moment type %q", w.Type)
}

func durationFromWire(w *WireDuration) clause.Duration {
	return clause.Duration{Amount: w.Amount, Unit: clause.TimeUnit(w.Unit)}
}

// numberFromWire accepts the number shapes JSON, msgpack and YAML decoders
// produce.
func numberFromWire(raw any) (clause.NumberValue, error) {
	switch v := raw.(type) {
	case nil:
		return clause.NullValue(), nil
	case float64:
		return clause.Num(v), nil
	case float32:
		return clause.Num(float64(v)), nil
	case int:
		return clause.Num(float64(v)), nil
	case int64:
		return clause.Num(float64(v)), nil
	case uint64:
		return clause.Num(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return clause.NumberValue{}, fmt.Errorf("invalid number %q", v)
		}
		return clause.Num(f), nil
	case string:
		switch strings.ToLower(v) {
		case "inf", "+inf":
			return clause.Num(math.Inf(1)), nil
		case "-inf":
			return clause.Num(math.Inf(-1)), nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return clause.NumberValue{}, fmt.Errorf("invalid number %q", v)
		}
		return clause.Num(f), nil
	}
	return clause.NumberValue{}, fmt.Errorf("invalid number %v of type %T", raw, raw)
}

// EncodeJSON encodes clauses as a JSON array.
func EncodeJSON(clauses []clause.Clause) ([]byte, error) {
	ws, err := ToWire(clauses)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ws); err != nil {
		return nil, WireError("encode json", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeJSON decodes a JSON array of clauses of type t.
func DecodeJSON(data []byte, t clause.FilterType) ([]clause.Clause, error) {
	var ws []WireClause
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&ws); err != nil {
		return nil, WireError("decode json", err)
	}
	return FromWire(ws, t)
}

// EncodeMsgpack encodes clauses as a MessagePack array.
func EncodeMsgpack(clauses []clause.Clause) ([]byte, error) {
	ws, err := ToWire(clauses)
	if err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(ws)
	if err != nil {
		return nil, WireError("encode msgpack", err)
	}
	return data, nil
}

// DecodeMsgpack decodes a MessagePack array of clauses of type t.
func DecodeMsgpack(data []byte, t clause.FilterType) ([]clause.Clause, error) {
	if len(data) == 0 {
		return nil, WireError("decode msgpack", fmt.Errorf("empty MessagePack data"))
	}
	var ws []WireClause
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(&ws); err != nil {
		return nil, WireError("decode msgpack", err)
	}
	return FromWire(ws, t)
}

// EncodeYAML encodes clauses as a YAML sequence.
func EncodeYAML(clauses []clause.Clause) ([]byte, error) {
	ws, err := ToWire(clauses)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(ws)
	if err != nil {
		return nil, WireError("encode yaml", err)
	}
	return data, nil
}

// DecodeYAML decodes a YAML sequence of clauses of type t.
func DecodeYAML(data []byte, t clause.FilterType) ([]clause.Clause, error) {
	var ws []WireClause
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, WireError("decode yaml", err)
	}
	return FromWire(ws, t)
}

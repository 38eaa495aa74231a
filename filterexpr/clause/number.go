package clause

import (
	"fmt"
	"math"
	"strconv"
)

// NumberOperator is a comparison operator.
type NumberOperator string

const (
	NumEq NumberOperator = "="
	NumNe NumberOperator = "!="
	NumLt NumberOperator = "<"
	NumLe NumberOperator = "<="
	NumGt NumberOperator = ">"
	NumGe NumberOperator = ">="
)

// Valid reports whether op is a known number operator.
func (op NumberOperator) Valid() bool {
	switch op {
	case NumEq, NumNe, NumLt, NumLe, NumGt, NumGe:
		return true
	}
	return false
}

// Negate returns the complement of an ordering operator: > and <= swap, as do
// >= and <. Equality operators are returned unchanged.
func (op NumberOperator) Negate() NumberOperator {
	switch op {
	case NumGt:
		return NumLe
	case NumLe:
		return NumGt
	case NumGe:
		return NumLt
	case NumLt:
		return NumGe
	default:
		return op
	}
}

// NumberClause is the sealed family of number clauses.
type NumberClause interface {
	Clause
	isNumberClause()
}

// NumberValue is a number or the null sentinel.
type NumberValue struct {
	Null  bool
	Value float64
}

// Num returns a non-null value.
func Num(v float64) NumberValue { return NumberValue{Value: v} }

// NullValue returns the null sentinel.
func NullValue() NumberValue { return NumberValue{Null: true} }

func (v NumberValue) String() string {
	if v.Null {
		return "null"
	}
	return strconv.FormatFloat(v.Value, 'g', -1, 64)
}

// NumberCondition applies one operator to each of its values; several values
// form a disjunction.
type NumberCondition struct {
	Operator NumberOperator
	Values   []NumberValue
}

func (NumberCondition) FilterType() FilterType { return Number }
func (NumberCondition) isNumberClause()        {}

// Validate checks operator and values. The null sentinel is only allowed
// under = and !=; infinities only appear as range endpoints.
func (c NumberCondition) Validate() error {
	if !c.Operator.Valid() {
		return fmt.Errorf("unknown number operator %q", c.Operator)
	}
	if len(c.Values) == 0 {
		return fmt.Errorf("number condition %q has no values", c.Operator)
	}
	for _, v := range c.Values {
		if v.Null && c.Operator != NumEq && c.Operator != NumNe {
			return fmt.Errorf("null value not allowed with operator %q", c.Operator)
		}
		if !v.Null && math.IsNaN(v.Value) {
			return fmt.Errorf("NaN is not a number value")
		}
		if !v.Null && math.IsInf(v.Value, 0) {
			return fmt.Errorf("infinity is only allowed as a range endpoint")
		}
	}
	return nil
}

// NumberRange bounds a value on both sides. A plain range has a > or >= start
// and a < or <= end; a negated range carries the complement of each.
type NumberRange struct {
	StartOperator NumberOperator
	StartValue    float64
	EndOperator   NumberOperator
	EndValue      float64
}

func (NumberRange) FilterType() FilterType { return Number }
func (NumberRange) isNumberClause()        {}

// Negated reports whether r holds complemented operators.
func (r NumberRange) Negated() bool {
	return (r.StartOperator == NumLt || r.StartOperator == NumLe) &&
		(r.EndOperator == NumGt || r.EndOperator == NumGe)
}

// Validate checks that the operators form a plain or a negated range.
func (r NumberRange) Validate() error {
	plain := (r.StartOperator == NumGt || r.StartOperator == NumGe) &&
		(r.EndOperator == NumLt || r.EndOperator == NumLe)
	if !plain && !r.Negated() {
		return fmt.Errorf("invalid range operators %q, %q", r.StartOperator, r.EndOperator)
	}
	if math.IsNaN(r.StartValue) || math.IsNaN(r.EndValue) {
		return fmt.Errorf("NaN is not a range endpoint")
	}
	return nil
}

package clause

import "fmt"

// StringOperator identifies a string clause kind.
type StringOperator string

const (
	StrEq          StringOperator = "="
	StrNe          StringOperator = "!="
	StrStarts      StringOperator = "starts"
	StrNotStarts   StringOperator = "notStarts"
	StrEnds        StringOperator = "ends"
	StrNotEnds     StringOperator = "notEnds"
	StrContains    StringOperator = "contains"
	StrNotContains StringOperator = "notContains"
	StrLike        StringOperator = "~"
	StrNotLike     StringOperator = "!~"
	StrNull        StringOperator = "NULL"
	StrNotNull     StringOperator = "NOTNULL"
	StrEmpty       StringOperator = "EMPTY"
	StrNotEmpty    StringOperator = "NOTEMPTY"
)

var negations = map[StringOperator]StringOperator{
	StrEq:       StrNe,
	StrStarts:   StrNotStarts,
	StrEnds:     StrNotEnds,
	StrContains: StrNotContains,
	StrLike:     StrNotLike,
	StrNull:     StrNotNull,
	StrEmpty:    StrNotEmpty,
}

// Negated reports whether op is the negative form of an operator.
func (op StringOperator) Negated() bool {
	switch op {
	case StrNe, StrNotStarts, StrNotEnds, StrNotContains, StrNotLike, StrNotNull, StrNotEmpty:
		return true
	}
	return false
}

// Negate returns the negative form of op, or op itself when op is already
// negative.
func (op StringOperator) Negate() StringOperator {
	if n, ok := negations[op]; ok {
		return n
	}
	return op
}

// Positive returns the non-negated form of op.
func (op StringOperator) Positive() StringOperator {
	for pos, neg := range negations {
		if neg == op {
			return pos
		}
	}
	return op
}

// StringClause is the sealed family of string clauses.
type StringClause interface {
	Clause
	isStringClause()
}

// StringCondition matches literal, unescaped text.
type StringCondition struct {
	Operator StringOperator
	Values   []string
}

func (StringCondition) FilterType() FilterType { return String }
func (StringCondition) isStringClause()        {}

// Validate checks operator and values.
func (c StringCondition) Validate() error {
	switch c.Operator {
	case StrEq, StrNe, StrStarts, StrNotStarts, StrEnds, StrNotEnds, StrContains, StrNotContains:
	default:
		return fmt.Errorf("operator %q is not a string condition", c.Operator)
	}
	if len(c.Values) == 0 {
		return fmt.Errorf("string condition %q has no values", c.Operator)
	}
	for _, v := range c.Values {
		if v == "" {
			return fmt.Errorf("string condition %q has an empty value", c.Operator)
		}
	}
	return nil
}

// StringLike matches a wildcard pattern. EscapedValues keep the backslash
// escapes exactly as written.
type StringLike struct {
	Operator      StringOperator
	EscapedValues []string
}

func (StringLike) FilterType() FilterType { return String }
func (StringLike) isStringClause()        {}

// Validate checks operator and values.
func (c StringLike) Validate() error {
	if c.Operator != StrLike && c.Operator != StrNotLike {
		return fmt.Errorf("operator %q is not a like operator", c.Operator)
	}
	if len(c.EscapedValues) == 0 {
		return fmt.Errorf("like clause %q has no values", c.Operator)
	}
	for _, v := range c.EscapedValues {
		if v == "" {
			return fmt.Errorf("like clause %q has an empty pattern", c.Operator)
		}
	}
	return nil
}

// StringSpecial is a value-less clause: NULL, NOTNULL, EMPTY or NOTEMPTY.
type StringSpecial struct {
	Operator StringOperator
}

func (StringSpecial) FilterType() FilterType { return String }
func (StringSpecial) isStringClause()        {}

// Validate checks the operator.
func (c StringSpecial) Validate() error {
	switch c.Operator {
	case StrNull, StrNotNull, StrEmpty, StrNotEmpty:
		return nil
	}
	return fmt.Errorf("operator %q does not stand alone", c.Operator)
}

package serialize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

// Number renders number clauses. Conditions print one term per value, with
// the = operator left implicit; ranges print in bracket form.
func Number(clauses []clause.NumberClause) (string, error) {
	parts := make([]string, 0, len(clauses))
	for i, c := range clauses {
		var (
			text string
			err  error
		)
		switch c := c.(type) {
		case clause.NumberCondition:
			text, err = numberCondition(c)
		case clause.NumberRange:
			text, err = numberRange(c)
		default:
			err = fmt.Errorf("unsupported number clause %T", c)
		}
		if err != nil {
			return "", fmt.Errorf("clause %d: %w", i, err)
		}
		parts = append(parts, text)
	}
	return join(parts), nil
}

func numberCondition(c clause.NumberCondition) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	terms := make([]string, len(c.Values))
	for i, v := range c.Values {
		switch {
		case v.Null && c.Operator == clause.NumEq:
			terms[i] = "NULL"
		case v.Null:
			terms[i] = "-NULL"
		case c.Operator == clause.NumEq:
			terms[i] = formatNumber(v.Value)
		default:
			terms[i] = string(c.Operator) + formatNumber(v.Value)
		}
	}
	return strings.Join(terms, separator), nil
}

// numberRange prints a negated range as != followed by the brackets of the
// range it excludes.
func numberRange(r clause.NumberRange) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	prefix := ""
	start, end := r.StartOperator, r.EndOperator
	if r.Negated() {
		prefix = "!="
		start, end = start.Negate(), end.Negate()
	}
	left, right := "[", "]"
	if start == clause.NumGt {
		left = "("
	}
	if end == clause.NumLt {
		right = ")"
	}
	return prefix + left + formatNumber(r.StartValue) + separator + formatNumber(r.EndValue) + right, nil
}

func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

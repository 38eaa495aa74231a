package serialize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

// Date renders date clauses with lower case keywords, e.g. "before today",
// "3 days ago" or "2025-01-01 for 2 weeks".
func Date(clauses []clause.DateClause) (string, error) {
	parts := make([]string, 0, len(clauses))
	for i, c := range clauses {
		text, err := dateClause(c)
		if err != nil {
			return "", fmt.Errorf("clause %d: %w", i, err)
		}
		parts = append(parts, text)
	}
	return join(parts), nil
}

func dateClause(c clause.DateClause) (string, error) {
	if c == nil {
		return "", fmt.Errorf("nil date clause")
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	switch c := c.(type) {
	case clause.DateMoment:
		text := momentText(c.Moment)
		switch c.Operator {
		case clause.DateBefore:
			text = "before " + text
		case clause.DateAfter:
			text = "after " + text
		}
		return text, nil
	case clause.DateToRange:
		return momentText(c.From) + " to " + momentText(c.To), nil
	case clause.DateForRange:
		return momentText(c.From) + " for " + durationText(c.Duration), nil
	case clause.DateDuration:
		return durationText(c.Duration), nil
	case clause.DateNull:
		if c.Operator == clause.DateNotNull {
			return "-NULL", nil
		}
		return "NULL", nil
	}
	return "", fmt.Errorf("unsupported date clause %T", c)
}

// momentText expects a validated moment.
func momentText(m clause.Moment) string {
	switch m := m.(type) {
	case clause.NamedMoment:
		return strings.ToLower(string(m.Name))
	case clause.IntervalMoment:
		return strings.ToLower(string(m.Kind)) + " " + strings.ToLower(m.Unit)
	case clause.SpanMoment:
		return strings.ToLower(string(m.Direction)) + " " + unitText(m.Amount, m.Unit)
	case clause.OffsetMoment:
		if m.Direction == clause.OffsetFromNow {
			return unitText(m.Amount, m.Unit) + " from now"
		}
		return unitText(m.Amount, m.Unit) + " ago"
	case clause.AbsoluteMoment:
		return m.Date
	}
	return ""
}

func durationText(d clause.Duration) string {
	return unitText(d.Amount, d.Unit)
}

// unitText prints "1 day" or "3 days".
func unitText(amount int, unit clause.TimeUnit) string {
	name := strings.ToLower(string(unit))
	if amount != 1 {
		name += "s"
	}
	return strconv.Itoa(amount) + " " + name
}

package serialize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

var stringSpecialText = map[clause.StringOperator]string{
	clause.StrNull:     "NULL",
	clause.StrNotNull:  "-NULL",
	clause.StrEmpty:    "EMPTY",
	clause.StrNotEmpty: "-EMPTY",
}

// String renders string clauses.
func String(clauses []clause.StringClause) (string, error) {
	parts := make([]string, 0, len(clauses))
	for i, c := range clauses {
		var err error
		switch c := c.(type) {
		case clause.StringSpecial:
			if err = c.Validate(); err == nil {
				parts = append(parts, stringSpecialText[c.Operator])
			}
		case clause.StringCondition:
			if err = c.Validate(); err == nil {
				for _, v := range c.Values {
					parts = append(parts, stringTerm(c.Operator, v))
				}
			}
		case clause.StringLike:
			if err = c.Validate(); err == nil {
				for _, v := range c.EscapedValues {
					parts = append(parts, likeTerm(c.Operator, v))
				}
			}
		default:
			err = fmt.Errorf("unsupported string clause %T", c)
		}
		if err != nil {
			return "", fmt.Errorf("clause %d: %w", i, err)
		}
	}
	return join(parts), nil
}

func stringTerm(op clause.StringOperator, value string) string {
	text := escapeString(value)
	switch op.Positive() {
	case clause.StrStarts:
		text += "%"
	case clause.StrEnds:
		text = "%" + text
	case clause.StrContains:
		text = "%" + text + "%"
	default:
		if isSpecialWord(value) {
			text = `\` + text
		}
	}
	if op.Negated() {
		text = "-" + text
	}
	return text
}

// likeTerm keeps the pattern's own escapes and only protects what the
// tokenizer would otherwise split or misread.
func likeTerm(op clause.StringOperator, pattern string) string {
	var b strings.Builder
	if strings.HasPrefix(pattern, "-") {
		b.WriteByte('\\')
	}
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if ch == '\\' && i+1 < len(pattern) {
			b.WriteByte(ch)
			i++
			b.WriteByte(pattern[i])
			continue
		}
		if ch == ',' {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	if op == clause.StrNotLike {
		return "-" + b.String()
	}
	return b.String()
}

// escapeString escapes separators, backslashes, wildcards, a leading
// negation sign and whitespace at either end of the value.
func escapeString(value string) string {
	_, lastSize := utf8.DecodeLastRuneInString(value)
	last := len(value) - lastSize
	var b strings.Builder
	b.Grow(len(value) + 4)
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		switch {
		case r == ',' || r == '\\' || r == '%' || r == '_':
			b.WriteByte('\\')
		case r == '-' && i == 0:
			b.WriteByte('\\')
		case unicode.IsSpace(r) && (i == 0 || i == last):
			b.WriteByte('\\')
		}
		b.WriteString(value[i : i+size])
		i += size
	}
	return b.String()
}

func isSpecialWord(value string) bool {
	return strings.EqualFold(value, "null") || strings.EqualFold(value, "empty")
}

package parser

import (
	"strings"

	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/tokenize"
)

const (
	typeEmpty    = "EMPTY"
	typeNotEmpty = "NOTEMPTY"
)

// Whitespace does not split string values; a value is everything between two
// unescaped commas.
var stringConfig = tokenize.Config{
	TrimWordWhitespace:   true,
	CombineAdjacentWords: true,
	SpecialSubstrings: []tokenize.Special{
		tokenize.Lit(TypeComma, ",", false),
	},
	SpecialWords: []tokenize.Special{
		tokenize.Lit(TypeNull, "null", true),
		tokenize.Lit(typeEmpty, "empty", true),
		tokenize.Lit(TypeNotNull, "-null", true),
		tokenize.Lit(typeNotEmpty, "-empty", true),
	},
}

var stringSpecials = map[string]clause.StringOperator{
	TypeNull:     clause.StrNull,
	TypeNotNull:  clause.StrNotNull,
	typeEmpty:    clause.StrEmpty,
	typeNotEmpty: clause.StrNotEmpty,
}

// String parses a comma separated list of string matches. A leading "-"
// negates a value; unescaped "%" and "_" select prefix, suffix, substring or
// wildcard matching.
func String(src string) Result[clause.StringClause] {
	tokens := tokenize.Tokenize(src, stringConfig)
	res := newResult[clause.StringClause](tokens)
	c := &cursor{tokens: tokens}

	for !c.done() {
		t := c.current()
		c.advance(1)

		if t.Type == TypeComma {
			continue
		}
		if op, ok := stringSpecials[t.Type]; ok {
			res.Clauses = append(res.Clauses, clause.StringSpecial{Operator: op})
			continue
		}
		if t.IsWord() {
			if t.Value == "" {
				continue
			}
			if cl, ok := classifyString(t.Value); ok {
				res.Clauses = append(res.Clauses, cl)
				continue
			}
		}
		res.Errors = append(res.Errors, clause.Errorf(t.StartIndex, t.EndIndex, "Invalid expression"))
	}

	res.Clauses = groupString(res.Clauses)
	return res
}

func classifyString(text string) (clause.StringClause, bool) {
	negated := strings.HasPrefix(text, "-")
	if negated {
		text = text[1:]
	}
	if text == "" {
		return nil, false
	}
	op := func(positive clause.StringOperator) clause.StringOperator {
		if negated {
			return positive.Negate()
		}
		return positive
	}

	last := len(text) - 1
	var leading, trailing, interior, underscore bool
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '_':
			underscore = true
		case '%':
			if i == 0 {
				leading = true
			}
			if i == last {
				trailing = true
			}
			if i != 0 && i != last {
				interior = true
			}
		}
	}

	var value string
	var positive clause.StringOperator
	switch {
	case underscore || interior || (leading && trailing && len(text) < 3):
		return clause.StringLike{Operator: op(clause.StrLike), EscapedValues: []string{text}}, true
	case leading && trailing:
		positive, value = clause.StrContains, unescape(text[1:last])
	case leading:
		positive, value = clause.StrEnds, unescape(text[1:])
	case trailing:
		positive, value = clause.StrStarts, unescape(text[:last])
	default:
		positive, value = clause.StrEq, unescape(text)
	}
	if value == "" {
		return nil, false
	}
	return clause.StringCondition{Operator: op(positive), Values: []string{value}}, true
}

// unescape drops every escaping backslash. A trailing lone backslash is kept.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

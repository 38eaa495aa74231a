// Package parser turns filter source text into clauses.
//
// Parsing never fails. Input that matches no production is reported as a
// positioned diagnostic and skipped, so one call surfaces every problem.
// Each parser walks an immutable token slice with an explicit cursor, and
// every step of its loop consumes at least one token.
package parser

import (
	"strings"

	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/tokenize"
)

// Shared token types.
const (
	TypeComma   = "COMMA"
	TypeEquals  = "EQ"
	TypeNull    = "NULL"
	TypeNotNull = "NOTNULL"
)

// Result is the outcome of parsing one filter expression. Slices are never
// nil.
type Result[C clause.Clause] struct {
	Clauses []C
	Errors  []clause.Diagnostic
	// Tokens is the token stream the parser consumed, after any merging.
	Tokens []tokenize.Token
}

func newResult[C clause.Clause](tokens []tokenize.Token) Result[C] {
	if tokens == nil {
		tokens = []tokenize.Token{}
	}
	return Result[C]{Clauses: []C{}, Errors: []clause.Diagnostic{}, Tokens: tokens}
}

type cursor struct {
	tokens []tokenize.Token
	pos    int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.tokens)
}

func (c *cursor) current() tokenize.Token {
	return c.peek(0)
}

// peek returns the token n positions ahead, or a zero token past the end.
func (c *cursor) peek(n int) tokenize.Token {
	if c.pos+n < len(c.tokens) {
		return c.tokens[c.pos+n]
	}
	return tokenize.Token{}
}

func (c *cursor) advance(n int) {
	if n < 1 {
		n = 1
	}
	c.pos += n
}

func (c *cursor) is(n int, types ...string) bool {
	t := c.peek(n)
	for _, typ := range types {
		if t.Type == typ {
			return true
		}
	}
	return false
}

// sourceOf returns the text of src covered by t.
func sourceOf(src string, t tokenize.Token) string {
	if t.StartIndex < 0 || t.EndIndex > len(src) || t.StartIndex > t.EndIndex {
		return t.Value
	}
	return strings.TrimSpace(src[t.StartIndex:t.EndIndex])
}

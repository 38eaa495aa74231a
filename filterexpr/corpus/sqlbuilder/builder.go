// Package sqlbuilder assembles SQL text with backend-specific placeholders.
package sqlbuilder

import (
	"strconv"
	"strings"
)

type PlaceholderStyle int

const (
	PlaceholderQuestion PlaceholderStyle = iota
	PlaceholderDollar
)

type Builder struct {
	Style PlaceholderStyle
	args  []any
	sb    strings.Builder
	where bool
}

func New(style PlaceholderStyle) *Builder {
	return &Builder{Style: style, args: make([]any, 0)}
}

// Arg records v and returns its placeholder.
func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)
	switch b.Style {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(len(b.args))
	default:
		return "?"
	}
}

func (b *Builder) Args() []any { return b.args }
func (b *Builder) Len() int    { return len(b.args) }

// Write appends raw SQL text.
func (b *Builder) Write(parts ...string) *Builder {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
	return b
}

// Where appends a condition, joined to earlier ones with AND.
func (b *Builder) Where(cond string) *Builder {
	if b.where {
		b.sb.WriteString(" AND ")
	} else {
		b.sb.WriteString(" WHERE ")
		b.where = true
	}
	b.sb.WriteString(cond)
	return b
}

func (b *Builder) SQL() string { return b.sb.String() }

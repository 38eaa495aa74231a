package tokenize

import (
	"fmt"
	"regexp"
	"strings"
)

// WordType is the type of tokens produced by plain character accumulation.
const WordType = "word"

// Token is a positioned piece of filter source text. StartIndex and EndIndex
// are byte offsets into the original input, EndIndex exclusive.
type Token struct {
	Type       string
	Value      string
	StartIndex int
	EndIndex   int
	// Children holds the tokens merged into a composite token, in order.
	Children []Token
}

func (t Token) String() string {
	if len(t.Children) == 0 {
		return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Value, t.StartIndex, t.EndIndex)
	}
	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s[%s]@%d:%d", t.Type, strings.Join(parts, " "), t.StartIndex, t.EndIndex)
}

// IsWord reports whether t is a plain word token.
func (t Token) IsWord() bool {
	return t.Type == WordType
}

// Special recognizes a substring or a whole word and gives it a token type.
// Exactly one of Literal and Pattern is set.
type Special struct {
	Type       string
	Literal    string
	Pattern    *regexp.Regexp
	IgnoreCase bool
}

// Lit returns a literal special pattern.
func Lit(typ, literal string, ignoreCase bool) Special {
	return Special{Type: typ, Literal: literal, IgnoreCase: ignoreCase}
}

// Re returns a regular expression special pattern. When ignoreCase is set the
// expression is compiled case-insensitively.
func Re(typ, expr string, ignoreCase bool) Special {
	if ignoreCase {
		expr = "(?i)" + expr
	}
	return Special{Type: typ, Pattern: regexp.MustCompile(expr), IgnoreCase: ignoreCase}
}

// matchPrefix returns the length of the match of s at the start of rest, or 0.
func (s Special) matchPrefix(rest string) int {
	if s.Pattern != nil {
		loc := s.Pattern.FindStringIndex(rest)
		if loc == nil || loc[0] != 0 {
			return 0
		}
		return loc[1]
	}
	n := len(s.Literal)
	if n == 0 || len(rest) < n {
		return 0
	}
	if s.IgnoreCase {
		if strings.EqualFold(rest[:n], s.Literal) {
			return n
		}
		return 0
	}
	if rest[:n] == s.Literal {
		return n
	}
	return 0
}

// matchWord reports whether the whole word w is recognized by s.
func (s Special) matchWord(w string) bool {
	if s.Pattern != nil {
		return s.Pattern.MatchString(w)
	}
	if s.IgnoreCase {
		return strings.EqualFold(w, s.Literal)
	}
	return w == s.Literal
}

// Config controls how Tokenize splits and classifies input.
type Config struct {
	SplitOnWhitespace    bool
	TrimWordWhitespace   bool
	CombineAdjacentWords bool

	// SpecialSubstrings are tried in order at every unescaped position.
	SpecialSubstrings []Special
	// SpecialWords are tried in order against every whole word token.
	SpecialWords []Special
}

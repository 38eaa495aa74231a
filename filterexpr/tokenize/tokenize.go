package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits input into tokens according to cfg. It never fails: text
// that matches nothing becomes word tokens.
func Tokenize(input string, cfg Config) []Token {
	tokens := make([]Token, 0, 8)
	wordStart := -1

	flush := func(end int) {
		if wordStart >= 0 && end > wordStart {
			tokens = append(tokens, Token{
				Type:       WordType,
				Value:      input[wordStart:end],
				StartIndex: wordStart,
				EndIndex:   end,
			})
		}
		wordStart = -1
	}

	pos := 0
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])

		// An escape keeps the backslash and the escaped character verbatim.
		if r == '\\' {
			if wordStart < 0 {
				wordStart = pos
			}
			pos += size
			if pos < len(input) {
				_, next := utf8.DecodeRuneInString(input[pos:])
				pos += next
			}
			continue
		}

		if cfg.SplitOnWhitespace && unicode.IsSpace(r) {
			flush(pos)
			for pos < len(input) {
				r, size = utf8.DecodeRuneInString(input[pos:])
				if !unicode.IsSpace(r) {
					break
				}
				pos += size
			}
			continue
		}

		if n, typ, ok := matchSubstring(cfg.SpecialSubstrings, input[pos:]); ok {
			flush(pos)
			tokens = append(tokens, Token{
				Type:       typ,
				Value:      input[pos : pos+n],
				StartIndex: pos,
				EndIndex:   pos + n,
			})
			pos += n
			continue
		}

		if wordStart < 0 {
			wordStart = pos
		}
		pos += size
	}
	flush(len(input))

	tokens = applySpecialWords(tokens, cfg.SpecialWords)
	if cfg.CombineAdjacentWords {
		tokens = combineWords(input, tokens)
	}
	if cfg.TrimWordWhitespace {
		tokens = TrimWords(tokens)
	}
	return tokens
}

func matchSubstring(specials []Special, rest string) (int, string, bool) {
	for _, s := range specials {
		if n := s.matchPrefix(rest); n > 0 {
			return n, s.Type, true
		}
	}
	return 0, "", false
}

func applySpecialWords(tokens []Token, specials []Special) []Token {
	if len(specials) == 0 {
		return tokens
	}
	for i, t := range tokens {
		if !t.IsWord() {
			continue
		}
		w := strings.TrimSpace(t.Value)
		if w == "" {
			continue
		}
		for _, s := range specials {
			if !s.matchWord(w) {
				continue
			}
			if s.IgnoreCase {
				w = strings.ToUpper(w)
			}
			tokens[i] = Token{Type: s.Type, Value: w, StartIndex: t.StartIndex, EndIndex: t.EndIndex}
			break
		}
	}
	return tokens
}

// combineWords merges runs of adjacent word tokens. The merged value is the
// source text spanned by the run, so whitespace between the words survives.
func combineWords(input string, tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if n := len(out); n > 0 && t.IsWord() && out[n-1].IsWord() {
			prev := &out[n-1]
			prev.EndIndex = t.EndIndex
			prev.Value = input[prev.StartIndex:prev.EndIndex]
			continue
		}
		out = append(out, t)
	}
	return out
}

// TrimWords trims surrounding whitespace from every word token value. A
// trailing space escaped with a backslash is kept. Offsets are left
// untouched. Applying it more than once has no further effect.
func TrimWords(tokens []Token) []Token {
	for i := range tokens {
		if tokens[i].IsWord() {
			tokens[i].Value = trimWord(tokens[i].Value)
		}
	}
	return tokens
}

func trimWord(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		end := len(s) - size
		if !unicode.IsSpace(r) || escapedAt(s, end) {
			break
		}
		s = s[:end]
	}
	return s
}

// escapedAt reports whether the byte at i follows an odd run of backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

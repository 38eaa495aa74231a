package tokenize

import "strings"

// MatchTypes reports whether tokens[start:] begins with exactly the given
// sequence of token types, returning the matched tokens.
func MatchTypes(types []string, tokens []Token, start int) ([]Token, bool) {
	if len(types) == 0 || start < 0 || start+len(types) > len(tokens) {
		return nil, false
	}
	for i, typ := range types {
		if tokens[start+i].Type != typ {
			return nil, false
		}
	}
	return tokens[start : start+len(types)], true
}

// Merge builds one composite token of type typ from the given run of tokens.
func Merge(run []Token, typ string) Token {
	children := make([]Token, len(run))
	copy(children, run)
	values := make([]string, len(run))
	for i, t := range run {
		values[i] = t.Value
	}
	return Token{
		Type:       typ,
		Value:      strings.Join(values, " "),
		StartIndex: run[0].StartIndex,
		EndIndex:   run[len(run)-1].EndIndex,
		Children:   children,
	}
}

// MergeTypes scans tokens left to right and replaces every run matching types
// with a composite token of type merged. Other tokens pass through unchanged.
func MergeTypes(types []string, tokens []Token, merged string) []Token {
	out := make([]Token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if run, ok := MatchTypes(types, tokens, i); ok {
			out = append(out, Merge(run, merged))
			i += len(run)
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

// Package filterexpr parses and serializes typed filter expressions.
//
// Four small languages are supported, one per filter type: boolean, number,
// string and date. Parse never fails on malformed input; it returns whatever
// clauses it could recognize together with positioned diagnostics for the
// rest. Serialize renders clauses back into canonical text.
package filterexpr

import (
	"fmt"
	"log/slog"

	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/parser"
	"github.com/ministore/filterexpr/filterexpr/serialize"
	"github.com/ministore/filterexpr/filterexpr/tokenize"
)

// Result is the outcome of Parse. Slices are never nil.
type Result struct {
	Clauses []clause.Clause
	Errors  []clause.Diagnostic
	Tokens  []tokenize.Token
	// QuoteStyles is only filled for string filters.
	QuoteStyles []parser.QuoteStyle
}

// HasErrors reports whether any diagnostic has error severity.
func (r Result) HasErrors() bool {
	for _, d := range r.Errors {
		if d.Severity != clause.SeverityWarn {
			return true
		}
	}
	return false
}

// SerializeResult carries either canonical text or an error message.
type SerializeResult struct {
	Result string
	Error  string
}

// Parse parses src as a filter of type t. An unknown type or an unexpected
// internal failure is reported as a single diagnostic spanning src.
func Parse(src string, t clause.FilterType) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("filter parse failed", "type", t, "panic", r)
			res = failed(src, fmt.Sprintf("internal error: %v", r))
		}
	}()

	switch t {
	case clause.Boolean:
		r := parser.Boolean(src)
		return result(widen(r.Clauses), r.Errors, r.Tokens)
	case clause.Number:
		r := parser.Number(src)
		return result(widen(r.Clauses), r.Errors, r.Tokens)
	case clause.String:
		r := parser.String(src)
		res = result(widen(r.Clauses), r.Errors, r.Tokens)
		res.QuoteStyles = parser.QuoteStyles(src)
		return res
	case clause.Date:
		r := parser.Date(src)
		return result(widen(r.Clauses), r.Errors, r.Tokens)
	default:
		return failed(src, fmt.Sprintf("unknown filter type %q", t))
	}
}

// Serialize renders clauses of type t. A clause from another family, or any
// malformed clause, fails the whole call.
func Serialize(clauses []clause.Clause, t clause.FilterType) SerializeResult {
	text, err := SerializeText(clauses, t)
	if err != nil {
		return SerializeResult{Error: err.Error()}
	}
	return SerializeResult{Result: text}
}

// SerializeText is Serialize with a Go error.
func SerializeText(clauses []clause.Clause, t clause.FilterType) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("filter serialize failed", "type", t, "panic", r)
			text, err = "", New(ErrInternal, fmt.Sprintf("internal error: %v", r))
		}
	}()

	switch t {
	case clause.Boolean:
		text, err = serializeAs(clauses, t, serialize.Boolean)
	case clause.Number:
		text, err = serializeAs(clauses, t, serialize.Number)
	case clause.String:
		text, err = serializeAs(clauses, t, serialize.String)
	case clause.Date:
		text, err = serializeAs(clauses, t, serialize.Date)
	default:
		return "", UnknownTypeError(t)
	}
	if err != nil {
		return "", SerializeError(t, err)
	}
	return text, nil
}

// Tokens returns the token stream Parse consumes for src, after any
// type-specific merging.
func Tokens(src string, t clause.FilterType) []tokenize.Token {
	return Parse(src, t).Tokens
}

// RoundTrip parses src, serializes the clauses and parses the result once
// more. stable reports whether the canonical text reproduces itself without
// new diagnostics.
func RoundTrip(src string, t clause.FilterType) (canonical string, stable bool, res Result) {
	res = Parse(src, t)
	canonical, err := SerializeText(res.Clauses, t)
	if err != nil {
		slog.Debug("round trip: serialize failed", "type", t, "source", src, "error", err)
		return "", false, res
	}

	again := Parse(canonical, t)
	second, err := SerializeText(again.Clauses, t)
	stable = err == nil && second == canonical && !again.HasErrors()
	if !stable {
		slog.Debug("round trip unstable", "type", t, "source", src, "canonical", canonical, "second", second)
	}
	return canonical, stable, res
}

func result(clauses []clause.Clause, errs []clause.Diagnostic, tokens []tokenize.Token) Result {
	return Result{Clauses: clauses, Errors: errs, Tokens: tokens, QuoteStyles: []parser.QuoteStyle{}}
}

func failed(src, msg string) Result {
	return Result{
		Clauses:     []clause.Clause{},
		Errors:      []clause.Diagnostic{clause.Errorf(0, len(src), "%s", msg)},
		Tokens:      []tokenize.Token{},
		QuoteStyles: []parser.QuoteStyle{},
	}
}

func widen[C clause.Clause](in []C) []clause.Clause {
	out := make([]clause.Clause, len(in))
	for i, c := range in {
		out[i] = c
	}
	return out
}

// narrow converts clauses to one family, failing on the first stranger.
func narrow[C clause.Clause](in []clause.Clause, t clause.FilterType) ([]C, error) {
	out := make([]C, len(in))
	for i, c := range in {
		typed, ok := c.(C)
		if !ok {
			return nil, fmt.Errorf("clause %d is %T, not a %s clause", i, c, t)
		}
		out[i] = typed
	}
	return out, nil
}

func serializeAs[C clause.Clause](clauses []clause.Clause, t clause.FilterType, fn func([]C) (string, error)) (string, error) {
	typed, err := narrow[C](clauses, t)
	if err != nil {
		return "", err
	}
	return fn(typed)
}

package cliutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ministore/filterexpr/filterexpr"
	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/tokenize"
)

type TokenView struct {
	Type     string      `json:"type" yaml:"type" msgpack:"type"`
	Value    string      `json:"value" yaml:"value" msgpack:"value"`
	Start    int         `json:"start" yaml:"start" msgpack:"start"`
	End      int         `json:"end" yaml:"end" msgpack:"end"`
	Children []TokenView `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

func TokenViews(tokens []tokenize.Token) []TokenView {
	out := make([]TokenView, len(tokens))
	for i, t := range tokens {
		out[i] = TokenView{Type: t.Type, Value: t.Value, Start: t.StartIndex, End: t.EndIndex}
		if len(t.Children) > 0 {
			out[i].Children = TokenViews(t.Children)
		}
	}
	return out
}

type DiagnosticView struct {
	Severity string `json:"severity" yaml:"severity" msgpack:"severity"`
	Message  string `json:"message" yaml:"message" msgpack:"message"`
	Start    int    `json:"start" yaml:"start" msgpack:"start"`
	End      int    `json:"end" yaml:"end" msgpack:"end"`
}

func DiagnosticViews(diags []clause.Diagnostic) []DiagnosticView {
	out := make([]DiagnosticView, len(diags))
	for i, d := range diags {
		sev := d.Severity
		if sev == "" {
			sev = clause.SeverityError
		}
		out[i] = DiagnosticView{Severity: string(sev), Message: d.Message, Start: d.StartIndex, End: d.EndIndex}
	}
	return out
}

// ParseView is the structured output of the parse command.
type ParseView struct {
	Type        clause.FilterType       `json:"type" yaml:"type" msgpack:"type"`
	Source      string                  `json:"source" yaml:"source" msgpack:"source"`
	Clauses     []filterexpr.WireClause `json:"clauses" yaml:"clauses" msgpack:"clauses"`
	Errors      []DiagnosticView        `json:"errors" yaml:"errors" msgpack:"errors"`
	Canonical   string                  `json:"canonical,omitempty" yaml:"canonical,omitempty" msgpack:"canonical,omitempty"`
	QuoteStyles []string                `json:"quoteStyles,omitempty" yaml:"quoteStyles,omitempty" msgpack:"quoteStyles,omitempty"`
}

func NewParseView(src string, t clause.FilterType, res filterexpr.Result) (ParseView, error) {
	wire, err := filterexpr.ToWire(res.Clauses)
	if err != nil {
		return ParseView{}, err
	}
	v := ParseView{
		Type:    t,
		Source:  src,
		Clauses: wire,
		Errors:  DiagnosticViews(res.Errors),
	}
	if text, err := filterexpr.SerializeText(res.Clauses, t); err == nil {
		v.Canonical = text
	}
	for _, q := range res.QuoteStyles {
		v.QuoteStyles = append(v.QuoteStyles, string(q))
	}
	return v, nil
}

// PrintParse renders a ParseView for humans.
func PrintParse(w io.Writer, v ParseView) error {
	fmt.Fprintf(w, "%s filter: %q\n", v.Type, v.Source)
	if len(v.Clauses) == 0 {
		fmt.Fprintln(w, "no clauses")
	}
	for i, c := range v.Clauses {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(c); err != nil {
			return err
		}
		fmt.Fprintf(w, "%3d. %s", i+1, buf.Bytes())
	}
	if v.Canonical != "" {
		fmt.Fprintf(w, "canonical: %s\n", v.Canonical)
	}
	if len(v.QuoteStyles) > 0 {
		fmt.Fprintf(w, "quotes: %s\n", strings.Join(v.QuoteStyles, " "))
	}
	PrintDiagnostics(w, v.Source, v.Errors)
	return nil
}

// PrintDiagnostics lists diagnostics with a marker under the offending text.
func PrintDiagnostics(w io.Writer, src string, diags []DiagnosticView) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s at %d:%d: %s\n", d.Severity, d.Start, d.End, d.Message)
		start, end := clamp(d.Start, len(src)), clamp(d.End, len(src))
		if end < start {
			end = start
		}
		pad := utf8.RuneCountInString(src[:start])
		width := utf8.RuneCountInString(src[start:end])
		if width == 0 {
			width = 1
		}
		fmt.Fprintf(w, "    %s\n    %s%s\n", src, strings.Repeat(" ", pad), strings.Repeat("^", width))
	}
}

// PrintTokens prints one token per line, indenting composite children.
func PrintTokens(w io.Writer, tokens []TokenView) {
	printTokens(w, tokens, "")
}

func printTokens(w io.Writer, tokens []TokenView, indent string) {
	for _, t := range tokens {
		fmt.Fprintf(w, "%s%-12s %-20q %d:%d\n", indent, t.Type, t.Value, t.Start, t.End)
		if len(t.Children) > 0 {
			printTokens(w, t.Children, indent+"  ")
		}
	}
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

package parser

import "strings"

// QuoteStyle is a quoting convention seen in raw filter text.
type QuoteStyle string

const (
	QuoteTripleSingle   QuoteStyle = `'''`
	QuoteTripleDouble   QuoteStyle = `"""`
	QuoteTripleBacktick QuoteStyle = "```"
	QuoteSingle         QuoteStyle = `'`
	QuoteDouble         QuoteStyle = `"`
	QuoteBacktick       QuoteStyle = "`"
	QuoteEscapedSingle  QuoteStyle = `\'`
	QuoteEscapedDouble  QuoteStyle = `\"`
	QuoteEscapedTick    QuoteStyle = "\\`"
)

var quoteStyleOrder = []QuoteStyle{
	QuoteTripleSingle, QuoteTripleDouble, QuoteTripleBacktick,
	QuoteSingle, QuoteDouble, QuoteBacktick,
	QuoteEscapedSingle, QuoteEscapedDouble, QuoteEscapedTick,
}

// QuoteStyles reports which quote styles occur in raw, in a fixed order.
// Escaped quotes are never counted as plain ones. The result is informational
// and has no effect on parsing.
func QuoteStyles(raw string) []QuoteStyle {
	seen := make(map[QuoteStyle]bool)
	for i := 0; i < len(raw); {
		ch := raw[i]
		if ch == '\\' && i+1 < len(raw) {
			if isQuote(raw[i+1]) {
				seen[QuoteStyle(raw[i:i+2])] = true
			}
			i += 2
			continue
		}
		if !isQuote(ch) {
			i++
			continue
		}
		if triple := strings.Repeat(string(ch), 3); strings.HasPrefix(raw[i:], triple) {
			seen[QuoteStyle(triple)] = true
			i += 3
			continue
		}
		seen[QuoteStyle(string(ch))] = true
		i++
	}

	out := []QuoteStyle{}
	for _, s := range quoteStyleOrder {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

func isQuote(ch byte) bool {
	return ch == '\'' || ch == '"' || ch == '`'
}

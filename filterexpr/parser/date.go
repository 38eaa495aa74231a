package parser

import (
	"strconv"
	"strings"

	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/tokenize"
)

// Date token types.
const (
	typeUnit      = "UNITOFTIME"
	typeWeekday   = "WEEKDAY"
	typeDate      = "DATE"
	typeTime      = "TIME"
	typeToday     = "TODAY"
	typeYesterday = "YESTERDAY"
	typeTomorrow  = "TOMORROW"
	typeNow       = "NOW"
	typeThis      = "THIS"
	typeLast      = "LAST"
	typeNext      = "NEXT"
	typeAgo       = "AGO"
	typeFrom      = "FROM"
	typeFor       = "FOR"
	typeTo        = "TO"
	typePrefix    = "PREFIX"
	typeYear      = "YEAR"
	typeNumber    = "NUMBER"

	// MergePrefix starts the type of every composite date token.
	MergePrefix = "MERGE:"
)

// Specific patterns come first: a four digit word is a YEAR, not a NUMBER.
var dateConfig = tokenize.Config{
	SplitOnWhitespace: true,
	SpecialSubstrings: []tokenize.Special{
		tokenize.Lit(TypeComma, ",", false),
	},
	SpecialWords: []tokenize.Special{
		tokenize.Re(typeUnit, `^(year|quarter|month|week|day|hour|minute|second)s?$`, true),
		tokenize.Re(typeWeekday, `^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)$`, true),
		tokenize.Re(typeDate, `^\d{4}-\d{2}-\d{2}$`, true),
		tokenize.Re(typeDate, `^\d{4}-\d{2}$`, true),
		tokenize.Re(typeTime, `^\d{2}:\d{2}(:\d{2}(\.\d+)?)?$`, true),
		tokenize.Lit(TypeNotNull, "-null", true),
		tokenize.Lit(TypeNull, "null", true),
		tokenize.Lit(typeToday, "today", true),
		tokenize.Lit(typeYesterday, "yesterday", true),
		tokenize.Lit(typeTomorrow, "tomorrow", true),
		tokenize.Lit(typeNow, "now", true),
		tokenize.Lit(typeThis, "this", true),
		tokenize.Lit(typeLast, "last", true),
		tokenize.Lit(typeNext, "next", true),
		tokenize.Lit(typeAgo, "ago", true),
		tokenize.Lit(typeFrom, "from", true),
		tokenize.Lit(typeFor, "for", true),
		tokenize.Lit(typeTo, "to", true),
		tokenize.Re(typePrefix, `^(before|after)$`, true),
		tokenize.Re(typeYear, `^\d{4}$`, true),
		tokenize.Re(typeNumber, `^-?\d+(\.\d+)?$`, true),
	},
}

// mergeShapes is tried in order at every position. Longer shapes precede the
// shorter shapes they start with.
var mergeShapes = [][]string{
	{typeLast, typeNumber, typeUnit},
	{typeNext, typeNumber, typeUnit},
	{typeLast, typeYear, typeUnit},
	{typeNext, typeYear, typeUnit},
	{typeNumber, typeUnit, typeFrom, typeNow},
	{typeYear, typeUnit, typeFrom, typeNow},
	{typeNumber, typeUnit, typeAgo},
	{typeYear, typeUnit, typeAgo},
	{typeLast, typeUnit},
	{typeThis, typeUnit},
	{typeNext, typeUnit},
	{typeLast, typeWeekday},
	{typeThis, typeWeekday},
	{typeNext, typeWeekday},
	{typeNumber, typeUnit},
	{typeYear, typeUnit},
	{typeDate, typeTime},
	{typeDate},
	{typeYear},
	{typeToday},
	{typeYesterday},
	{typeTomorrow},
	{typeNow},
}

// MergeMoments replaces every run of tokens that forms a moment or duration
// with one composite token whose type is MergePrefix plus the shape, e.g.
// "MERGE:NUMBER|UNITOFTIME|AGO".
func MergeMoments(tokens []tokenize.Token) []tokenize.Token {
	out := make([]tokenize.Token, 0, len(tokens))
	for i := 0; i < len(tokens); {
		merged := false
		for _, shape := range mergeShapes {
			if run, ok := tokenize.MatchTypes(shape, tokens, i); ok {
				out = append(out, tokenize.Merge(run, MergePrefix+strings.Join(shape, "|")))
				i += len(run)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, tokens[i])
			i++
		}
	}
	return out
}

func isMerged(t tokenize.Token) bool {
	return strings.HasPrefix(t.Type, MergePrefix)
}

// Date parses a comma separated list of date conditions such as "today",
// "before 2025-08-30", "3 days ago", "last week to now" or
// "2025-01-01 for 2 weeks".
func Date(src string) Result[clause.DateClause] {
	tokens := MergeMoments(tokenize.Tokenize(src, dateConfig))
	p := &dateParser{src: src, cursor: cursor{tokens: tokens}, res: newResult[clause.DateClause](tokens)}
	p.parse()
	return p.res
}

type dateParser struct {
	src string
	cursor
	res Result[clause.DateClause]
	// prefix is a pending before/after awaiting its moment.
	prefix *tokenize.Token
}

func (p *dateParser) parse() {
	for !p.done() {
		t := p.current()
		switch {
		case t.Type == TypeComma:
			p.rejectPrefix()
			p.advance(1)

		case t.Type == typePrefix:
			p.rejectPrefix()
			p.prefix = &t
			p.advance(1)

		case isMerged(t):
			if p.parseRange() {
				continue
			}
			p.parseMoment(t)
			p.advance(1)

		case t.Type == TypeNull || t.Type == TypeNotNull:
			p.rejectPrefix()
			op := clause.DateIsNull
			if t.Type == TypeNotNull {
				op = clause.DateNotNull
			}
			p.res.Clauses = append(p.res.Clauses, clause.DateNull{Operator: op})
			p.advance(1)

		default:
			p.rejectPrefix()
			p.errorf(t, "Invalid token %s", sourceOf(p.src, t))
			p.advance(1)
		}
	}
	p.rejectPrefix()
}

// parseRange handles "<moment> to <moment>" and "<moment> for <duration>" at
// the cursor. It reports false, consuming nothing, when there is no range.
func (p *dateParser) parseRange() bool {
	if !isMerged(p.peek(2)) || !p.is(1, typeTo, typeFor) {
		return false
	}
	left, right := p.peek(0), p.peek(2)
	from, fromDiags := p.reduce(left)
	to, toDiags := p.reduce(right)

	var cl clause.DateClause
	switch p.peek(1).Type {
	case typeTo:
		if from.moment != nil && to.moment != nil {
			cl = clause.DateToRange{From: from.moment, To: to.moment}
		}
	case typeFor:
		if from.moment != nil && to.duration != nil {
			cl = clause.DateForRange{From: from.moment, Duration: *to.duration}
		}
	}
	diags := append(fromDiags, toDiags...)
	if cl == nil && len(diags) == 0 {
		return false
	}

	// Ranges cannot be prefixed; the range is consumed without a clause.
	prefixed := p.prefix != nil
	p.rejectPrefix()
	p.res.Errors = append(p.res.Errors, diags...)
	if cl != nil && len(diags) == 0 && !prefixed {
		p.res.Clauses = append(p.res.Clauses, cl)
	}
	p.advance(3)
	return true
}

// parseMoment turns a single composite token into a clause. The pending
// prefix is consumed whether or not a clause results.
func (p *dateParser) parseMoment(t tokenize.Token) {
	prefix := p.prefix
	p.prefix = nil

	r, diags := p.reduce(t)
	if len(diags) > 0 {
		p.res.Errors = append(p.res.Errors, diags...)
		return
	}

	switch {
	case r.duration != nil:
		if prefix != nil {
			p.res.Errors = append(p.res.Errors, clause.Errorf(prefix.StartIndex, t.EndIndex, "Invalid %s", strings.ToLower(prefix.Value)))
			return
		}
		p.res.Clauses = append(p.res.Clauses, clause.DateDuration{Duration: *r.duration})

	case r.moment != nil:
		op := clause.DateOn
		if prefix != nil {
			op = clause.DateBefore
			if strings.EqualFold(prefix.Value, "after") {
				op = clause.DateAfter
			}
		}
		p.res.Clauses = append(p.res.Clauses, clause.DateMoment{Operator: op, Moment: r.moment})

	default:
		if prefix != nil {
			p.res.Errors = append(p.res.Errors, clause.Errorf(prefix.StartIndex, prefix.EndIndex, "Invalid %s", strings.ToLower(prefix.Value)))
		}
		p.errorf(t, "Invalid token %s", sourceOf(p.src, t))
	}
}

// reduced is what a composite token stands for: a moment or a duration.
type reduced struct {
	moment   clause.Moment
	duration *clause.Duration
}

// reduce interprets a composite token by its shape. Number failures are
// reported on the offending child token.
func (p *dateParser) reduce(t tokenize.Token) (reduced, []clause.Diagnostic) {
	kids := t.Children
	var diags []clause.Diagnostic
	amount := func(k tokenize.Token) int {
		n, err := strconv.Atoi(k.Value)
		if err != nil {
			diags = append(diags, clause.Errorf(k.StartIndex, k.EndIndex, "Invalid number %s", sourceOf(p.src, k)))
		}
		return n
	}
	unit := func(k tokenize.Token) clause.TimeUnit {
		u, _ := clause.ParseTimeUnit(k.Value)
		return u
	}

	var r reduced
	switch strings.TrimPrefix(t.Type, MergePrefix) {
	case "LAST|NUMBER|UNITOFTIME", "LAST|YEAR|UNITOFTIME":
		r.moment = clause.SpanMoment{Direction: clause.SpanLast, Amount: amount(kids[1]), Unit: unit(kids[2])}
	case "NEXT|NUMBER|UNITOFTIME", "NEXT|YEAR|UNITOFTIME":
		r.moment = clause.SpanMoment{Direction: clause.SpanNext, Amount: amount(kids[1]), Unit: unit(kids[2])}
	case "NUMBER|UNITOFTIME|FROM|NOW", "YEAR|UNITOFTIME|FROM|NOW":
		r.moment = clause.OffsetMoment{Direction: clause.OffsetFromNow, Amount: amount(kids[0]), Unit: unit(kids[1])}
	case "NUMBER|UNITOFTIME|AGO", "YEAR|UNITOFTIME|AGO":
		r.moment = clause.OffsetMoment{Direction: clause.OffsetAgo, Amount: amount(kids[0]), Unit: unit(kids[1])}
	case "LAST|UNITOFTIME", "THIS|UNITOFTIME", "NEXT|UNITOFTIME":
		r.moment = clause.IntervalMoment{Kind: clause.IntervalKind(kids[0].Type), Unit: string(unit(kids[1]))}
	case "LAST|WEEKDAY", "THIS|WEEKDAY", "NEXT|WEEKDAY":
		wd, _ := clause.ParseWeekday(kids[1].Value)
		r.moment = clause.IntervalMoment{Kind: clause.IntervalKind(kids[0].Type), Unit: string(wd)}
	case "NUMBER|UNITOFTIME", "YEAR|UNITOFTIME":
		r.duration = &clause.Duration{Amount: amount(kids[0]), Unit: unit(kids[1])}
	case "DATE|TIME":
		u := clause.Minute
		if len(kids[1].Value) > 5 {
			u = clause.Second
		}
		r.moment = clause.AbsoluteMoment{Date: kids[0].Value + " " + kids[1].Value, Unit: u}
	case "DATE":
		u := clause.Day
		if len(kids[0].Value) == len("2006-01") {
			u = clause.Month
		}
		r.moment = clause.AbsoluteMoment{Date: kids[0].Value, Unit: u}
	case "YEAR":
		r.moment = clause.AbsoluteMoment{Date: kids[0].Value, Unit: clause.Year}
	case "TODAY", "YESTERDAY", "TOMORROW", "NOW":
		r.moment = clause.NamedMoment{Name: clause.MomentName(kids[0].Type)}
	}
	if len(diags) > 0 {
		return reduced{}, diags
	}
	return r, nil
}

func (p *dateParser) rejectPrefix() {
	if p.prefix == nil {
		return
	}
	pre := *p.prefix
	p.prefix = nil
	p.errorf(pre, "Invalid %s", strings.ToLower(pre.Value))
}

func (p *dateParser) errorf(t tokenize.Token, format string, args ...any) {
	p.res.Errors = append(p.res.Errors, clause.Errorf(t.StartIndex, t.EndIndex, format, args...))
}

package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/tokenize"
)

const (
	typeOpenSquare  = "["
	typeCloseSquare = "]"
	typeOpenRound   = "("
	typeCloseRound  = ")"
	typeLe          = "<="
	typeGe          = ">="
	typeNe          = "!="
	typeGt          = ">"
	typeLt          = "<"
)

// Two character operators come before their one character prefixes.
var numberConfig = tokenize.Config{
	SplitOnWhitespace: true,
	SpecialSubstrings: []tokenize.Special{
		tokenize.Lit(TypeComma, ",", false),
		tokenize.Lit(typeOpenSquare, "[", false),
		tokenize.Lit(typeCloseSquare, "]", false),
		tokenize.Lit(typeOpenRound, "(", false),
		tokenize.Lit(typeCloseRound, ")", false),
		tokenize.Lit(typeLe, "<=", false),
		tokenize.Lit(typeGe, ">=", false),
		tokenize.Lit(typeNe, "!=", false),
		tokenize.Lit(TypeEquals, "=", false),
		tokenize.Lit(typeGt, ">", false),
		tokenize.Lit(typeLt, "<", false),
	},
	SpecialWords: []tokenize.Special{
		tokenize.Lit(TypeNull, "null", true),
		tokenize.Lit(TypeNotNull, "-null", true),
	},
}

var numericRe = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

var comparisonOperators = map[string]clause.NumberOperator{
	typeLe:     clause.NumLe,
	typeGe:     clause.NumGe,
	typeLt:     clause.NumLt,
	typeGt:     clause.NumGt,
	typeNe:     clause.NumNe,
	TypeEquals: clause.NumEq,
}

// Number parses a comma separated list of comparisons and ranges, e.g.
// "1, 3, >=10, [5, 7), !=(12, 20]". Adjacent conditions sharing an operator
// are grouped into one clause.
func Number(src string) Result[clause.NumberClause] {
	tokens := tokenize.Tokenize(src, numberConfig)
	res := newResult[clause.NumberClause](tokens)
	c := &cursor{tokens: tokens}

	for !c.done() {
		t := c.current()
		switch {
		case t.Type == TypeComma:
			c.advance(1)

		case isRangeOpen(t):
			r, diags, n := parseRange(src, c, 0, false)
			res.Errors = append(res.Errors, diags...)
			if r != nil {
				res.Clauses = append(res.Clauses, *r)
			}
			c.advance(n)

		case t.Type == typeNe && isRangeOpen(c.peek(1)):
			r, diags, n := parseRange(src, c, 1, true)
			res.Errors = append(res.Errors, diags...)
			if r != nil {
				res.Clauses = append(res.Clauses, *r)
			}
			c.advance(n)

		case t.Type == TypeNull:
			res.Clauses = append(res.Clauses, clause.NumberCondition{Operator: clause.NumEq, Values: []clause.NumberValue{clause.NullValue()}})
			c.advance(1)

		case t.Type == TypeNotNull:
			res.Clauses = append(res.Clauses, clause.NumberCondition{Operator: clause.NumNe, Values: []clause.NumberValue{clause.NullValue()}})
			c.advance(1)

		default:
			if op, ok := comparisonOperators[t.Type]; ok {
				if v, ok := parseNumeric(c.peek(1)); ok {
					res.Clauses = append(res.Clauses, clause.NumberCondition{Operator: op, Values: []clause.NumberValue{clause.Num(v)}})
					c.advance(2)
					continue
				}
			}
			if v, ok := parseNumeric(t); ok {
				res.Clauses = append(res.Clauses, clause.NumberCondition{Operator: clause.NumEq, Values: []clause.NumberValue{clause.Num(v)}})
				c.advance(1)
				continue
			}
			res.Errors = append(res.Errors, clause.Errorf(t.StartIndex, t.EndIndex, "Invalid expression"))
			c.advance(1)
		}
	}

	res.Clauses = groupNumber(res.Clauses)
	return res
}

func isRangeOpen(t tokenize.Token) bool {
	return t.Type == typeOpenSquare || t.Type == typeOpenRound
}

// parseRange reads "[a, b)" starting skip tokens after the cursor. It returns
// the clause, if any, its diagnostics and the number of tokens consumed.
func parseRange(src string, c *cursor, skip int, negate bool) (*clause.NumberRange, []clause.Diagnostic, int) {
	start := c.current()
	toks, ok := tokenize.MatchTypes([]string{c.peek(skip).Type, tokenize.WordType, TypeComma, tokenize.WordType, c.peek(skip + 4).Type}, c.tokens, c.pos+skip)
	if !ok || !isRangeOpen(toks[0]) || (toks[4].Type != typeCloseSquare && toks[4].Type != typeCloseRound) {
		end := c.peek(skip)
		return nil, []clause.Diagnostic{clause.Errorf(start.StartIndex, end.EndIndex, "Invalid range expression")}, skip + 1
	}

	startOp, endOp := clause.NumGe, clause.NumLe
	if toks[0].Type == typeOpenRound {
		startOp = clause.NumGt
	}
	if toks[4].Type == typeCloseRound {
		endOp = clause.NumLt
	}

	var diags []clause.Diagnostic
	lo, okLo := parseEndpoint(toks[1])
	if !okLo {
		diags = append(diags, clause.Errorf(toks[1].StartIndex, toks[1].EndIndex, "Invalid number %s", sourceOf(src, toks[1])))
	}
	hi, okHi := parseEndpoint(toks[3])
	if !okHi {
		diags = append(diags, clause.Errorf(toks[3].StartIndex, toks[3].EndIndex, "Invalid number %s", sourceOf(src, toks[3])))
	}
	if len(diags) > 0 {
		return nil, diags, skip + 5
	}

	if negate {
		startOp, endOp = startOp.Negate(), endOp.Negate()
	}
	return &clause.NumberRange{
		StartOperator: startOp,
		StartValue:    lo,
		EndOperator:   endOp,
		EndValue:      hi,
	}, nil, skip + 5
}

func parseNumeric(t tokenize.Token) (float64, bool) {
	if !t.IsWord() || !numericRe.MatchString(t.Value) {
		return 0, false
	}
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseEndpoint also accepts inf and -inf.
func parseEndpoint(t tokenize.Token) (float64, bool) {
	switch strings.ToLower(t.Value) {
	case "inf", "+inf":
		return math.Inf(1), true
	case "-inf":
		return math.Inf(-1), true
	}
	return parseNumeric(t)
}

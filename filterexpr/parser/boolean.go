package parser

import (
	"github.com/ministore/filterexpr/filterexpr/clause"
	"github.com/ministore/filterexpr/filterexpr/tokenize"
)

const (
	typeTrue  = "TRUE"
	typeFalse = "FALSE"
	typeNot   = "NOT"
)

var booleanConfig = tokenize.Config{
	SplitOnWhitespace: true,
	SpecialSubstrings: []tokenize.Special{
		tokenize.Lit(TypeComma, ",", false),
		tokenize.Lit(TypeEquals, "=", false),
	},
	SpecialWords: []tokenize.Special{
		tokenize.Lit(TypeNull, "null", true),
		tokenize.Lit(TypeNotNull, "-null", true),
		tokenize.Lit(typeTrue, "true", true),
		tokenize.Lit(typeFalse, "false", true),
		tokenize.Lit(typeNot, "not", true),
	},
}

// Boolean parses a comma separated list of boolean conditions.
//
// A bare "false" means false or null and "=false" means strictly false.
// "not null" is read as NOTNULL.
func Boolean(src string) Result[clause.BooleanClause] {
	tokens := tokenize.Tokenize(src, booleanConfig)
	tokens = tokenize.MergeTypes([]string{typeNot, TypeNull}, tokens, TypeNotNull)

	res := newResult[clause.BooleanClause](tokens)
	c := &cursor{tokens: tokens}
	for !c.done() {
		t := c.current()
		switch {
		case t.Type == TypeComma:
			c.advance(1)
		case t.Type == TypeEquals && c.is(1, typeTrue):
			res.Clauses = append(res.Clauses, clause.BooleanClause{Operator: clause.BoolTrue})
			c.advance(2)
		case t.Type == TypeEquals && c.is(1, typeFalse):
			res.Clauses = append(res.Clauses, clause.BooleanClause{Operator: clause.BoolFalse})
			c.advance(2)
		case t.Type == typeTrue:
			res.Clauses = append(res.Clauses, clause.BooleanClause{Operator: clause.BoolTrue})
			c.advance(1)
		case t.Type == typeFalse:
			res.Clauses = append(res.Clauses, clause.BooleanClause{Operator: clause.BoolFalseOrNull})
			c.advance(1)
		case t.Type == TypeNull:
			res.Clauses = append(res.Clauses, clause.BooleanClause{Operator: clause.BoolNull})
			c.advance(1)
		case t.Type == TypeNotNull:
			res.Clauses = append(res.Clauses, clause.BooleanClause{Operator: clause.BoolNotNull})
			c.advance(1)
		default:
			res.Errors = append(res.Errors, clause.Errorf(t.StartIndex, t.EndIndex, "Invalid token %s", sourceOf(src, t)))
			c.advance(1)
		}
	}
	return res
}

package parser

import "github.com/ministore/filterexpr/filterexpr/clause"

// groupAdjacent folds each clause into the previous output clause when merge
// accepts it. Only strictly adjacent clauses are considered.
func groupAdjacent[C any](in []C, merge func(prev, next C) (C, bool)) []C {
	out := make([]C, 0, len(in))
	for _, c := range in {
		if n := len(out); n > 0 {
			if merged, ok := merge(out[n-1], c); ok {
				out[n-1] = merged
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// groupNumber merges adjacent conditions with the same operator. Ranges are
// never merged and break a run.
func groupNumber(in []clause.NumberClause) []clause.NumberClause {
	return groupAdjacent(in, func(prev, next clause.NumberClause) (clause.NumberClause, bool) {
		p, ok := prev.(clause.NumberCondition)
		if !ok {
			return prev, false
		}
		n, ok := next.(clause.NumberCondition)
		if !ok || p.Operator != n.Operator {
			return prev, false
		}
		values := make([]clause.NumberValue, 0, len(p.Values)+len(n.Values))
		values = append(values, p.Values...)
		values = append(values, n.Values...)
		return clause.NumberCondition{Operator: p.Operator, Values: values}, true
	})
}

// groupString merges adjacent value conditions with the same operator.
func groupString(in []clause.StringClause) []clause.StringClause {
	return groupAdjacent(in, func(prev, next clause.StringClause) (clause.StringClause, bool) {
		p, ok := prev.(clause.StringCondition)
		if !ok {
			return prev, false
		}
		n, ok := next.(clause.StringCondition)
		if !ok || p.Operator != n.Operator {
			return prev, false
		}
		values := make([]string, 0, len(p.Values)+len(n.Values))
		values = append(values, p.Values...)
		values = append(values, n.Values...)
		return clause.StringCondition{Operator: p.Operator, Values: values}, true
	})
}

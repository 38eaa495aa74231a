// Package serialize renders clauses back into canonical filter text. The
// output of each function parses back to the same clauses.
//
// Serialization input is expected to be built by programs, so any malformed
// clause fails the whole call.
package serialize

import (
	"fmt"
	"strings"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

const separator = ", "

var booleanText = map[clause.BooleanOperator]string{
	clause.BoolTrue:        "TRUE",
	clause.BoolFalse:       "=FALSE",
	clause.BoolFalseOrNull: "FALSE",
	clause.BoolNull:        "NULL",
	clause.BoolNotNull:     "-NULL",
}

// Boolean renders boolean clauses.
func Boolean(clauses []clause.BooleanClause) (string, error) {
	parts := make([]string, 0, len(clauses))
	for i, c := range clauses {
		text, ok := booleanText[c.Operator]
		if !ok {
			return "", fmt.Errorf("clause %d: unknown boolean operator %q", i, c.Operator)
		}
		parts = append(parts, text)
	}
	return join(parts), nil
}

func join(parts []string) string {
	return strings.TrimSuffix(strings.Join(parts, separator), separator)
}

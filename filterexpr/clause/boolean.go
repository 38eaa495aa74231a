package clause

// BooleanOperator is the single field of a boolean clause.
type BooleanOperator string

const (
	BoolTrue        BooleanOperator = "TRUE"
	BoolFalse       BooleanOperator = "FALSE"
	BoolNull        BooleanOperator = "NULL"
	BoolNotNull     BooleanOperator = "NOTNULL"
	BoolFalseOrNull BooleanOperator = "FALSEORNULL"
)

// Valid reports whether op is a known boolean operator.
func (op BooleanOperator) Valid() bool {
	switch op {
	case BoolTrue, BoolFalse, BoolNull, BoolNotNull, BoolFalseOrNull:
		return true
	}
	return false
}

// BooleanClause is one boolean filter condition.
type BooleanClause struct {
	Operator BooleanOperator
}

func (BooleanClause) FilterType() FilterType { return Boolean }

package clause

import "fmt"

// DateOperator identifies a date clause kind.
type DateOperator string

const (
	DateOn      DateOperator = "ON"
	DateBefore  DateOperator = "BEFORE"
	DateAfter   DateOperator = "AFTER"
	DateTo      DateOperator = "TO_RANGE"
	DateFor     DateOperator = "FOR_RANGE"
	DateDur     DateOperator = "DURATION"
	DateIsNull  DateOperator = "NULL"
	DateNotNull DateOperator = "NOTNULL"
)

// DateClause is the sealed family of date clauses.
type DateClause interface {
	Clause
	Op() DateOperator
	Validate() error
	isDateClause()
}

// DateMoment compares against a single moment: ON, BEFORE or AFTER.
type DateMoment struct {
	Operator DateOperator
	Moment   Moment
}

func (DateMoment) FilterType() FilterType { return Date }
func (DateMoment) isDateClause()          {}
func (c DateMoment) Op() DateOperator     { return c.Operator }

func (c DateMoment) Validate() error {
	switch c.Operator {
	case DateOn, DateBefore, DateAfter:
	default:
		return fmt.Errorf("operator %q does not take a moment", c.Operator)
	}
	if c.Moment == nil {
		return fmt.Errorf("%s clause has no moment", c.Operator)
	}
	return c.Moment.Validate()
}

// DateToRange spans from one moment to another.
type DateToRange struct {
	From Moment
	To   Moment
}

func (DateToRange) FilterType() FilterType { return Date }
func (DateToRange) isDateClause()          {}
func (DateToRange) Op() DateOperator       { return DateTo }

func (c DateToRange) Validate() error {
	if c.From == nil || c.To == nil {
		return fmt.Errorf("range is missing an endpoint")
	}
	if err := c.From.Validate(); err != nil {
		return err
	}
	return c.To.Validate()
}

// DateForRange spans a duration starting at a moment.
type DateForRange struct {
	From     Moment
	Duration Duration
}

func (DateForRange) FilterType() FilterType { return Date }
func (DateForRange) isDateClause()          {}
func (DateForRange) Op() DateOperator       { return DateFor }

func (c DateForRange) Validate() error {
	if c.From == nil {
		return fmt.Errorf("range has no start")
	}
	if err := c.From.Validate(); err != nil {
		return err
	}
	return c.Duration.Validate()
}

// DateDuration is a bare duration, e.g. "3 days".
type DateDuration struct {
	Duration Duration
}

func (DateDuration) FilterType() FilterType { return Date }
func (DateDuration) isDateClause()          {}
func (DateDuration) Op() DateOperator       { return DateDur }
func (c DateDuration) Validate() error      { return c.Duration.Validate() }

// DateNull is NULL or NOTNULL.
type DateNull struct {
	Operator DateOperator
}

func (DateNull) FilterType() FilterType { return Date }
func (DateNull) isDateClause()          {}
func (c DateNull) Op() DateOperator     { return c.Operator }

func (c DateNull) Validate() error {
	if c.Operator != DateIsNull && c.Operator != DateNotNull {
		return fmt.Errorf("operator %q is not a null test", c.Operator)
	}
	return nil
}

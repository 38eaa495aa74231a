package clause

import (
	"fmt"
	"strings"
)

// TimeUnit is a calendar or clock unit.
type TimeUnit string

const (
	Year    TimeUnit = "YEAR"
	Quarter TimeUnit = "QUARTER"
	Month   TimeUnit = "MONTH"
	Week    TimeUnit = "WEEK"
	Day     TimeUnit = "DAY"
	Hour    TimeUnit = "HOUR"
	Minute  TimeUnit = "MINUTE"
	Second  TimeUnit = "SECOND"
)

var timeUnits = []TimeUnit{Year, Quarter, Month, Week, Day, Hour, Minute, Second}

// ParseTimeUnit accepts a unit name in any case, singular or plural.
func ParseTimeUnit(s string) (TimeUnit, bool) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for _, tu := range timeUnits {
		if u == string(tu) || u == string(tu)+"S" {
			return tu, true
		}
	}
	return "", false
}

// Valid reports whether u is a known unit.
func (u TimeUnit) Valid() bool {
	for _, tu := range timeUnits {
		if u == tu {
			return true
		}
	}
	return false
}

// Weekday names a day of the week.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday accepts a weekday name in any case.
func ParseWeekday(s string) (Weekday, bool) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for _, wd := range weekdays {
		if u == string(wd) {
			return wd, true
		}
	}
	return "", false
}

// Valid reports whether wd is a known weekday.
func (wd Weekday) Valid() bool {
	for _, w := range weekdays {
		if wd == w {
			return true
		}
	}
	return false
}

// Duration is an amount of a unit.
type Duration struct {
	Amount int
	Unit   TimeUnit
}

// Validate checks the unit.
func (d Duration) Validate() error {
	if !d.Unit.Valid() {
		return fmt.Errorf("unknown time unit %q", d.Unit)
	}
	return nil
}

// MomentType tags the variants of Moment.
type MomentType string

const (
	MomentNamed    MomentType = "NAMED"
	MomentInterval MomentType = "INTERVAL"
	MomentSpan     MomentType = "SPAN_FROM_NOW"
	MomentOffset   MomentType = "OFFSET_FROM_NOW"
	MomentAbsolute MomentType = "ABSOLUTE"
)

// Moment is a point or relative point in time. It is captured structurally
// and never resolved against a clock.
type Moment interface {
	MomentType() MomentType
	Validate() error
	isMoment()
}

// MomentName is the name of a named moment.
type MomentName string

const (
	Now       MomentName = "NOW"
	Today     MomentName = "TODAY"
	Yesterday MomentName = "YESTERDAY"
	Tomorrow  MomentName = "TOMORROW"
)

// NamedMoment is now, today, yesterday or tomorrow.
type NamedMoment struct {
	Name MomentName
}

func (NamedMoment) MomentType() MomentType { return MomentNamed }
func (NamedMoment) isMoment()              {}

func (m NamedMoment) Validate() error {
	switch m.Name {
	case Now, Today, Yesterday, Tomorrow:
		return nil
	}
	return fmt.Errorf("unknown moment name %q", m.Name)
}

// IntervalKind selects the last, current or next interval.
type IntervalKind string

const (
	IntervalLast IntervalKind = "LAST"
	IntervalThis IntervalKind = "THIS"
	IntervalNext IntervalKind = "NEXT"
)

// IntervalMoment is a whole unit or weekday relative to now, e.g. "last week"
// or "next monday". Unit holds a TimeUnit or a Weekday name.
type IntervalMoment struct {
	Kind IntervalKind
	Unit string
}

func (IntervalMoment) MomentType() MomentType { return MomentInterval }
func (IntervalMoment) isMoment()              {}

func (m IntervalMoment) Validate() error {
	switch m.Kind {
	case IntervalLast, IntervalThis, IntervalNext:
	default:
		return fmt.Errorf("unknown interval kind %q", m.Kind)
	}
	if TimeUnit(m.Unit).Valid() {
		return nil
	}
	if Weekday(m.Unit).Valid() {
		return nil
	}
	return fmt.Errorf("unknown interval unit %q", m.Unit)
}

// SpanDirection is the direction of a span.
type SpanDirection string

const (
	SpanLast SpanDirection = "LAST"
	SpanNext SpanDirection = "NEXT"
)

// SpanMoment is several units back from or ahead of now, e.g. "last 3 weeks".
type SpanMoment struct {
	Direction SpanDirection
	Amount    int
	Unit      TimeUnit
}

func (SpanMoment) MomentType() MomentType { return MomentSpan }
func (SpanMoment) isMoment()              {}

func (m SpanMoment) Validate() error {
	if m.Direction != SpanLast && m.Direction != SpanNext {
		return fmt.Errorf("unknown span direction %q", m.Direction)
	}
	if !m.Unit.Valid() {
		return fmt.Errorf("unknown time unit %q", m.Unit)
	}
	return nil
}

// OffsetDirection is the direction of an offset.
type OffsetDirection string

const (
	OffsetAgo     OffsetDirection = "AGO"
	OffsetFromNow OffsetDirection = "FROMNOW"
)

// OffsetMoment is a point some units away from now, e.g. "3 days ago".
type OffsetMoment struct {
	Direction OffsetDirection
	Amount    int
	Unit      TimeUnit
}

func (OffsetMoment) MomentType() MomentType { return MomentOffset }
func (OffsetMoment) isMoment()              {}

func (m OffsetMoment) Validate() error {
	if m.Direction != OffsetAgo && m.Direction != OffsetFromNow {
		return fmt.Errorf("unknown offset direction %q", m.Direction)
	}
	if !m.Unit.Valid() {
		return fmt.Errorf("unknown time unit %q", m.Unit)
	}
	return nil
}

// AbsoluteMoment is a literal date or date-time. Unit is the granularity of
// the literal, inferred from its shape.
type AbsoluteMoment struct {
	Date string
	Unit TimeUnit
}

func (AbsoluteMoment) MomentType() MomentType { return MomentAbsolute }
func (AbsoluteMoment) isMoment()              {}

func (m AbsoluteMoment) Validate() error {
	if strings.TrimSpace(m.Date) == "" {
		return fmt.Errorf("absolute moment has no date")
	}
	if !m.Unit.Valid() {
		return fmt.Errorf("unknown time unit %q", m.Unit)
	}
	return nil
}

// Package clause holds the structured form of parsed filter expressions.
//
// Every filter type has its own closed family of clause variants. Families are
// sealed interfaces: only the types in this package implement them, so a type
// switch over a family is exhaustive.
package clause

import (
	"fmt"
	"strings"
)

// FilterType names a filter language.
type FilterType string

const (
	Boolean FilterType = "boolean"
	Number  FilterType = "number"
	String  FilterType = "string"
	Date    FilterType = "date"
)

// FilterTypes lists every supported filter type.
var FilterTypes = []FilterType{Boolean, Number, String, Date}

// ParseFilterType maps a case-insensitive name to a FilterType.
func ParseFilterType(s string) (FilterType, bool) {
	switch FilterType(strings.ToLower(strings.TrimSpace(s))) {
	case Boolean:
		return Boolean, true
	case Number:
		return Number, true
	case String:
		return String, true
	case Date:
		return Date, true
	default:
		return "", false
	}
}

// Clause is implemented by every clause variant of every family.
type Clause interface {
	FilterType() FilterType
}

// Severity grades a diagnostic.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
)

// Diagnostic describes input that could not be classified. Offsets point into
// the original source text, EndIndex exclusive.
type Diagnostic struct {
	Message    string   `json:"message"`
	StartIndex int      `json:"startIndex"`
	EndIndex   int      `json:"endIndex"`
	Severity   Severity `json:"severity,omitempty"`
}

func (d Diagnostic) String() string {
	sev := d.Severity
	if sev == "" {
		sev = SeverityError
	}
	return fmt.Sprintf("%s at %d:%d: %s", sev, d.StartIndex, d.EndIndex, d.Message)
}

// Errorf returns an error-severity diagnostic.
func Errorf(start, end int, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), StartIndex: start, EndIndex: end, Severity: SeverityError}
}

// Warnf returns a warning diagnostic.
func Warnf(start, end int, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), StartIndex: start, EndIndex: end, Severity: SeverityWarn}
}

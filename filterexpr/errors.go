package filterexpr

import (
	"errors"
	"fmt"

	"github.com/ministore/filterexpr/filterexpr/clause"
)

type ErrorKind string

const (
	ErrParse       ErrorKind = "parse"
	ErrSerialize   ErrorKind = "serialize"
	ErrUnknownType ErrorKind = "unknown_type"
	ErrWire        ErrorKind = "wire"
	ErrCorpus      ErrorKind = "corpus"
	ErrConfig      ErrorKind = "config"
	ErrInternal    ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Type    clause.FilterType
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Type != "" {
		base = fmt.Sprintf("%s (type=%s)", base, e.Type)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func UnknownTypeError(t clause.FilterType) *Error {
	return &Error{Kind: ErrUnknownType, Message: "unknown filter type", Type: t}
}

func SerializeError(t clause.FilterType, cause error) *Error {
	return &Error{Kind: ErrSerialize, Message: "cannot serialize clauses", Type: t, Cause: cause}
}

func WireError(msg string, cause error) *Error {
	return &Error{Kind: ErrWire, Message: msg, Cause: cause}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

package spec

import (
	"errors"
	"fmt"
)

// ErrorKind classifies spec failures.
type ErrorKind string

const (
	ErrorKindSyntax       ErrorKind = "syntax"
	ErrorKindSemantic     ErrorKind = "semantic"
	ErrorKindIncompatible ErrorKind = "incompatible"
)

// Sentinels matched through errors.Is. The messages are never shown to users;
// *Error carries the user-facing text.
var (
	ErrSyntax       = errors.New("spec: syntax error")
	ErrSemantic     = errors.New("spec: semantic error")
	ErrIncompatible = errors.New("spec: incompatible with field type")
)

// Error reports a malformed, inconsistent or mismatched spec. Message is the
// complete human-readable text and interpolates the spec as written.
type Error struct {
	Kind    ErrorKind
	Spec    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for the error kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case ErrorKindSyntax:
		return ErrSyntax
	case ErrorKindSemantic:
		return ErrSemantic
	case ErrorKindIncompatible:
		return ErrIncompatible
	default:
		return nil
	}
}

func syntaxErrorf(raw, format string, args ...any) *Error {
	return &Error{Kind: ErrorKindSyntax, Spec: raw, Message: fmt.Sprintf(format, args...)}
}

func semanticErrorf(raw, format string, args ...any) *Error {
	return &Error{Kind: ErrorKindSemantic, Spec: raw, Message: fmt.Sprintf(format, args...)}
}

func invalidType(raw string) *Error {
	return syntaxErrorf(raw, "Invalid type in autofixture spec '%s'", raw)
}

func invalidString(raw string) *Error {
	return syntaxErrorf(raw, "Invalid string autofixture spec: '%s'", raw)
}

func invalidNumber(raw string) *Error {
	return syntaxErrorf(raw, "Invalid number autofixture spec: '%s'", raw)
}

func realInInteger(raw, numeral string) *Error {
	return semanticErrorf(raw, "Invalid integer autofixture spec contains real value: %s", numeral)
}

func invertedRange(raw string, lower, upper float64) *Error {
	return semanticErrorf(raw, "Lower bound %s must be lower than upper bound %s", formatNumber(lower), formatNumber(upper))
}

func emptyIntegerRange(raw string, lower, upper float64) *Error {
	return semanticErrorf(raw, "Integer range %s < integer < %s contains no integers", formatNumber(lower), formatNumber(upper))
}

// IncompatibleError builds the error returned when a spec names a different
// kind than the field it is attached to.
func IncompatibleError(raw, declared string) *Error {
	return &Error{
		Kind:    ErrorKindIncompatible,
		Spec:    raw,
		Message: fmt.Sprintf("AutoFixture spec '%s' not compatible with type '%s'", raw, declared),
	}
}

// OutOfRangeError builds the error returned when a numeric spec leaves no
// value that the field's Go type can hold.
func OutOfRangeError(raw, goType string, lower, upper float64) *Error {
	return semanticErrorf(raw, "AutoFixture spec '%s' allows no value of type '%s' (range %s to %s)",
		raw, goType, formatNumber(lower), formatNumber(upper))
}

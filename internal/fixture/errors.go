package fixture

import (
	"errors"
	"fmt"
)

// ErrorKind classifies materializer failures.
type ErrorKind string

const (
	ErrorKindUnknownField ErrorKind = "unknown-field"
	ErrorKindUnsupported  ErrorKind = "unsupported"
	// ErrorKindSpec marks a spec error raised while generating a field.
	ErrorKindSpec ErrorKind = "spec"
)

var (
	// ErrUnknownField reports a spec key with no matching template field.
	ErrUnknownField = errors.New("fixture: spec names unknown field")
	// ErrUnsupported reports a template shape that cannot be generated.
	ErrUnsupported = errors.New("fixture: unsupported template shape")
)

// Error carries the failing field and its dotted path from the template root.
// Message is the user-facing text. Spec errors keep their own message and are
// reachable through errors.As.
type Error struct {
	Kind    ErrorKind
	Field   string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for the kind and the underlying spec error.
func (e *Error) Unwrap() []error {
	var errs []error
	switch e.Kind {
	case ErrorKindUnknownField:
		errs = append(errs, ErrUnknownField)
	case ErrorKindUnsupported:
		errs = append(errs, ErrUnsupported)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func unknownFieldError(name string) *Error {
	return &Error{
		Kind:    ErrorKindUnknownField,
		Field:   name,
		Message: fmt.Sprintf("Autofixture specifies field '%s' that is not in the type", name),
	}
}

func emptyArrayError(name string) *Error {
	return &Error{
		Kind:    ErrorKindUnsupported,
		Field:   name,
		Message: fmt.Sprintf("Found empty array '%s'", name),
	}
}

func nestedArrayError(name string) *Error {
	return &Error{
		Kind:    ErrorKindUnsupported,
		Field:   name,
		Message: fmt.Sprintf("Nested array '%s' not supported", name),
	}
}

func unsupportedTypeError(name, typ string) *Error {
	return &Error{
		Kind:    ErrorKindUnsupported,
		Field:   name,
		Message: fmt.Sprintf("Autofixture cannot generate values of type '%s'", typ),
	}
}

func specError(name string, err error) *Error {
	return &Error{Kind: ErrorKindSpec, Field: name, Message: err.Error(), Err: err}
}

// withPath records where the failure happened unless a deeper level already
// did.
func withPath(err error, path string) error {
	var fixtureErr *Error
	if errors.As(err, &fixtureErr) && fixtureErr.Path == "" {
		fixtureErr.Path = path
	}
	return err
}

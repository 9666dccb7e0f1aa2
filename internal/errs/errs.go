// Package errs defines the error taxonomy shared by services and handlers.
// Errors carry a kind instead of forming a type hierarchy so the HTTP layer
// can map them to status codes with a single switch.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error for the transport boundary.
type Kind int

// Kind constants define the error taxonomy.
const (
	// KindInternal covers storage faults and unexpected states. Surfaced
	// generically to the caller.
	KindInternal Kind = iota
	// KindValidation means the caller-supplied input is invalid.
	KindValidation
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindBusinessLogic means well-formed input violates a domain rule.
	KindBusinessLogic
	// KindConflict means dependent state blocks the requested change.
	KindConflict
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBusinessLogic:
		return "business_logic"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified error with an optional list of field violations.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	if e.Message != "" {
		return e.Message + ": " + strings.Join(msgs, ", ")
	}
	return strings.Join(msgs, ", ")
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationFields creates a validation error carrying field violations.
func ValidationFields(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BusinessLogic creates a domain-rule violation error.
func BusinessLogic(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessLogic, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unclassified fault.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FieldsOf returns the field violations carried by err, if any.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// Package domainerrors provides coded errors for the domain and service
// layers. Services return these so edges (HTTP handlers, CLIs) can map a
// failure to a user-facing response without string matching.
//
// Conventions:
//   - Model constructors and mutators return CodeInvariantViolation.
//   - ID/value parsing at trust boundaries returns CodeInvalidInput.
//   - The service façade translates both into CodeValidation before they
//     escape, and raises CodeConflict / CodeBusinessRule / CodeNotFound for
//     cross-entity rules.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for programmatic handling.
type Code string

const (
	CodeInvalidInput       Code = "invalid_input"
	CodeInvariantViolation Code = "invariant_violation"
	CodeValidation         Code = "validation_error"
	CodeConflict           Code = "conflict"
	CodeBusinessRule       Code = "business_rule"
	CodeNotFound           Code = "not_found"
	CodeBadRequest         Code = "bad_request"
	CodeInternal           Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.cause
		if err == nil {
			return false
		}
	}
	return false
}

// CodeOf returns the code of the outermost coded error in the chain, or
// CodeInternal when the error carries no code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Package apperr provides the error taxonomy shared by the site's services.
// Errors carry a string code so handlers can map them to HTTP statuses
// without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

// Code represents a specific error condition.
type Code string

const (
	// CodeInvalidInput indicates the caller supplied malformed input.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeInvalidConfig indicates a required setting is missing or invalid.
	CodeInvalidConfig Code = "INVALID_CONFIGURATION"

	// CodeUnauthorized indicates an upstream rejected our credentials.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeForbidden indicates an upstream accepted our credentials but denied the operation.
	CodeForbidden Code = "FORBIDDEN"

	// CodeNotFound indicates a requested resource does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeNetwork indicates a transport failure talking to an upstream.
	CodeNetwork Code = "NETWORK_ERROR"

	// CodeUpstream indicates an upstream answered with an unexpected status.
	CodeUpstream Code = "UPSTREAM_ERROR"

	// CodeInternal indicates an unexpected failure.
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is a classified error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error with the given code that wraps err.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code so sentinel comparisons work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

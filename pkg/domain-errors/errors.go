// Package errors defines coded domain errors shared by services and transports.
//
// Services return *Error values (optionally wrapping a cause). The HTTP layer maps
// the Code to a status with ToHTTPStatus and writes the Code as the wire string.
package errors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error independently of the transport.
type Code string

const (
	// CodeBadRequest marks requests that cannot be decoded.
	CodeBadRequest Code = "bad_request"

	// CodeValidation marks well-formed requests that break a field or size rule.
	CodeValidation Code = "validation_error"

	CodeInternal Code = "internal_error"
)

// Error is a domain error carrying a Code and a client-safe message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err (or any error it wraps) is a domain error with code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// ToHTTPStatus maps a domain code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

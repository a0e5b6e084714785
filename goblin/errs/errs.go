// Package errs defines the typed outcomes returned by the economy and session layers.
//
// Every failure a command can run into is one of the Code values below. Callers
// compare with errors.Is against the Err* sentinels, which match on code only, so
// wrapped and annotated errors still compare equal.
package errs

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown               Code = "UNKNOWN"
	CodeAlreadyActive         Code = "ALREADY_ACTIVE"
	CodeNotFound              Code = "NOT_FOUND"
	CodeForbidden             Code = "FORBIDDEN"
	CodeInsufficientFunds     Code = "INSUFFICIENT_FUNDS"
	CodeAlreadyDone           Code = "ALREADY_DONE"
	CodeNotOwned              Code = "NOT_OWNED"
	CodeExists                Code = "EXISTS"
	CodeInvalidInput          Code = "INVALID_INPUT"
	CodeExternalActionFailure Code = "EXTERNAL_ACTION_FAILURE"
	CodePersistence           Code = "PERSISTENCE_ERROR"
)

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrAlreadyActive         = &Error{Code: CodeAlreadyActive}
	ErrNotFound              = &Error{Code: CodeNotFound}
	ErrForbidden             = &Error{Code: CodeForbidden}
	ErrInsufficientFunds     = &Error{Code: CodeInsufficientFunds}
	ErrAlreadyDone           = &Error{Code: CodeAlreadyDone}
	ErrNotOwned              = &Error{Code: CodeNotOwned}
	ErrExists                = &Error{Code: CodeExists}
	ErrInvalidInput          = &Error{Code: CodeInvalidInput}
	ErrExternalActionFailure = &Error{Code: CodeExternalActionFailure}
	ErrPersistence           = &Error{Code: CodePersistence}
)

// New returns a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a coded error wrapping err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the code of err, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// MessageOf returns the human readable message of a coded error, falling back to err.Error().
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

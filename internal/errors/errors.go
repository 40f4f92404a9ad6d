package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error type mapped to process exit codes.
type Code int

const (
	CodeSuccess  Code = 0
	CodeInternal Code = 1
	CodeUsage    Code = 2

	// Quote engine failures. Each one aborts the whole request.
	CodeInvalidCommand  Code = 10
	CodeLengthMismatch  Code = 11
	CodePayloadTooShort Code = 12
	CodeProvider        Code = 13
	CodeOverflow        Code = 14

	CodeUnavailable Code = 15
	CodeStale       Code = 16
	CodeBlocked     Code = 17
)

// Error is a typed CLI error that carries a stable error code.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Rewrap prefixes context onto an existing error without losing its code.
// Untyped causes are treated as internal.
func Rewrap(message string, cause error) *Error {
	if typed, ok := As(cause); ok {
		return &Error{Code: typed.Code, Message: message, Cause: cause}
	}
	return &Error{Code: CodeInternal, Message: message, Cause: cause}
}

func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func ExitCode(err error) int {
	if err == nil {
		return int(CodeSuccess)
	}
	if cliErr, ok := As(err); ok {
		return int(cliErr.Code)
	}
	return int(CodeInternal)
}

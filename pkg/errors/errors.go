// Package errors carries coded errors across the CLI, the pipeline and the
// HTTP API.
//
// An [*Error] pairs a [Code] with a message meant for users and an optional
// cause meant for logs. The API writes the code and message into its JSON
// error body and picks the status with [Code.HTTPStatus]; the cause is only
// ever logged.
//
// The adjacency-list converter never fails, so codes only come from the
// layers around it: validation, rendering, storage and concept lookup.
//
//	if err := errors.ValidateDocumentID(id); err != nil {
//	    return err // INVALID_ID
//	}
//	doc, err := store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeDocumentNotFound) {
//	    ...
//	}
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is a coded error. Message is safe to show to users; Cause is not.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause attached.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// As is the standard library's errors.As, so callers need only one import.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// GetCode returns the code of the outermost coded error in err's chain,
// or "" when there is none. A bare *RateLimitedError counts as
// ErrCodeRateLimited.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case *RateLimitedError:
			return e.Code()
		}
		err = stderrors.Unwrap(err)
	}
	return ""
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message of the outermost *Error in err's chain,
// falling back to err.Error().
func UserMessage(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RateLimitedError is returned by upstream clients that were throttled.
// RetryAfter is in seconds; zero means the upstream gave no hint.
type RateLimitedError struct {
	RetryAfter int
	Message    string
}

func (e *RateLimitedError) Error() string {
	msg := "rate limited"
	if e.RetryAfter > 0 {
		msg = fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

func (e *RateLimitedError) Code() Code { return ErrCodeRateLimited }

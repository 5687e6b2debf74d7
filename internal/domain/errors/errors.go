package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a ledger failure the way a status code would, without
// committing callers to any particular transport.
type Kind string

const (
	// KindInvalidArgument covers every business validation failure: malformed
	// amounts, self transfers, missing accounts, ineligible accounts,
	// overdrafts, and bad query ranges. Never retried.
	KindInvalidArgument Kind = "invalid_argument"

	// KindNotFound marks lookups of rows that do not exist outside a mutating
	// operation. Inside a mutation a missing account is an invalid argument.
	KindNotFound Kind = "not_found"

	// KindAborted marks a write-write conflict that survived the transaction
	// manager's retry budget. Safe for the caller to retry.
	KindAborted Kind = "aborted"

	// KindInternal marks an unexpected store fault. Not retried.
	KindInternal Kind = "internal"
)

// Error is the typed failure returned by every ledger operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument builds a validation failure with a printf-style message.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a missing-row failure.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Aborted wraps a conflict that exhausted its retry budget.
func Aborted(message string, err error) *Error {
	return &Error{Kind: KindAborted, Message: message, Err: err}
}

// Internal wraps an unexpected store fault.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsInvalidArgument reports whether err is a validation failure.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// IsNotFound reports whether err is a missing-row failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsAborted reports whether err is a retryable conflict failure.
func IsAborted(err error) bool {
	return KindOf(err) == KindAborted
}

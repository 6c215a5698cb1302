package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure. Every kind is caller-visible and maps
// to a stable HTTP status and an actionable message.
type Kind string

const (
	KindValidationFailed  Kind = "validation_failed"
	KindNotAuthenticated  Kind = "not_authenticated"
	KindNotAuthorized     Kind = "not_authorized"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindEmptyCart         Kind = "empty_cart"
	KindInternal          Kind = "internal"
)

// Error carries a failure kind plus a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap annotates an underlying error with a kind and message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func ValidationFailed(message string) *Error {
	return New(KindValidationFailed, message)
}

func NotAuthenticated(message string) *Error {
	return New(KindNotAuthenticated, message)
}

func NotAuthorized(message string) *Error {
	return New(KindNotAuthorized, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func InvalidTransition(message string) *Error {
	return New(KindInvalidTransition, message)
}

func EmptyCart(message string) *Error {
	return New(KindEmptyCart, message)
}

func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf extracts the kind from an error chain. Unclassified errors are
// treated as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for an error chain.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

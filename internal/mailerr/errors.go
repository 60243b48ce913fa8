// Package mailerr defines the error taxonomy shared by the credential
// store, the Gmail adapter and both façades. Every failure surfaced to a
// caller carries exactly one Kind so the CLI and the MCP layer can decide
// uniformly whether an operation is worth retrying.
package mailerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	// Auth covers declined consent, missing or corrupt token material.
	// Fatal, never retried.
	Auth Kind = "auth"

	// NotFound means an unknown message, thread or label id. Not retried.
	NotFound Kind = "not_found"

	// PermissionDenied means the granted scopes are insufficient. Fatal.
	PermissionDenied Kind = "permission_denied"

	// RateLimited means the remote quota was hit. Recoverable by
	// caller-directed retry with backoff; never retried internally.
	RateLimited Kind = "rate_limited"

	// Transient covers network errors, timeouts and remote 5xx responses.
	// Idempotent operations get a single internal retry with backoff.
	Transient Kind = "transient"

	// Invalid means malformed caller input. Surfaced immediately.
	Invalid Kind = "invalid"

	// NotSupported means an unknown tool, command or resource scheme.
	NotSupported Kind = "not_supported"
)

// Error is a classified failure with the operation that produced it.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s (%s): %v", e.Op, e.Detail, e.Kind, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Detail, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s (%s)", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error with a human-readable detail string.
func New(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Newf is New with formatting.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the Kind from an error chain. Unclassified errors are
// treated as Transient so that unexpected transport failures stay
// recoverable rather than fatal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Transient
}

// IsRetryable reports whether an internal retry is permitted for this
// error. Only Transient failures qualify; RateLimited is left to the
// caller by design.
func IsRetryable(err error) bool {
	return KindOf(err) == Transient
}

// Package errors implements the error taxonomy: a closed set of kinds
// (InvalidInput, NotFound, Conflict, UnknownType, CapabilityUnavailable,
// IO, Internal), each attached to the HTTP-ish status code reserved for it
// (400/404/409/410/501). Sentinel vars plus *Error structs implementing
// Is(error) bool let callers use errors.Is against a shared command-surface
// taxonomy.
package errors

import (
	"errors"
	"fmt"
)

// Kind is one taxonomy entry.
type Kind string

const (
	KindInvalidInput          Kind = "invalid_input"
	KindNotFound              Kind = "not_found"
	KindConflict              Kind = "conflict"
	KindUnknownType           Kind = "unknown_type"
	KindCapabilityUnavailable Kind = "capability_unavailable"
	KindIO                    Kind = "io"
	KindInternal              Kind = "internal"
)

// Code returns the reserved status code for a Kind. IO and Internal carry no
// reserved code in §6; both map to 500, the conventional catch-all for
// "something the caller cannot recover from locally".
func (k Kind) Code() int {
	switch k {
	case KindInvalidInput:
		return 400
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindUnknownType:
		return 410
	case KindCapabilityUnavailable:
		return 501
	default:
		return 500
	}
}

// sentinelError is a comparable per-Kind marker for errors.Is matching.
type sentinelError struct{ kind Kind }

func (s *sentinelError) Error() string { return string(s.kind) }

// Sentinel errors for the taxonomy, one per Kind.
var (
	ErrInvalidInput          error = &sentinelError{KindInvalidInput}
	ErrNotFound              error = &sentinelError{KindNotFound}
	ErrConflict              error = &sentinelError{KindConflict}
	ErrUnknownType           error = &sentinelError{KindUnknownType}
	ErrCapabilityUnavailable error = &sentinelError{KindCapabilityUnavailable}
	ErrIO                    error = &sentinelError{KindIO}
	ErrInternal              error = &sentinelError{KindInternal}

	// ErrJobNotFound is a job-manager-specific sentinel: a job lookup is not
	// one of the command-surface errors, but internal/jobs still needs a
	// stable sentinel for "no such job ID".
	ErrJobNotFound = errors.New("job not found")
)

// Error is the envelope every command failure carries: code, message, and
// the Kind it classifies under.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Code returns the HTTP-ish status code for this error's Kind.
func (e *Error) Code() int { return e.Kind.Code() }

// Is reports whether target is the sentinel for this error's Kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*sentinelError)
	return ok && sentinel.kind == e.Kind
}

// New builds an *Error of the given Kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given Kind around an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Wrapped: cause}
}

// InvalidInput builds a 400 error: a malformed term, or a validator that
// rejected a query word for its context.
func InvalidInput(format string, args ...interface{}) *Error { return New(KindInvalidInput, format, args...) }

// NotFound builds a 404 error: an unknown context, or a missing document for
// Update.
func NotFound(format string, args ...interface{}) *Error { return New(KindNotFound, format, args...) }

// Conflict builds a 409 error: URI exists on Insert, missing on Update, context
// exists on InsertContext.
func Conflict(format string, args ...interface{}) *Error { return New(KindConflict, format, args...) }

// UnknownType builds a 410 error: a schema's context type name does not resolve
// against the live type registry.
func UnknownType(format string, args ...interface{}) *Error { return New(KindUnknownType, format, args...) }

// CapabilityUnavailable builds a 501 error for a recognized but currently
// unserviceable command.
func CapabilityUnavailable(format string, args ...interface{}) *Error {
	return New(KindCapabilityUnavailable, format, args...)
}

// IOError builds an IO-kind error wrapping a persistence failure. Named
// IOError (not IO) to avoid shadowing the io package at call sites.
func IOError(cause error, format string, args ...interface{}) *Error {
	return Wrap(KindIO, cause, format, args...)
}

// Internal builds an error for an invariant violation.
func Internal(format string, args ...interface{}) *Error { return New(KindInternal, format, args...) }

// JobNotFoundError represents a job lookup miss, with the job ID attached.
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError.
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// As is re-exported from the standard library for convenience at call
// sites that already import this package under the name "errors".
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is re-exported from the standard library for convenience.
func Is(err, target error) bool { return errors.Is(err, target) }

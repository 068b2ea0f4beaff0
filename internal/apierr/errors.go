package apierr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a core failure. Kinds are compared with
// errors.Is, never type-switched, so new kinds can be added without
// breaking existing callers.
type Kind string

const (
	// InvalidValue marks a point that is NaN, infinite, or negative.
	InvalidValue Kind = "invalid_value"

	// EmptyBatch marks an append call with a zero-length batch.
	EmptyBatch Kind = "empty_batch"

	// CapacityExceeded marks an append that would push n past the index's
	// fixed capacity C.
	CapacityExceeded Kind = "capacity_exceeded"

	// InsufficientData marks a query for k points when n < k.
	InsufficientData Kind = "insufficient_data"

	// UnknownSymbol marks a query against a symbol the registry has never
	// seen an append for.
	UnknownSymbol Kind = "unknown_symbol"

	// InvalidExponent marks a query exponent outside [1, 8].
	InvalidExponent Kind = "invalid_exponent"
)

// Error is the concrete error type returned by the core. It carries a Kind
// for status-code mapping plus a human-readable message; it never carries
// a wrapped cause because every failure here originates in validation, not
// in a lower-level I/O error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is the same Kind, so callers can write
// errors.Is(err, apierr.UnknownSymbol) directly against the Kind value.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// Error implements the error interface for Kind itself, so a bare Kind can
// be used both as an errors.Is target and, rarely, as a standalone error.
func (k Kind) Error() string { return string(k) }

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, returning ("", false) if err is nil or
// not one of ours.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

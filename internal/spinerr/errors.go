// Package spinerr defines the error taxonomy shared across spindb (spec.md
// §7), built the way pkg/commands/errors.go layers ComplexError over
// go-errors/errors: a pure-data kind tag that calling code can switch on,
// plus a stack trace for the top-level handler.
package spinerr

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind is one of the error taxonomy entries from spec.md §7.
type Kind string

const (
	NotFound         Kind = "NotFound"
	AlreadyExists    Kind = "AlreadyExists"
	InvalidInput     Kind = "InvalidInput"
	Unsupported      Kind = "Unsupported"
	PortInUse        Kind = "PortInUse"
	NotReady         Kind = "NotReady"
	NotRunning       Kind = "NotRunning"
	AlreadyRunning   Kind = "AlreadyRunning"
	BinaryMissing    Kind = "BinaryMissing"
	SpawnError       Kind = "SpawnError"
	NonZeroExit      Kind = "NonZeroExit"
	IOError          Kind = "IOError"
	NetworkError     Kind = "NetworkError"
	CorruptArtifact  Kind = "CorruptArtifact"
	Timeout          Kind = "Timeout"

	// Operation-specific kinds named in spec.md §4.D's per-operation error
	// columns; not part of the §7 canonical taxonomy table but required by
	// the adapter contract.
	ScriptError Kind = "ScriptError"
	QueryError  Kind = "QueryError"
	InvalidArgs Kind = "InvalidArgs"
	AlreadyInit Kind = "AlreadyInitialized"
	FormatError Kind = "FormatError"
)

// Error is a tagged error carrying a Kind so calling code never has to
// string-match, mirroring ComplexError's Code field but with the full
// taxonomy instead of a single sentinel.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a tagged error with a stack trace captured via go-errors, the
// same "wrap for the sake of showing a stack trace at the top level"
// rationale as WrapError.
func New(kind Kind, message string) error {
	return goerrors.Wrap(&Error{Kind: kind, Message: message}, 1)
}

// Wrap tags an underlying error with a Kind, preserving it as Cause.
func Wrap(kind Kind, message string, cause error) error {
	if cause == nil {
		return nil
	}
	return goerrors.Wrap(&Error{Kind: kind, Message: message, Cause: cause}, 1)
}

// Is reports whether err (or anything it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// KindOf extracts the Kind from an error, returning ok=false if it isn't a
// tagged spinerr.Error anywhere in the chain. go-errors/errors.Error holds
// the wrapped value in its Err field and returns it from Unwrap(), the
// same method stdlib wraps use.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if se, ok := err.(*Error); ok {
			return se.Kind, true
		}
		if gw, ok := err.(interface{ Err() error }); ok {
			err = gw.Err()
			continue
		}
		if uw, ok := err.(interface{ Unwrap() error }); ok {
			err = uw.Unwrap()
			continue
		}
		break
	}
	return "", false
}

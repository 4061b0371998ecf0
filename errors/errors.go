// Package errors provides error handling for castxml.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Wrap with context
//	if err := astdoc.LoadFile(path); err != nil {
//	    return errors.Wrapf(err, "failed to load %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run castxml detect to produce a target profile")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors shared across castxml packages.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrInvalidDocument indicates a malformed AST document
	ErrInvalidDocument = New("invalid AST document")

	// ErrUnknownReference indicates a document entry refers to an id that was never defined
	ErrUnknownReference = New("unknown reference")

	// ErrUnsupportedFormat indicates a schema or output format version castxml cannot handle
	ErrUnsupportedFormat = New("unsupported format")

	// ErrDetectFailed indicates the target compiler could not be inspected
	ErrDetectFailed = New("compiler detection failed")

	// ErrInvalidOption indicates a bad command line or configuration option
	ErrInvalidOption = New("invalid option")
)

// NewInvalidDocumentError creates an invalid-document error with a formatted message
func NewInvalidDocumentError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidDocument, Newf(format, args...).Error())
}

// NewInvalidOptionError creates an invalid-option error with a formatted message
func NewInvalidOptionError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidOption, Newf(format, args...).Error())
}

// IsInvalidDocumentError checks if an error is or wraps ErrInvalidDocument or ErrUnknownReference
func IsInvalidDocumentError(err error) bool {
	return err != nil && (Is(err, ErrInvalidDocument) || Is(err, ErrUnknownReference))
}

// Package errs defines sentinel errors shared across word-counter packages.
//
// Callers can test for specific failure conditions with errors.Is, including
// errors that were wrapped with additional context via fmt.Errorf and %w.
package errs

import "errors"

// Configuration and option validation errors.
var (
	// ErrInvalidWorkerCount indicates a worker count below 1.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrInvalidBlockSize indicates a non-positive scan block size.
	ErrInvalidBlockSize = errors.New("block size must be positive")

	// ErrEmptyField indicates an empty classification field name.
	ErrEmptyField = errors.New("field name must not be empty")

	// ErrInvalidReportFormat indicates an unsupported report format or limit.
	ErrInvalidReportFormat = errors.New("invalid report format")
)

// Input and codec errors.
var (
	// ErrNilReader indicates a nil reader passed to a scan entry point.
	ErrNilReader = errors.New("reader must not be nil")

	// ErrInvalidSize indicates a negative input size.
	ErrInvalidSize = errors.New("input size must not be negative")

	// ErrUnknownCompression indicates an unrecognized compression type or name.
	ErrUnknownCompression = errors.New("unknown compression type")
)

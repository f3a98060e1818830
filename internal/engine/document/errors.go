package document

import "errors"

// Errors returned by document operations.
var (
	// ErrOutOfRange indicates a position, offset, or line outside the
	// document. Inputs are rejected, never clamped.
	ErrOutOfRange = errors.New("position out of range")

	// ErrOverlappingEdits indicates a batch whose operations are not
	// sorted ascending or whose ranges overlap.
	ErrOverlappingEdits = errors.New("edit operations overlap or are out of order")

	// ErrInvalidPattern indicates an unparseable search pattern.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrReadOnly indicates a mutation on a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrClosed indicates a mutation on a closed document.
	ErrClosed = errors.New("document is closed")
)

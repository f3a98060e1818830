package piecetable

import "errors"

var (
	// ErrOutOfRange indicates an offset, length, or line number beyond
	// the document extent. Out-of-range input is never clamped.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvariant indicates the tree failed a structural self-check.
	// It signals a bug in this package, not caller misuse.
	ErrInvariant = errors.New("tree invariant violation")
)

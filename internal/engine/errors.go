package engine

import (
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/document"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/view"
)

// Errors returned by engine operations. Each is the component
// package's sentinel, so errors.Is matches wherever the error came
// from.
var (
	// ErrOutOfRange indicates a position, offset, or line outside the
	// document.
	ErrOutOfRange = document.ErrOutOfRange

	// ErrOverlappingEdits indicates a batch whose operations overlap.
	ErrOverlappingEdits = document.ErrOverlappingEdits

	// ErrInvalidPattern indicates an unparseable search pattern.
	ErrInvalidPattern = document.ErrInvalidPattern

	// ErrReadOnly indicates a mutation on a read-only engine.
	ErrReadOnly = document.ErrReadOnly

	// ErrClosed indicates a mutation on a closed engine.
	ErrClosed = document.ErrClosed

	// ErrLineOutOfRange indicates a model or view line beyond the
	// respective extent.
	ErrLineOutOfRange = view.ErrLineOutOfRange
)

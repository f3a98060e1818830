package buffer

import (
	"fmt"
	"sync/atomic"
)

// ByteOffset is a byte position in the buffer. It is the fundamental
// coordinate type; every other coordinate converts through it.
type ByteOffset = int64

// Point is a line/column position. Both fields are 0-indexed and the
// column counts bytes from the start of the line.
type Point struct {
	Line   uint32
	Column uint32
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// PointUTF16 is a line/column position whose column is measured in
// UTF-16 code units, the encoding the LSP protocol and most editor
// frontends speak.
type PointUTF16 struct {
	Line   uint32
	Column uint32
}

// String returns a human-readable representation of the point.
func (p PointUTF16) String() string {
	return fmt.Sprintf("(%d:%d utf16)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p PointUTF16) Compare(other PointUTF16) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// RevisionID uniquely identifies a buffer revision. Every mutation
// produces a fresh one.
type RevisionID uint64

// revisionCounter generates process-unique revision IDs.
var revisionCounter atomic.Uint64

// NewRevisionID returns the next revision ID. Thread-safe.
func NewRevisionID() RevisionID {
	return RevisionID(revisionCounter.Add(1))
}

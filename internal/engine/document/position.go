package document

import (
	"fmt"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/buffer"
)

// Position is a line/column location in a document. Both fields are
// 0-indexed; the column counts bytes from the start of the line.
type Position struct {
	Line   uint32
	Column uint32
}

// NewPosition creates a Position.
func NewPosition(line, column uint32) Position {
	return Position{Line: line, Column: column}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
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
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true for the document start position.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

func point(p Position) buffer.Point {
	return buffer.Point{Line: p.Line, Column: p.Column}
}

func fromPoint(pt buffer.Point) Position {
	return Position{Line: pt.Line, Column: pt.Column}
}

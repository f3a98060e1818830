package document

import "fmt"

// EditOperation is a single replacement expressed in positions: the
// text currently covered by Range is replaced with Text. An empty
// range inserts, empty text deletes.
//
// Within a batch, operations must be sorted ascending by range and may
// touch but not overlap. All ranges address the document as it was
// before the batch.
type EditOperation struct {
	Range Range
	Text  string

	// ForceMoveMarkers pushes decoration boundaries sitting exactly at
	// the insertion point past the inserted text, regardless of their
	// stickiness.
	ForceMoveMarkers bool
}

// NewEditOperation creates a replace operation.
func NewEditOperation(r Range, text string) EditOperation {
	return EditOperation{Range: r, Text: text}
}

// InsertAt creates an insertion at a position.
func InsertAt(p Position, text string) EditOperation {
	return EditOperation{Range: RangeAt(p), Text: text}
}

// DeleteRange creates a deletion of a range.
func DeleteRange(r Range) EditOperation {
	return EditOperation{Range: r}
}

// String returns a human-readable representation of the operation.
func (op EditOperation) String() string {
	switch {
	case op.Range.IsEmpty() && op.Text != "":
		return fmt.Sprintf("insert %q at %s", op.Text, op.Range.Start)
	case op.Text == "":
		return fmt.Sprintf("delete %s", op.Range)
	default:
		return fmt.Sprintf("replace %s with %q", op.Range, op.Text)
	}
}

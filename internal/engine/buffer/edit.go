package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{
		Range:   Range{Start: offset, End: offset},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end ByteOffset) Edit {
	return Edit{
		Range:   Range{Start: start, End: end},
		NewText: "",
	}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// IsReplace returns true if this replaces existing text with new text.
func (e Edit) IsReplace() bool {
	return !e.Range.IsEmpty() && e.NewText != ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// EditResult describes an applied edit.
type EditResult struct {
	OldRange Range  // The range that was replaced, in pre-edit offsets
	NewRange Range  // The range the new text occupies after the edit
	OldText  string // The text that was replaced
	Delta    int64  // Change in buffer length
}

// Change is one applied replacement recorded with both of its
// coordinate spaces: Range/OldText describe the document before the
// change, NewRange/NewText after it. Holding both sides makes a change
// exactly invertible, which undo depends on.
type Change struct {
	Range    Range  // Replaced range in the pre-change document
	NewRange Range  // Resulting range in the post-change document
	OldText  string // Text that was removed
	NewText  string // Text that was inserted
}

// Invert returns the change that undoes this one. Inverting twice
// yields the original change.
func (c Change) Invert() Change {
	return Change{
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
}

// ToEdit converts the change to an Edit that reapplies it.
func (c Change) ToEdit() Edit {
	return Edit{
		Range:   c.Range,
		NewText: c.NewText,
	}
}

// IsInsert returns true if the change only added text.
func (c Change) IsInsert() bool {
	return c.Range.IsEmpty() && c.NewText != ""
}

// IsDelete returns true if the change only removed text.
func (c Change) IsDelete() bool {
	return !c.Range.IsEmpty() && c.NewText == ""
}

// Delta returns the change in document length.
func (c Change) Delta() int64 {
	return int64(len(c.NewText)) - int64(len(c.OldText))
}

package history

import (
	"time"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/buffer"
)

// Element is one undoable unit: every change applied by a single edit
// batch, recorded with both coordinate spaces so the batch can be
// replayed in either direction without diffing.
//
// Changes are ordered ascending by pre-change offset. Because each
// Change carries its post-change range too, the forward edits are
// ascending in the pre-change document and the inverse edits ascending
// in the post-change document.
type Element struct {
	VersionBefore uint64          // document version before the batch
	Changes       []buffer.Change // batch changes, ascending by offset
	At            time.Time       // when the batch was applied

	// Flush marks a whole-document rewrite such as a line-ending
	// conversion. Flush elements never coalesce and callers re-anchor
	// markers by position instead of shifting them through the change.
	Flush bool
}

// ForwardEdits returns the edits that apply the batch, ascending by
// offset in the document the batch was applied to.
func (el *Element) ForwardEdits() []buffer.Edit {
	edits := make([]buffer.Edit, len(el.Changes))
	for i, c := range el.Changes {
		edits[i] = c.ToEdit()
	}
	return edits
}

// InverseEdits returns the edits that exactly revert the batch,
// ascending by offset in the document the batch produced.
func (el *Element) InverseEdits() []buffer.Edit {
	edits := make([]buffer.Edit, len(el.Changes))
	for i, c := range el.Changes {
		edits[i] = c.Invert().ToEdit()
	}
	return edits
}

// InvertedChanges returns the batch changes with both sides swapped,
// describing the revert as if it were a fresh batch.
func (el *Element) InvertedChanges() []buffer.Change {
	out := make([]buffer.Change, len(el.Changes))
	for i, c := range el.Changes {
		out[i] = c.Invert()
	}
	return out
}

// Delta returns the net length change of the batch in bytes.
func (el *Element) Delta() int64 {
	var d int64
	for _, c := range el.Changes {
		d += c.Delta()
	}
	return d
}

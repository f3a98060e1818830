package history

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultMaxEntries bounds the undo stack when no explicit limit is given.
const DefaultMaxEntries = 1000

// History manages the undo and redo stacks for a document. It only
// keeps the books; applying an element's edits is the document's job.
//
// Push records a fresh batch and clears the redo stack. PopUndo and
// PopRedo hand an element to the caller; after replaying it, the
// caller transfers it to the opposite stack with TransferToRedo or
// TransferToUndo, which leave the redo stack intact.
type History struct {
	mu sync.Mutex

	undoStack []*Element
	redoStack []*Element

	maxEntries     int
	coalesceWindow time.Duration

	// canCoalesce is false right after undo, redo, or Clear so a
	// typing run never merges across them.
	canCoalesce bool
}

// NewHistory creates a new history with the given undo depth limit.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// SetCoalesceWindow sets the time window within which consecutive
// single-rune typing inserts merge into one undo unit. Zero disables
// coalescing.
func (h *History) SetCoalesceWindow(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.coalesceWindow = d
}

// Push records a freshly applied batch and clears the redo stack.
func (h *History) Push(el *Element) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil

	if h.canCoalesce && h.coalesceWindow > 0 && len(h.undoStack) > 0 {
		top := h.undoStack[len(h.undoStack)-1]
		if coalesce(top, el, h.coalesceWindow) {
			return
		}
	}

	h.undoStack = append(h.undoStack, el)
	h.canCoalesce = true

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// coalesce merges el into top when el is a single-rune typing insert
// that continues exactly where top's insert ended, within the window.
// Line feeds always break a typing run.
func coalesce(top, el *Element, window time.Duration) bool {
	if top.Flush || el.Flush {
		return false
	}
	if len(top.Changes) != 1 || len(el.Changes) != 1 {
		return false
	}

	prev, next := &top.Changes[0], el.Changes[0]
	if !prev.IsInsert() || !next.IsInsert() {
		return false
	}
	if utf8.RuneCountInString(next.NewText) != 1 || strings.ContainsAny(next.NewText, "\r\n") {
		return false
	}
	if next.Range.Start != prev.NewRange.End {
		return false
	}
	if el.At.Sub(top.At) > window {
		return false
	}

	prev.NewText += next.NewText
	prev.NewRange.End += int64(len(next.NewText))
	top.At = el.At
	return true
}

// PopUndo removes and returns the most recent undo element.
func (h *History) PopUndo() (*Element, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil, false
	}

	el := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.canCoalesce = false
	return el, true
}

// PopRedo removes and returns the most recent redo element.
func (h *History) PopRedo() (*Element, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, false
	}

	el := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.canCoalesce = false
	return el, true
}

// TransferToRedo parks an undone element on the redo stack.
// Unlike Push, it leaves the rest of the redo stack alone.
func (h *History) TransferToRedo(el *Element) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redoStack = append(h.redoStack, el)
}

// TransferToUndo parks a redone element back on the undo stack.
func (h *History) TransferToUndo(el *Element) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = append(h.undoStack, el)
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo elements available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo elements available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns the next undo element without removing it.
func (h *History) PeekUndo() (*Element, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}

// PeekRedo returns the next redo element without removing it.
func (h *History) PeekRedo() (*Element, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, false
	}
	return h.redoStack[len(h.redoStack)-1], true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.canCoalesce = false
}

// SetMaxEntries changes the undo depth limit. If the current stack is
// larger, the oldest elements are dropped.
func (h *History) SetMaxEntries(limit int) {
	if limit <= 0 {
		limit = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = limit

	if len(h.undoStack) > limit {
		excess := len(h.undoStack) - limit
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the undo depth limit.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

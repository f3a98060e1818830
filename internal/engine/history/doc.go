// Package history provides undo/redo bookkeeping for the editor engine.
//
// Each undoable unit is an Element: the changes of one edit batch
// recorded with both their pre- and post-change coordinates. Undo never
// diffs or recomputes anything; it replays the stored inverse edits,
// which restore the prior document byte-for-byte. Redo replays the
// stored forward edits.
//
// # Stacks
//
// The History type keeps two stacks:
//
//	hist := history.NewHistory(1000) // Max 1000 undo elements
//
//	hist.Push(el)          // fresh batch; clears the redo stack
//	el, ok := hist.PopUndo()
//	// ... caller applies el.InverseEdits() ...
//	hist.TransferToRedo(el) // keeps the rest of the redo stack
//
// Pushing a fresh element clears the redo stack; the transfer methods
// used after undo/redo do not, so walking back and forth through
// history never loses it.
//
// # Typing Coalescing
//
// Consecutive single-rune inserts coalesce into one element when each
// lands where the previous one ended within a configurable time window.
// Undoing a burst of typing then removes the whole run. Undo, redo, and
// line feeds break a run.
//
// History performs no buffer mutations itself. The document owns the
// apply step and calls the pop/transfer pairs around it.
package history

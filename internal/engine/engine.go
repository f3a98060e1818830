package engine

import (
	"time"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/app"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/document"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/view"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line/column position in a document.
	Position = document.Position

	// Range is a pair of positions spanning document content.
	Range = document.Range

	// Selection is an anchor/active position pair.
	Selection = document.Selection

	// SelectionDirection tells which way a selection was made.
	SelectionDirection = document.SelectionDirection

	// EditOperation is one range replacement in an edit batch.
	EditOperation = document.EditOperation

	// Decoration is a tracked range annotation.
	Decoration = document.Decoration

	// Stickiness controls how decoration boundaries ride edits.
	Stickiness = document.Stickiness

	// EndOfLine is a line-ending style.
	EndOfLine = document.EndOfLine

	// Event describes one recorded document mutation.
	Event = document.Event

	// Change is one range replacement inside an Event.
	Change = document.Change

	// Summary aggregates change history.
	Summary = document.Summary

	// ChangeListener receives events synchronously after each mutation.
	ChangeListener = document.ChangeListener

	// Stats snapshots document and tree counters.
	Stats = document.Stats

	// Fold is a collapsed model line range.
	Fold = view.Fold

	// LineInfo describes one visible line for presentation.
	LineInfo = view.LineInfo

	// LineSpan is an inclusive dirty model line range.
	LineSpan = view.LineSpan
)

// Re-export constants.
const (
	EndOfLineLF   = document.EndOfLineLF
	EndOfLineCRLF = document.EndOfLineCRLF
	EndOfLineCR   = document.EndOfLineCR

	StickinessGrows = document.StickinessGrows
	StickinessFixed = document.StickinessFixed

	SelectionLTR = document.SelectionLTR
	SelectionRTL = document.SelectionRTL
)

// Engine ties a document to its view: edits flow through the document,
// change events keep the view's folds, dirty lines, and viewport
// reconciled, and both surfaces are exposed through one facade.
//
// All operations are safe for concurrent use.
type Engine struct {
	doc  *document.Document
	view *view.View
	log  *app.Logger

	// Configuration consumed by New.
	id               string
	eol              EndOfLine
	eolSet           bool
	undoLimit        int
	coalesceWindow   time.Duration
	logCapacity      int
	previewGraphemes int
	wrapColumn       int
	tabWidth         int
	viewportHeight   uint32
	readOnly         bool
	debugChecks      bool
	listener         ChangeListener
}

// New creates an Engine for the given document content. The uri only
// identifies the document; the engine never touches the file system.
func New(uri, content string, opts ...Option) *Engine {
	e := &Engine{
		log:            app.NullLogger,
		coalesceWindow: -1,
	}

	for _, opt := range opts {
		opt(e)
	}

	var docOpts []document.Option
	if e.id != "" {
		docOpts = append(docOpts, document.WithID(e.id))
	}
	if e.eolSet {
		docOpts = append(docOpts, document.WithEOL(e.eol))
	}
	if e.undoLimit > 0 {
		docOpts = append(docOpts, document.WithUndoLimit(e.undoLimit))
	}
	if e.coalesceWindow >= 0 {
		docOpts = append(docOpts, document.WithCoalesceWindow(e.coalesceWindow))
	}
	if e.logCapacity > 0 {
		docOpts = append(docOpts, document.WithChangeLogCapacity(e.logCapacity))
	}
	if e.readOnly {
		docOpts = append(docOpts, document.WithReadOnly())
	}
	if e.debugChecks {
		docOpts = append(docOpts, document.WithDebugChecks())
	}
	e.doc = document.Open(uri, content, docOpts...)

	var viewOpts []view.Option
	if e.previewGraphemes > 0 {
		viewOpts = append(viewOpts, view.WithPreviewGraphemes(e.previewGraphemes))
	}
	if e.wrapColumn > 0 {
		viewOpts = append(viewOpts, view.WithWrapColumn(e.wrapColumn))
	}
	if e.tabWidth > 0 {
		viewOpts = append(viewOpts, view.WithTabWidth(e.tabWidth))
	}
	if e.viewportHeight > 0 {
		viewOpts = append(viewOpts, view.WithViewportHeight(e.viewportHeight))
	}
	e.view = view.NewView(e.doc, viewOpts...)

	e.doc.SetChangeListener(e.relayListener(e.listener))
	e.listener = nil

	e.log.Debug("engine opened %s: %d bytes, %d lines", uri, e.doc.Len(), e.doc.LineCount())
	return e
}

// relayListener feeds every change event to the view before the
// caller's listener sees it.
func (e *Engine) relayListener(fn ChangeListener) ChangeListener {
	return func(ev Event) {
		e.view.HandleChange(ev)
		if fn != nil {
			fn(ev)
		}
	}
}

// Document returns the underlying document for direct access.
func (e *Engine) Document() *document.Document { return e.doc }

// View returns the underlying view for direct access.
func (e *Engine) View() *view.View { return e.view }

// ============================================================================
// Identity
// ============================================================================

// ID returns the document id.
func (e *Engine) ID() string { return e.doc.ID() }

// URI returns the document uri.
func (e *Engine) URI() string { return e.doc.URI() }

// Version returns the current document version.
func (e *Engine) Version() uint64 { return e.doc.Version() }

// EOL returns the document's line-ending style.
func (e *Engine) EOL() EndOfLine { return e.doc.EOL() }

// ReadOnly reports whether mutations are rejected.
func (e *Engine) ReadOnly() bool { return e.doc.ReadOnly() }

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full document content.
func (e *Engine) Text() string { return e.doc.Text() }

// Len returns the document length in bytes.
func (e *Engine) Len() int64 { return e.doc.Len() }

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 { return e.doc.LineCount() }

// IsEmpty reports whether the document has no content.
func (e *Engine) IsEmpty() bool { return e.doc.IsEmpty() }

// TextRange returns the content of r.
func (e *Engine) TextRange(r Range) (string, error) { return e.doc.TextRange(r) }

// LineContent returns a line's text without its terminator.
func (e *Engine) LineContent(line uint32) (string, error) { return e.doc.LineContent(line) }

// LineLength returns a line's length in bytes, excluding its terminator.
func (e *Engine) LineLength(line uint32) (uint32, error) { return e.doc.LineLength(line) }

// OffsetAt resolves a position to its byte offset.
func (e *Engine) OffsetAt(p Position) (int64, error) { return e.doc.OffsetAt(p) }

// PositionAt resolves a byte offset to its position.
func (e *Engine) PositionAt(offset int64) (Position, error) { return e.doc.PositionAt(offset) }

// ============================================================================
// Write Operations
// ============================================================================

// ApplyEdits applies a batch of edit operations atomically and returns
// the new document version.
func (e *Engine) ApplyEdits(ops []EditOperation) (uint64, error) {
	version, err := e.doc.ApplyEdits(ops)
	if err != nil {
		return version, err
	}
	e.log.Debug("applied %d edits, version %d", len(ops), version)
	return version, nil
}

// Insert inserts text at a position.
func (e *Engine) Insert(p Position, text string) (uint64, error) {
	return e.ApplyEdits([]EditOperation{document.InsertAt(p, text)})
}

// Delete removes the content of r.
func (e *Engine) Delete(r Range) (uint64, error) {
	return e.ApplyEdits([]EditOperation{document.DeleteRange(r)})
}

// Replace replaces the content of r with text.
func (e *Engine) Replace(r Range, text string) (uint64, error) {
	return e.ApplyEdits([]EditOperation{document.NewEditOperation(r, text)})
}

// SetEOL converts every line ending to the given style as a single
// undoable edit.
func (e *Engine) SetEOL(eol EndOfLine) (uint64, error) {
	version, err := e.doc.SetEOL(eol)
	if err != nil {
		return version, err
	}
	e.log.Debug("line endings set to %s, version %d", eol, version)
	return version, nil
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the most recent undo element. It reports the resulting
// version and whether anything was undone.
func (e *Engine) Undo() (uint64, bool) {
	version, ok := e.doc.Undo()
	if ok {
		e.log.Debug("undo to version %d", version)
	}
	return version, ok
}

// Redo re-applies the most recently undone element.
func (e *Engine) Redo() (uint64, bool) {
	version, ok := e.doc.Redo()
	if ok {
		e.log.Debug("redo to version %d", version)
	}
	return version, ok
}

// CanUndo reports whether an undo element is available.
func (e *Engine) CanUndo() bool { return e.doc.CanUndo() }

// CanRedo reports whether a redo element is available.
func (e *Engine) CanRedo() bool { return e.doc.CanRedo() }

// UndoDepth returns the number of undoable elements.
func (e *Engine) UndoDepth() int { return e.doc.UndoDepth() }

// RedoDepth returns the number of redoable elements.
func (e *Engine) RedoDepth() int { return e.doc.RedoDepth() }

// ============================================================================
// Search
// ============================================================================

// FindMatches returns every match of pattern in the document.
func (e *Engine) FindMatches(pattern string, isRegex, matchCase bool) ([]Range, error) {
	return e.doc.FindMatches(pattern, isRegex, matchCase)
}

// FindNextMatch returns the first match strictly after a position,
// wrapping around to the document start.
func (e *Engine) FindNextMatch(pattern string, after Position, isRegex, matchCase bool) (Range, bool, error) {
	return e.doc.FindNextMatch(pattern, after, isRegex, matchCase)
}

// ============================================================================
// Decorations
// ============================================================================

// DeltaDecorations removes and adds decorations in one step, returning
// the ids of the added decorations in input order.
func (e *Engine) DeltaDecorations(removeIDs []string, add []Decoration) []string {
	return e.doc.DeltaDecorations(removeIDs, add)
}

// Decorations returns all decorations ordered by range.
func (e *Engine) Decorations() []Decoration { return e.doc.Decorations() }

// DecorationsInRange returns the decorations overlapping r.
func (e *Engine) DecorationsInRange(r Range) ([]Decoration, error) {
	return e.doc.DecorationsInRange(r)
}

// DecorationRange returns a decoration's current range.
func (e *Engine) DecorationRange(id string) (Range, bool) { return e.doc.DecorationRange(id) }

// DecorationCount returns the number of decorations.
func (e *Engine) DecorationCount() int { return e.doc.DecorationCount() }

// ============================================================================
// Change Tracking
// ============================================================================

// SetChangeListener installs fn to observe mutations. The view always
// observes them first. A nil fn removes the previous listener.
func (e *Engine) SetChangeListener(fn ChangeListener) {
	e.doc.SetChangeListener(e.relayListener(fn))
}

// ChangesSince returns the recorded events after the given version.
func (e *Engine) ChangesSince(version uint64) []Event { return e.doc.ChangesSince(version) }

// ChangeSummary aggregates the recorded events after the given version.
func (e *Engine) ChangeSummary(since uint64) Summary { return e.doc.ChangeSummary(since) }

// ============================================================================
// Folding and Viewport
// ============================================================================

// FoldRange collapses model lines start+1 through end behind the
// header line start.
func (e *Engine) FoldRange(start, end uint32) bool { return e.view.FoldRange(start, end) }

// UnfoldRange removes the exact fold [start, end].
func (e *Engine) UnfoldRange(start, end uint32) bool { return e.view.UnfoldRange(start, end) }

// UnfoldAll removes every fold.
func (e *Engine) UnfoldAll() { e.view.UnfoldAll() }

// Folds returns the folds ordered by position.
func (e *Engine) Folds() []Fold { return e.view.Folds() }

// ViewLineCount returns the number of visible lines.
func (e *Engine) ViewLineCount() uint32 { return e.view.ViewLineCount() }

// ModelToView maps a model line to its view line.
func (e *Engine) ModelToView(line uint32) (uint32, error) { return e.view.ModelToView(line) }

// ViewToModel maps a view line back to the model line it shows.
func (e *Engine) ViewToModel(line uint32) (uint32, error) { return e.view.ViewToModel(line) }

// ModelToViewPosition maps a model position to view space.
func (e *Engine) ModelToViewPosition(p Position) (Position, error) {
	return e.view.ModelToViewPosition(p)
}

// ViewToModelPosition maps a view position back to model space.
func (e *Engine) ViewToModelPosition(p Position) (Position, error) {
	return e.view.ViewToModelPosition(p)
}

// SetViewport positions the visible window in view-line space.
func (e *Engine) SetViewport(top, height uint32) { e.view.SetViewport(top, height) }

// Viewport returns the current top view line and height.
func (e *Engine) Viewport() (top, height uint32) { return e.view.Viewport() }

// LinesInViewport resolves the view lines intersecting the viewport.
func (e *Engine) LinesInViewport() ([]LineInfo, error) { return e.view.LinesInViewport() }

// DirtySpans returns the model line spans awaiting redraw.
func (e *Engine) DirtySpans() []LineSpan { return e.view.DirtySpans() }

// HasDirty reports whether anything awaits redraw.
func (e *Engine) HasDirty() bool { return e.view.HasDirty() }

// ClearDirty resets dirty tracking after a redraw.
func (e *Engine) ClearDirty() { e.view.ClearDirty() }

// ============================================================================
// Diagnostics
// ============================================================================

// Stats snapshots document and tree counters.
func (e *Engine) Stats() Stats { return e.doc.Stats() }

// CheckInvariants verifies the storage tree, byte and line aggregates,
// and line-count consistency.
func (e *Engine) CheckInvariants() error { return e.doc.CheckInvariants() }

// Close releases history, change log, and decorations. Reads keep
// working; mutations fail afterwards.
func (e *Engine) Close() {
	e.doc.Close()
	e.log.Debug("engine closed %s", e.doc.URI())
}

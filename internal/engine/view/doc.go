// Package view projects a document onto a foldable, scrollable
// presentation surface.
//
// # Folding
//
// A Fold collapses the lines after its header: FoldRange(start, end)
// hides model lines start+1 through end while the header line start
// stays visible. Folds either nest strictly or are disjoint; a fold
// that partially overlaps an existing one is rejected. Only top-level
// folds hide lines, so nested folds cost nothing until their ancestor
// unfolds.
//
// # Coordinates
//
// Model lines are document lines; view lines are the contiguous
// numbering of what remains visible. ModelToView and ViewToModel
// convert between the two, with lines hidden inside a fold collapsing
// to their header. Columns pass through unchanged.
//
// # Viewport
//
// SetViewport positions a window in view-line space and
// LinesInViewport resolves it to LineInfo records: model line, fold
// and wrap flags, dirty state, and a preview capped to a grapheme
// limit. Wrap detection measures terminal cells with tab expansion.
//
// # Dirty Tracking
//
// The view accumulates dirty model-line spans between redraws.
// HandleChange feeds it from document change events: an edit that
// keeps the line count dirties only the touched lines, while one that
// inserts or removes lines dirties everything below. A shrinking
// document also drops folds stranded past its end.
//
// # Concurrency
//
// All View methods are safe for concurrent use. The view never writes
// to the model.
package view

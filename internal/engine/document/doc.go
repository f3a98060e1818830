// Package document implements the versioned document model: a text
// buffer coupled with identity, undo/redo, decorations, search, and a
// change log.
//
// # Versioning
//
// A document opens at version 1. Every content mutation — an edit
// batch, an undo, a redo, a line-ending conversion — bumps the version
// by exactly one. Versions never rewind: undoing an edit produces a new
// version whose content equals an old one. Each version's changes are
// recorded in a bounded log so collaborators can catch up with
// ChangesSince instead of re-reading the content.
//
// # Edits
//
// ApplyEdits applies a whole batch atomically under one version bump.
// Operations are resolved against the pre-edit document, sorted, and
// rejected if they overlap (touching ranges are fine). Each batch
// pushes one undo element carrying the exact inverse of every
// operation, so undo restores the prior content byte for byte without
// diffing.
//
// # Decorations
//
// Decorations are tracked ranges that follow edits. Text inserted at a
// boundary is absorbed or excluded per the decoration's stickiness;
// deleting around a boundary clamps it to the start of the removed
// span. DeltaDecorations removes and adds decorations in one atomic
// step, mirroring how editor views reconcile their markers.
//
// # Coordinates
//
// The public API speaks Position{Line, Column}: 0-based lines and
// 0-based byte columns. Out-of-range coordinates are rejected with
// ErrOutOfRange, never clamped; the lenient variants used internally by
// decoration re-anchoring are not exposed.
//
// # Concurrency
//
// One mutex serializes all mutations. Reads resolve against immutable
// buffer snapshots, so a search or range extraction sees a single
// consistent document state end to end even while writers proceed.
package document

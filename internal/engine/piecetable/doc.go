// Package piecetable provides a piece-table text store backed by a
// red-black tree with order-statistics aggregates.
//
// The document is the in-order concatenation of pieces, where each piece
// references a span of an immutable buffer: buffer 0 holds the original
// content and every insertion appends its text as a fresh buffer. Editing
// never copies or mutates stored bytes; it only splits, trims, and
// relinks pieces.
//
// Each tree node carries two subtree aggregates, the byte count and the
// line-feed count of its subtree. They make offset and line lookups
// O(log p) in the number of pieces rather than O(n) in document size,
// and give an O(1) line count. The aggregates are recomputed on every
// structural change, including both nodes of every rotation.
//
// Nodes live in a flat growable arena addressed by int32 indices; index 0
// is the shared black sentinel standing in for nil links.
//
// Basic usage:
//
//	t := piecetable.NewFromString("hello world")
//	_ = t.Insert(5, " there")      // "hello there world"
//	_ = t.Delete(0, 6)             // "there world"
//	text := t.Text()
//
// A Tree is not safe for concurrent use; callers own the locking. Clone
// produces an independent tree sharing the immutable buffers, which is
// how snapshots are taken.
package piecetable

// Package buffer provides a thread-safe text buffer built on top of the
// piece table. It serves as the primary interface for text manipulation
// in the editor engine.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Piece-table storage: edits splice pieces, never move text
//   - Coordinate conversion between byte offsets and line/column positions
//   - UTF-16 coordinate support for LSP compatibility
//   - Read-only snapshots that stay consistent across concurrent edits
//   - Atomic edit batches with a reverse-order contract
//   - Optional line ending normalization
//   - Revision tracking for change management
//
// Basic usage:
//
//	// Create a buffer with some text
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	// Insert text
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//
//	// Delete text
//	buf.Delete(0, 7)  // "Beautiful World!"
//
//	// Get a snapshot for concurrent reading
//	snap := buf.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // Process text...
//	}()
//
// Position Types:
//
// The package provides several position types to handle different
// coordinate systems:
//
//   - ByteOffset: Raw byte position in the buffer
//   - Point: Line and column position (0-indexed, column in bytes)
//   - PointUTF16: Line and column position with UTF-16 code unit column
//     (for LSP compatibility)
//
// Out-of-range coordinates are rejected with an error, never clamped.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read
// lock, write operations an exclusive write lock. For scenarios
// requiring multiple reads without intervening writes, use Snapshot()
// to obtain a consistent read-only view: the snapshot clones the piece
// tree in O(pieces) and shares the immutable byte buffers.
package buffer

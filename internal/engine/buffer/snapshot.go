package buffer

import "github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/piecetable"

// Snapshot is an immutable view of buffer state at a point in time.
// It holds a private clone of the piece tree, so reads need no locks
// and long-running consumers (search, rendering, diffing) see a stable
// document regardless of concurrent edits. The clone shares the
// underlying byte buffers with the live buffer; those are append-only
// and never rewritten.
type Snapshot struct {
	tree       *piecetable.Tree
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// Text returns the full content of the snapshot.
func (s *Snapshot) Text() string {
	return s.tree.Text()
}

// TextRange returns the bytes in [start, end).
func (s *Snapshot) TextRange(start, end ByteOffset) (string, error) {
	return s.tree.TextRange(start, end)
}

// Len returns the total byte length.
func (s *Snapshot) Len() ByteOffset {
	return s.tree.Len()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 {
	return s.tree.LineCount()
}

// LineText returns the text of a line without its line feed.
func (s *Snapshot) LineText(line uint32) (string, error) {
	if line >= s.tree.LineCount() {
		return "", ErrLineOutOfRange
	}
	return s.tree.LineText(line)
}

// LineLen returns the length of a line in bytes, excluding the line feed.
func (s *Snapshot) LineLen(line uint32) (int, error) {
	start, end, err := treeLineSpan(s.tree, line)
	if err != nil {
		return 0, err
	}
	return int(end - start), nil
}

// LineStartOffset returns the byte offset of the start of a line.
func (s *Snapshot) LineStartOffset(line uint32) (ByteOffset, error) {
	if line >= s.tree.LineCount() {
		return 0, ErrLineOutOfRange
	}
	return s.tree.LineStartOffset(line)
}

// LineEndOffset returns the byte offset of the end of a line, before
// its line feed.
func (s *Snapshot) LineEndOffset(line uint32) (ByteOffset, error) {
	_, end, err := treeLineSpan(s.tree, line)
	return end, err
}

// OffsetToPoint converts a byte offset to line/column.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) (Point, error) {
	return treeOffsetToPoint(s.tree, offset)
}

// PointToOffset converts line/column to a byte offset.
func (s *Snapshot) PointToOffset(point Point) (ByteOffset, error) {
	return treePointToOffset(s.tree, point)
}

// OffsetToPointUTF16 converts a byte offset to UTF-16 line/column.
func (s *Snapshot) OffsetToPointUTF16(offset ByteOffset) (PointUTF16, error) {
	return treeOffsetToPointUTF16(s.tree, offset)
}

// PointUTF16ToOffset converts UTF-16 line/column to a byte offset.
func (s *Snapshot) PointUTF16ToOffset(point PointUTF16) (ByteOffset, error) {
	return treePointUTF16ToOffset(s.tree, point)
}

// RevisionID returns the revision the snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// IsEmpty returns true if the snapshot holds no text.
func (s *Snapshot) IsEmpty() bool {
	return s.tree.Len() == 0
}

// LineEnding returns the line ending style at snapshot time.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// TabWidth returns the tab width at snapshot time.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}

// Stats reports the snapshot tree's shape.
func (s *Snapshot) Stats() piecetable.Stats {
	return s.tree.Stats()
}

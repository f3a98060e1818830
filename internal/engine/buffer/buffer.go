package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/piecetable"
)

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates a byte offset beyond the buffer extent.
	// Out-of-range offsets are rejected, never clamped.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrLineOutOfRange indicates a line number beyond the last line.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrRangeInvalid indicates a malformed range (end before start or
	// extending past the buffer).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrEditsOverlap indicates an edit batch that is not in reverse
	// offset order or contains overlapping ranges.
	ErrEditsOverlap = errors.New("edits overlap or are not in reverse order")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ParseLineEnding parses a line-ending name ("lf", "crlf", "cr").
func ParseLineEnding(s string) (LineEnding, bool) {
	switch strings.ToLower(s) {
	case "lf", "\n":
		return LineEndingLF, true
	case "crlf", "\r\n":
		return LineEndingCRLF, true
	case "cr", "\r":
		return LineEndingCR, true
	default:
		return LineEndingLF, false
	}
}

// Buffer wraps a piece table with editor functionality: coordinate
// conversion, batched edits, snapshots, and optional line-ending
// normalization. It is the primary interface for text manipulation.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	tree       *piecetable.Tree
	revisionID RevisionID
	lineEnding LineEnding
	normalize  bool
	tabWidth   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		tree:       piecetable.New(),
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content. The content
// is stored byte-for-byte as provided unless normalization was enabled
// with WithNormalizedLineEndings.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	if b.normalize {
		s = NormalizeLineEndings(s, b.lineEnding)
	}
	b.tree = piecetable.NewFromString(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first so CRLF sequences split across read
	// boundaries normalize correctly.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// NormalizeLineEndings rewrites every line ending in s to the given
// style. Lone "\r" and "\r\n" are both treated as line breaks.
func NormalizeLineEndings(s string, le LineEnding) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if seq := le.Sequence(); seq != "\n" {
		s = strings.ReplaceAll(s, "\n", seq)
	}
	return s
}

// Read Operations

// Text returns the full buffer content as a string.
// For large buffers, prefer TextRange or a Snapshot.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Text()
}

// TextRange returns the bytes in [start, end).
func (b *Buffer) TextRange(start, end ByteOffset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if start < 0 || end < start || end > b.tree.Len() {
		return "", fmt.Errorf("%w: [%d,%d) of %d bytes", ErrRangeInvalid, start, end, b.tree.Len())
	}
	return b.tree.TextRange(start, end)
}

// Len returns the total byte length of the buffer. O(1).
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Len()
}

// LineCount returns the number of lines. O(1).
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.LineCount()
}

// LineText returns the text of a line without its line feed.
func (b *Buffer) LineText(line uint32) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line >= b.tree.LineCount() {
		return "", fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, line, b.tree.LineCount())
	}
	return b.tree.LineText(line)
}

// LineLen returns the length of a line in bytes, excluding the line feed.
func (b *Buffer) LineLen(line uint32) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end, err := treeLineSpan(b.tree, line)
	if err != nil {
		return 0, err
	}
	return int(end - start), nil
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line >= b.tree.LineCount() {
		return 0, fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, line, b.tree.LineCount())
	}
	return b.tree.LineStartOffset(line)
}

// LineEndOffset returns the byte offset of the end of a line, directly
// before its line feed (or the buffer end for the final line).
func (b *Buffer) LineEndOffset(line uint32) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, end, err := treeLineSpan(b.tree, line)
	return end, err
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column. offset == Len()
// is valid and maps to the end of the last line.
func (b *Buffer) OffsetToPoint(offset ByteOffset) (Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return treeOffsetToPoint(b.tree, offset)
}

// PointToOffset converts line/column to a byte offset. A column one past
// the last byte of the line is valid; anything further is out of range.
func (b *Buffer) PointToOffset(point Point) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return treePointToOffset(b.tree, point)
}

// OffsetToPointUTF16 converts a byte offset to UTF-16 line/column.
func (b *Buffer) OffsetToPointUTF16(offset ByteOffset) (PointUTF16, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return treeOffsetToPointUTF16(b.tree, offset)
}

// PointUTF16ToOffset converts UTF-16 line/column to a byte offset.
func (b *Buffer) PointUTF16ToOffset(point PointUTF16) (ByteOffset, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return treePointUTF16ToOffset(b.tree, point)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.tree.Len() {
		return 0, fmt.Errorf("%w: insert at %d of %d bytes", ErrOffsetOutOfRange, offset, b.tree.Len())
	}

	if b.normalize {
		text = NormalizeLineEndings(text, b.lineEnding)
	}
	if err := b.tree.Insert(offset, text); err != nil {
		return 0, err
	}
	b.revisionID = NewRevisionID()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > b.tree.Len() {
		return fmt.Errorf("%w: [%d,%d) of %d bytes", ErrRangeInvalid, start, end, b.tree.Len())
	}

	if err := b.tree.Delete(start, end-start); err != nil {
		return err
	}
	b.revisionID = NewRevisionID()

	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > b.tree.Len() {
		return 0, fmt.Errorf("%w: [%d,%d) of %d bytes", ErrRangeInvalid, start, end, b.tree.Len())
	}

	res, err := b.applyEditLocked(Edit{Range: Range{Start: start, End: end}, NewText: text})
	if err != nil {
		return 0, err
	}
	b.revisionID = NewRevisionID()

	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
		edit.Range.End > b.tree.Len() {
		return EditResult{}, fmt.Errorf("%w: %s of %d bytes", ErrRangeInvalid, edit.Range, b.tree.Len())
	}

	res, err := b.applyEditLocked(edit)
	if err != nil {
		return EditResult{}, err
	}
	b.revisionID = NewRevisionID()

	return res, nil
}

// ApplyEdits applies multiple edits as one atomic batch under a single
// write lock; readers never observe a partially applied batch. Edits
// must be in reverse order (highest offset first) so earlier offsets
// stay valid while later ones are rewritten; ranges may touch but not
// overlap. Results are returned in input order.
func (b *Buffer) ApplyEdits(edits []Edit) ([]EditResult, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Validate edits are in reverse order and non-overlapping.
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return nil, ErrEditsOverlap
		}
	}

	// Validate all ranges against the current extent.
	total := b.tree.Len()
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
			edit.Range.End > total {
			return nil, fmt.Errorf("%w: %s of %d bytes", ErrRangeInvalid, edit.Range, total)
		}
	}

	results := make([]EditResult, len(edits))
	for i, edit := range edits {
		res, err := b.applyEditLocked(edit)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	b.revisionID = NewRevisionID()

	return results, nil
}

// applyEditLocked replaces edit.Range with edit.NewText. The caller
// holds the write lock and has validated the range.
func (b *Buffer) applyEditLocked(edit Edit) (EditResult, error) {
	oldText, err := b.tree.TextRange(edit.Range.Start, edit.Range.End)
	if err != nil {
		return EditResult{}, err
	}

	text := edit.NewText
	if b.normalize {
		text = NormalizeLineEndings(text, b.lineEnding)
	}

	if edit.Range.Len() > 0 {
		if err := b.tree.Delete(edit.Range.Start, edit.Range.Len()); err != nil {
			return EditResult{}, err
		}
	}
	if len(text) > 0 {
		if err := b.tree.Insert(edit.Range.Start, text); err != nil {
			return EditResult{}, err
		}
	}

	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: edit.Range.Start + ByteOffset(len(text))},
		OldText:  oldText,
		Delta:    int64(len(text)) - int64(edit.Range.Len()),
	}, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Len() == 0
}

// LineEnding returns the buffer's preferred line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the preferred line ending style. Existing content
// is not rewritten; the style only affects normalization of new text.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}

// Snapshot returns a read-only view of the current buffer state. The
// piece tree is cloned (sharing the immutable byte buffers), so the
// snapshot stays consistent for its whole lifetime no matter how the
// buffer is edited afterwards.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		tree:       b.tree.Clone(),
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}

// CheckInvariants validates the underlying piece tree. It exists for
// debug builds and tests; a failure means the tree corrupted itself.
func (b *Buffer) CheckInvariants() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Check()
}

// Stats reports the underlying piece-tree shape.
func (b *Buffer) Stats() piecetable.Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Stats()
}

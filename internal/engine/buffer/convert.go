package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/piecetable"
)

// Conversion helpers shared by Buffer and Snapshot. They operate
// directly on a piece tree; Buffer calls them under its lock, Snapshot
// calls them lock-free because its tree never changes.

// treeLineSpan returns the [start, end) byte span of a line, excluding
// its line feed. The final line ends at the document end.
func treeLineSpan(t *piecetable.Tree, line uint32) (ByteOffset, ByteOffset, error) {
	if line >= t.LineCount() {
		return 0, 0, fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, line, t.LineCount())
	}

	start, err := t.LineStartOffset(line)
	if err != nil {
		return 0, 0, err
	}

	end := t.Len()
	if line+1 < t.LineCount() {
		next, err := t.LineStartOffset(line + 1)
		if err != nil {
			return 0, 0, err
		}
		end = next - 1
	}
	return start, end, nil
}

func treeOffsetToPoint(t *piecetable.Tree, offset ByteOffset) (Point, error) {
	line, col, err := t.PositionForOffset(offset)
	if err != nil {
		return Point{}, fmt.Errorf("%w: offset %d of %d bytes", ErrOffsetOutOfRange, offset, t.Len())
	}
	return Point{Line: line, Column: uint32(col)}, nil
}

func treePointToOffset(t *piecetable.Tree, p Point) (ByteOffset, error) {
	start, end, err := treeLineSpan(t, p.Line)
	if err != nil {
		return 0, err
	}

	offset := start + ByteOffset(p.Column)
	if offset > end {
		return 0, fmt.Errorf("%w: column %d past end of line %d", ErrOffsetOutOfRange, p.Column, p.Line)
	}
	return offset, nil
}

func treeOffsetToPointUTF16(t *piecetable.Tree, offset ByteOffset) (PointUTF16, error) {
	p, err := treeOffsetToPoint(t, offset)
	if err != nil {
		return PointUTF16{}, err
	}

	lineStart := offset - ByteOffset(p.Column)
	prefix, err := t.TextRange(lineStart, offset)
	if err != nil {
		return PointUTF16{}, err
	}
	return PointUTF16{Line: p.Line, Column: utf16Len(prefix)}, nil
}

func treePointUTF16ToOffset(t *piecetable.Tree, p PointUTF16) (ByteOffset, error) {
	start, end, err := treeLineSpan(t, p.Line)
	if err != nil {
		return 0, err
	}

	lineText, err := t.TextRange(start, end)
	if err != nil {
		return 0, err
	}

	byteCol, ok := byteColumnForUTF16(lineText, p.Column)
	if !ok {
		return 0, fmt.Errorf("%w: utf16 column %d past end of line %d", ErrOffsetOutOfRange, p.Column, p.Line)
	}
	return start + ByteOffset(byteCol), nil
}

// utf16Len counts UTF-16 code units in s. Invalid UTF-8 bytes decode
// as U+FFFD and count as one unit each.
func utf16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		if utf8.RuneLen(r) == 4 { // runes outside the BMP need a surrogate pair
			n += 2
		} else {
			n++
		}
	}
	return n
}

// byteColumnForUTF16 finds the byte index in lineText for a UTF-16
// column. A column landing inside a surrogate pair snaps forward to
// the next rune boundary. Returns false when the column lies past the
// end of the line.
func byteColumnForUTF16(lineText string, col uint32) (int, bool) {
	var units uint32
	i := 0
	for i < len(lineText) && units < col {
		r, size := utf8.DecodeRuneInString(lineText[i:])
		if utf8.RuneLen(r) == 4 { // runes outside the BMP need a surrogate pair
			units += 2
		} else {
			units++
		}
		i += size
	}
	if units < col {
		return 0, false
	}
	return i, true
}

package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}

	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromString(t *testing.T) {
	text := "Hello, World!"
	b := NewBufferFromString(text)

	if b.Text() != text {
		t.Errorf("expected %q, got %q", text, b.Text())
	}

	if b.Len() != int64(len(text)) {
		t.Errorf("expected length %d, got %d", len(text), b.Len())
	}
}

func TestNewBufferFromReader(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("line1\nline2"))
	if err != nil {
		t.Fatalf("reader failed: %v", err)
	}

	if b.Text() != "line1\nline2" {
		t.Errorf("unexpected content %q", b.Text())
	}

	if b.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", b.LineCount())
	}
}

func TestBufferLines(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}

	for i, want := range []string{"line1", "line2", "line3"} {
		got, err := b.LineText(uint32(i))
		if err != nil {
			t.Fatalf("LineText(%d) failed: %v", i, err)
		}
		if got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}

	if _, err := b.LineText(3); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestBufferLineOffsets(t *testing.T) {
	b := NewBufferFromString("ab\ncdef\n\ngh")

	tests := []struct {
		line       uint32
		start, end ByteOffset
	}{
		{0, 0, 2},
		{1, 3, 7},
		{2, 8, 8},
		{3, 9, 11},
	}

	for _, tt := range tests {
		start, err := b.LineStartOffset(tt.line)
		if err != nil {
			t.Fatalf("LineStartOffset(%d) failed: %v", tt.line, err)
		}
		if start != tt.start {
			t.Errorf("line %d start: expected %d, got %d", tt.line, tt.start, start)
		}

		end, err := b.LineEndOffset(tt.line)
		if err != nil {
			t.Fatalf("LineEndOffset(%d) failed: %v", tt.line, err)
		}
		if end != tt.end {
			t.Errorf("line %d end: expected %d, got %d", tt.line, tt.end, end)
		}

		length, err := b.LineLen(tt.line)
		if err != nil {
			t.Fatalf("LineLen(%d) failed: %v", tt.line, err)
		}
		if ByteOffset(length) != tt.end-tt.start {
			t.Errorf("line %d len: expected %d, got %d", tt.line, tt.end-tt.start, length)
		}
	}

	if _, err := b.LineStartOffset(4); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if end != 6 {
		t.Errorf("expected end position 6, got %d", end)
	}

	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewBufferFromString("Hello")

	_, err := b.Insert(100, "X")
	if !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	_, err = b.Insert(-1, "X")
	if !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	if b.Text() != "Hello" {
		t.Errorf("failed insert must not modify the buffer, got %q", b.Text())
	}
}

func TestBufferDelete(t *testing.T) {
	b := NewBufferFromString("Hello, World!")

	if err := b.Delete(5, 12); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if b.Text() != "Hello!" {
		t.Errorf("expected 'Hello!', got %q", b.Text())
	}
}

func TestBufferDeleteInvalidRange(t *testing.T) {
	b := NewBufferFromString("Hello")

	if err := b.Delete(3, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}

	if err := b.Delete(0, 100); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}

	if b.Text() != "Hello" {
		t.Errorf("failed delete must not modify the buffer, got %q", b.Text())
	}
}

func TestBufferReplace(t *testing.T) {
	b := NewBufferFromString("Hello, World!")

	end, err := b.Replace(7, 12, "Gopher")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	if end != 13 {
		t.Errorf("expected end position 13, got %d", end)
	}

	if b.Text() != "Hello, Gopher!" {
		t.Errorf("expected 'Hello, Gopher!', got %q", b.Text())
	}
}

func TestBufferTextRange(t *testing.T) {
	b := NewBufferFromString("Hello, World!")

	got, err := b.TextRange(7, 12)
	if err != nil {
		t.Fatalf("text range failed: %v", err)
	}
	if got != "World" {
		t.Errorf("expected 'World', got %q", got)
	}

	if _, err := b.TextRange(12, 7); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestBufferApplyEdit(t *testing.T) {
	b := NewBufferFromString("Hello, World!")

	res, err := b.ApplyEdit(NewEdit(NewRange(7, 12), "Gopher"))
	if err != nil {
		t.Fatalf("apply edit failed: %v", err)
	}

	if res.OldText != "World" {
		t.Errorf("expected old text 'World', got %q", res.OldText)
	}
	if res.NewRange != (Range{Start: 7, End: 13}) {
		t.Errorf("unexpected new range %s", res.NewRange)
	}
	if res.Delta != 1 {
		t.Errorf("expected delta 1, got %d", res.Delta)
	}
}

func TestBufferApplyEditsReverseOrder(t *testing.T) {
	b := NewBufferFromString("hello world")

	// Reverse order: highest offset first.
	edits := []Edit{
		NewEdit(NewRange(6, 11), "gopher"),
		NewEdit(NewRange(0, 5), "hey"),
	}

	results, err := b.ApplyEdits(edits)
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}

	if b.Text() != "hey gopher" {
		t.Errorf("expected 'hey gopher', got %q", b.Text())
	}

	if results[0].OldText != "world" || results[1].OldText != "hello" {
		t.Errorf("unexpected old texts %q, %q", results[0].OldText, results[1].OldText)
	}
}

func TestBufferApplyEditsOverlap(t *testing.T) {
	b := NewBufferFromString("hello world")

	edits := []Edit{
		NewEdit(NewRange(3, 7), "x"),
		NewEdit(NewRange(5, 6), "y"),
	}

	if _, err := b.ApplyEdits(edits); !errors.Is(err, ErrEditsOverlap) {
		t.Errorf("expected ErrEditsOverlap, got %v", err)
	}

	if b.Text() != "hello world" {
		t.Errorf("failed batch must not modify the buffer, got %q", b.Text())
	}
}

func TestBufferApplyEditsTouchingRanges(t *testing.T) {
	b := NewBufferFromString("abcdef")

	// End of the second edit equals the start of the first: allowed.
	edits := []Edit{
		NewEdit(NewRange(3, 6), "XYZ"),
		NewEdit(NewRange(0, 3), "abc"),
	}

	if _, err := b.ApplyEdits(edits); err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}

	if b.Text() != "abcXYZ" {
		t.Errorf("expected 'abcXYZ', got %q", b.Text())
	}
}

func TestBufferPreservesBytesExactly(t *testing.T) {
	content := "a\r\nb\rc\nd"
	b := NewBufferFromString(content)

	if b.Text() != content {
		t.Errorf("content must be stored byte-for-byte, got %q", b.Text())
	}

	// Only \n terminates lines; the stray \r stays inside its line.
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}

	line, err := b.LineText(1)
	if err != nil {
		t.Fatalf("LineText failed: %v", err)
	}
	if line != "b\rc" {
		t.Errorf("expected %q, got %q", "b\rc", line)
	}
}

func TestBufferNormalizedLineEndings(t *testing.T) {
	b := NewBufferFromString("a\r\nb\rc", WithCRLF(), WithNormalizedLineEndings())

	if b.Text() != "a\r\nb\r\nc" {
		t.Errorf("expected normalized CRLF content, got %q", b.Text())
	}

	if _, err := b.Insert(b.Len(), "\nd"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if b.Text() != "a\r\nb\r\nc\r\nd" {
		t.Errorf("inserted text should normalize, got %q", b.Text())
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"no endings", LineEndingLF},
		{"a\nb\nc", LineEndingLF},
		{"a\r\nb\r\nc\nd", LineEndingCRLF},
		{"a\rb", LineEndingCR},
	}

	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestBufferOffsetToPoint(t *testing.T) {
	b := NewBufferFromString("hello\nworld\n")

	tests := []struct {
		offset ByteOffset
		want   Point
	}{
		{0, Point{0, 0}},
		{5, Point{0, 5}},
		{6, Point{1, 0}},
		{11, Point{1, 5}},
		{12, Point{2, 0}},
	}

	for _, tt := range tests {
		got, err := b.OffsetToPoint(tt.offset)
		if err != nil {
			t.Fatalf("OffsetToPoint(%d) failed: %v", tt.offset, err)
		}
		if got != tt.want {
			t.Errorf("OffsetToPoint(%d): expected %s, got %s", tt.offset, tt.want, got)
		}
	}

	if _, err := b.OffsetToPoint(13); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestBufferPointToOffset(t *testing.T) {
	b := NewBufferFromString("hello\nworld\n")

	tests := []struct {
		point Point
		want  ByteOffset
	}{
		{Point{0, 0}, 0},
		{Point{0, 5}, 5},
		{Point{1, 0}, 6},
		{Point{1, 5}, 11},
		{Point{2, 0}, 12},
	}

	for _, tt := range tests {
		got, err := b.PointToOffset(tt.point)
		if err != nil {
			t.Fatalf("PointToOffset(%s) failed: %v", tt.point, err)
		}
		if got != tt.want {
			t.Errorf("PointToOffset(%s): expected %d, got %d", tt.point, tt.want, got)
		}
	}

	if _, err := b.PointToOffset(Point{0, 6}); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("column past line end: expected ErrOffsetOutOfRange, got %v", err)
	}

	if _, err := b.PointToOffset(Point{3, 0}); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestBufferUTF16Conversion(t *testing.T) {
	// 'a' 1 byte/1 unit, 'é' 2 bytes/1 unit, '𝕏' 4 bytes/2 units.
	b := NewBufferFromString("aé𝕏b")

	tests := []struct {
		offset ByteOffset
		want   PointUTF16
	}{
		{0, PointUTF16{0, 0}},
		{1, PointUTF16{0, 1}},
		{3, PointUTF16{0, 2}},
		{7, PointUTF16{0, 4}},
		{8, PointUTF16{0, 5}},
	}

	for _, tt := range tests {
		got, err := b.OffsetToPointUTF16(tt.offset)
		if err != nil {
			t.Fatalf("OffsetToPointUTF16(%d) failed: %v", tt.offset, err)
		}
		if got != tt.want {
			t.Errorf("OffsetToPointUTF16(%d): expected %s, got %s", tt.offset, tt.want, got)
		}

		back, err := b.PointUTF16ToOffset(tt.want)
		if err != nil {
			t.Fatalf("PointUTF16ToOffset(%s) failed: %v", tt.want, err)
		}
		if back != tt.offset {
			t.Errorf("PointUTF16ToOffset(%s): expected %d, got %d", tt.want, tt.offset, back)
		}
	}

	// Column 3 lands inside the surrogate pair and snaps forward.
	off, err := b.PointUTF16ToOffset(PointUTF16{0, 3})
	if err != nil {
		t.Fatalf("PointUTF16ToOffset failed: %v", err)
	}
	if off != 7 {
		t.Errorf("expected snap to offset 7, got %d", off)
	}

	if _, err := b.PointUTF16ToOffset(PointUTF16{0, 6}); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestBufferSnapshotStability(t *testing.T) {
	b := NewBufferFromString("hello\nworld")
	snap := b.Snapshot()

	if _, err := b.Insert(0, "x\ny\n"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := b.Delete(0, 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if snap.Text() != "hello\nworld" {
		t.Errorf("snapshot changed under edits: %q", snap.Text())
	}

	if snap.LineCount() != 2 {
		t.Errorf("expected 2 lines in snapshot, got %d", snap.LineCount())
	}

	line, err := snap.LineText(1)
	if err != nil {
		t.Fatalf("snapshot LineText failed: %v", err)
	}
	if line != "world" {
		t.Errorf("expected 'world', got %q", line)
	}
}

func TestBufferRevisionChanges(t *testing.T) {
	b := NewBufferFromString("hello")
	before := b.RevisionID()

	if _, err := b.Insert(0, "x"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if b.RevisionID() == before {
		t.Error("revision should change after an edit")
	}
}

func TestChangeInvert(t *testing.T) {
	c := Change{
		Range:    NewRange(3, 8),
		NewRange: NewRange(3, 6),
		OldText:  "world",
		NewText:  "go!",
	}

	inv := c.Invert()
	if inv.Range != c.NewRange || inv.NewRange != c.Range {
		t.Errorf("inverted ranges wrong: %+v", inv)
	}
	if inv.OldText != "go!" || inv.NewText != "world" {
		t.Errorf("inverted texts wrong: %+v", inv)
	}

	if inv.Invert() != c {
		t.Error("double inversion should restore the original change")
	}
}

func TestBufferConcurrentAccess(t *testing.T) {
	b := NewBufferFromString(strings.Repeat("line\n", 100))

	var wg sync.WaitGroup

	// Concurrent readers.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Len()
				_ = b.LineCount()
				snap := b.Snapshot()
				_ = snap.Text()
			}
		}()
	}

	// Concurrent writers.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if n%2 == 0 {
					_, _ = b.Insert(0, "x")
				} else {
					length := b.Len()
					if length > 0 {
						_ = b.Delete(0, 1)
					}
				}
			}
		}(i)
	}

	wg.Wait()

	if err := b.CheckInvariants(); err != nil {
		t.Errorf("invariants violated after concurrent access: %v", err)
	}
}

func TestBufferStats(t *testing.T) {
	b := NewBufferFromString("hello\nworld")
	if _, err := b.Insert(5, " there"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	stats := b.Stats()
	if stats.Bytes != b.Len() {
		t.Errorf("stats bytes %d != len %d", stats.Bytes, b.Len())
	}
	if stats.Lines != b.LineCount() {
		t.Errorf("stats lines %d != line count %d", stats.Lines, b.LineCount())
	}
	if stats.Pieces < 2 {
		t.Errorf("expected at least 2 pieces after an interior insert, got %d", stats.Pieces)
	}
}

func TestParseLineEnding(t *testing.T) {
	tests := []struct {
		in   string
		want LineEnding
		ok   bool
	}{
		{"lf", LineEndingLF, true},
		{"CRLF", LineEndingCRLF, true},
		{"cr", LineEndingCR, true},
		{"mixed", LineEndingLF, false},
	}

	for _, tt := range tests {
		got, ok := ParseLineEnding(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLineEnding(%q): expected (%v, %v), got (%v, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}

func TestRangeHelpers(t *testing.T) {
	r := NewRange(5, 10)

	if r.Len() != 5 || r.IsEmpty() || !r.IsValid() {
		t.Errorf("unexpected range basics for %s", r)
	}

	if !r.Contains(5) || r.Contains(10) {
		t.Error("Contains should be inclusive of start, exclusive of end")
	}

	if !r.Overlaps(NewRange(9, 12)) || r.Overlaps(NewRange(10, 12)) {
		t.Error("Overlaps should exclude touching ranges")
	}

	if got := r.Intersect(NewRange(8, 20)); got != NewRange(8, 10) {
		t.Errorf("Intersect: expected [8:10), got %s", got)
	}

	if got := r.Union(NewRange(1, 7)); got != NewRange(1, 10) {
		t.Errorf("Union: expected [1:10), got %s", got)
	}

	if got := r.Shift(-2); got != NewRange(3, 8) {
		t.Errorf("Shift: expected [3:8), got %s", got)
	}

	if got := NewRange(-3, 99).Clamp(10); got != NewRange(0, 10) {
		t.Errorf("Clamp: expected [0:10), got %s", got)
	}
}

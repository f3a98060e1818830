package piecetable

import (
	"strings"
	"testing"
)

// FuzzInsertDelete drives the tree with an opcode stream decoded from
// the fuzz input and compares every outcome against a string model.
func FuzzInsertDelete(f *testing.F) {
	f.Add("hello world", []byte{0, 5, 3, 1, 2, 4})
	f.Add("line1\nline2\nline3", []byte{1, 0, 6, 0, 3, 2, 0, 9, 9})
	f.Add("", []byte{0, 0, 7})
	f.Add("日本語テキスト", []byte{0, 3, 5, 1, 1, 4})

	f.Fuzz(func(t *testing.T, initial string, ops []byte) {
		tree := NewFromString(initial)
		ref := initial

		for i := 0; i+2 < len(ops); i += 3 {
			kind := ops[i] % 2
			a := int(ops[i+1])
			b := int(ops[i+2])

			if kind == 0 {
				off := 0
				if len(ref) > 0 {
					off = a % (len(ref) + 1)
				}
				text := strings.Repeat("x\n", b%4+1)
				if err := tree.Insert(int64(off), text); err != nil {
					t.Fatalf("insert(%d, %q): %v", off, text, err)
				}
				ref = ref[:off] + text + ref[off:]
			} else {
				if len(ref) == 0 {
					continue
				}
				off := a % len(ref)
				n := b%(len(ref)-off) + 1
				if err := tree.Delete(int64(off), int64(n)); err != nil {
					t.Fatalf("delete(%d, %d): %v", off, n, err)
				}
				ref = ref[:off] + ref[off+n:]
			}
		}

		if tree.Text() != ref {
			t.Errorf("content mismatch: got %q, want %q", tree.Text(), ref)
		}
		if tree.Len() != int64(len(ref)) {
			t.Errorf("Len() = %d, want %d", tree.Len(), len(ref))
		}
		if want := uint32(strings.Count(ref, "\n") + 1); tree.LineCount() != want {
			t.Errorf("LineCount() = %d, want %d", tree.LineCount(), want)
		}
		if err := tree.Check(); err != nil {
			t.Errorf("invariants violated: %v", err)
		}
	})
}

// FuzzLineLookup checks the line index against a split of the full text.
func FuzzLineLookup(f *testing.F) {
	f.Add("a\nb\nc", uint8(1))
	f.Add("no newline", uint8(0))
	f.Add("\n\n\n", uint8(2))

	f.Fuzz(func(t *testing.T, text string, lineByte uint8) {
		tree := NewFromString(text)
		lines := strings.Split(text, "\n")

		if int(tree.LineCount()) != len(lines) {
			t.Fatalf("LineCount() = %d, want %d", tree.LineCount(), len(lines))
		}

		line := uint32(lineByte) % uint32(len(lines))
		got, err := tree.LineText(line)
		if err != nil {
			t.Fatalf("LineText(%d): %v", line, err)
		}
		if got != lines[line] {
			t.Errorf("LineText(%d) = %q, want %q", line, got, lines[line])
		}
	})
}

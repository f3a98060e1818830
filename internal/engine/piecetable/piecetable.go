package piecetable

import (
	"fmt"
	"strings"
)

// Tree is a piece table whose pieces are kept in a red-black tree
// ordered by document position.
//
// buffers[0] holds the original content; every Insert appends its text
// as a new buffer. Buffers are immutable once written, so clones share
// them. totalBytes and totalLineFeeds mirror the root aggregates and
// are maintained directly by Insert and Delete.
type Tree struct {
	buffers [][]byte
	nodes   []node
	free    []int32
	root    int32

	totalBytes     int64
	totalLineFeeds uint32
}

// New returns an empty tree.
func New() *Tree {
	return NewFromString("")
}

// NewFromString builds a tree over content in O(n): the content becomes
// the original buffer covered by a single piece, or no piece when empty.
func NewFromString(content string) *Tree {
	t := &Tree{
		buffers: [][]byte{[]byte(content)},
		nodes:   make([]node, 1, 16),
		root:    nilIdx,
	}
	t.nodes[nilIdx] = node{left: nilIdx, right: nilIdx, parent: nilIdx, color: black}

	if len(content) > 0 {
		lf := countLineFeeds(t.buffers[0])
		z := t.alloc(node{
			bufIdx:    0,
			start:     0,
			length:    int64(len(content)),
			lineFeeds: lf,
			left:      nilIdx,
			right:     nilIdx,
			parent:    nilIdx,
			color:     black,
		})
		t.root = z
		t.update(z)
		t.totalBytes = int64(len(content))
		t.totalLineFeeds = lf
	}
	return t
}

// Len returns the document length in bytes. O(1).
func (t *Tree) Len() int64 {
	return t.totalBytes
}

// LineCount returns the number of lines, which is the line-feed count
// plus one. O(1).
func (t *Tree) LineCount() uint32 {
	return t.totalLineFeeds + 1
}

// Text reconstructs the full document by in-order traversal. O(n).
func (t *Tree) Text() string {
	var sb strings.Builder
	sb.Grow(int(t.totalBytes))
	t.inorder(func(n *node) bool {
		sb.Write(t.buffers[n.bufIdx][n.start : n.start+n.length])
		return true
	})
	return sb.String()
}

// TextRange returns the bytes in [start, end).
func (t *Tree) TextRange(start, end int64) (string, error) {
	if start < 0 || end < start || end > t.totalBytes {
		return "", fmt.Errorf("%w: text range [%d,%d) of %d bytes", ErrOutOfRange, start, end, t.totalBytes)
	}
	if start == end {
		return "", nil
	}

	var sb strings.Builder
	sb.Grow(int(end - start))
	x, rel := t.findByOffset(start)
	remaining := end - start
	for x != nilIdx && remaining > 0 {
		n := t.nodes[x]
		take := min(remaining, n.length-rel)
		sb.Write(t.buffers[n.bufIdx][n.start+rel : n.start+rel+take])
		remaining -= take
		rel = 0
		x = t.successor(x)
	}
	return sb.String(), nil
}

// Insert splices text into the document at offset. The text is appended
// to a fresh buffer and becomes one new piece; if offset falls strictly
// inside an existing piece, that piece is split around the insertion
// point first. O(log p).
func (t *Tree) Insert(offset int64, text string) error {
	if offset < 0 || offset > t.totalBytes {
		return fmt.Errorf("%w: insert at offset %d of %d bytes", ErrOutOfRange, offset, t.totalBytes)
	}
	if len(text) == 0 {
		return nil
	}

	b := []byte(text)
	bufIdx := int32(len(t.buffers))
	t.buffers = append(t.buffers, b)
	piece := node{
		bufIdx:    bufIdx,
		start:     0,
		length:    int64(len(b)),
		lineFeeds: countLineFeeds(b),
	}

	switch {
	case t.root == nilIdx:
		z := t.alloc(node{
			bufIdx:    piece.bufIdx,
			length:    piece.length,
			lineFeeds: piece.lineFeeds,
			left:      nilIdx,
			right:     nilIdx,
			parent:    nilIdx,
			color:     black,
		})
		t.root = z
		t.update(z)
	case offset == t.totalBytes:
		t.insertAfter(t.maximum(t.root), piece)
	case offset == 0:
		t.insertBefore(t.minimum(t.root), piece)
	default:
		x, rel := t.findByOffset(offset)
		if rel == 0 {
			t.insertBefore(x, piece)
		} else {
			t.splitAndInsert(x, rel, piece)
		}
	}

	t.totalBytes += piece.length
	t.totalLineFeeds += piece.lineFeeds
	return nil
}

// Delete removes length bytes starting at offset. Pieces fully covered
// are unlinked; pieces straddling a boundary are trimmed or split. The
// stored bytes are untouched, only the piece structure changes.
func (t *Tree) Delete(offset, length int64) error {
	if offset < 0 || length < 0 || offset+length > t.totalBytes {
		return fmt.Errorf("%w: delete [%d,%d) of %d bytes", ErrOutOfRange, offset, offset+length, t.totalBytes)
	}

	remaining := length
	for remaining > 0 {
		x, rel := t.findByOffset(offset)
		nx := t.nodes[x]
		take := min(remaining, nx.length-rel)

		switch {
		case rel == 0 && take == nx.length:
			t.totalBytes -= nx.length
			t.totalLineFeeds -= nx.lineFeeds
			t.removeNode(x)
		case rel == 0:
			// Trim the front of the piece.
			lf := countLineFeeds(t.buffers[nx.bufIdx][nx.start : nx.start+take])
			t.nodes[x].start += take
			t.nodes[x].length -= take
			t.nodes[x].lineFeeds -= lf
			t.updateToRoot(x)
			t.totalBytes -= take
			t.totalLineFeeds -= lf
		case take == nx.length-rel:
			// Trim the tail of the piece.
			lf := countLineFeeds(t.buffers[nx.bufIdx][nx.start+rel : nx.start+nx.length])
			t.nodes[x].length = rel
			t.nodes[x].lineFeeds -= lf
			t.updateToRoot(x)
			t.totalBytes -= take
			t.totalLineFeeds -= lf
		default:
			// Deletion strictly inside the piece: keep both ends.
			lf := countLineFeeds(t.buffers[nx.bufIdx][nx.start+rel : nx.start+rel+take])
			right := node{
				bufIdx:    nx.bufIdx,
				start:     nx.start + rel + take,
				length:    nx.length - rel - take,
				lineFeeds: countLineFeeds(t.buffers[nx.bufIdx][nx.start+rel+take : nx.start+nx.length]),
			}
			t.nodes[x].length = rel
			t.nodes[x].lineFeeds = nx.lineFeeds - lf - right.lineFeeds
			t.updateToRoot(x)
			t.insertAfter(x, right)
			t.totalBytes -= take
			t.totalLineFeeds -= lf
		}
		remaining -= take
	}
	return nil
}

// LineStartOffset returns the byte offset where the 0-based line begins.
// Line 0 starts at offset 0; line n starts one byte past the nth line
// feed. O(log p) plus a scan inside one piece.
func (t *Tree) LineStartOffset(line uint32) (int64, error) {
	if line > t.totalLineFeeds {
		return 0, fmt.Errorf("%w: line %d of %d lines", ErrOutOfRange, line, t.LineCount())
	}
	if line == 0 {
		return 0, nil
	}

	remaining := line
	var pos int64
	x := t.root
	for x != nilIdx {
		n := t.nodes[x]
		leftLF := t.nodes[n.left].subtreeLineFeeds
		switch {
		case remaining <= leftLF:
			x = n.left
		case remaining <= leftLF+n.lineFeeds:
			pos += t.nodes[n.left].subtreeBytes
			idx := nthLineFeed(t.buffers[n.bufIdx][n.start:n.start+n.length], remaining-leftLF)
			if idx < 0 {
				return 0, fmt.Errorf("%w: piece line-feed count drifted", ErrInvariant)
			}
			return pos + int64(idx) + 1, nil
		default:
			remaining -= leftLF + n.lineFeeds
			pos += t.nodes[n.left].subtreeBytes + n.length
			x = n.right
		}
	}
	return 0, fmt.Errorf("%w: line %d unreachable", ErrInvariant, line)
}

// LineText returns the content of the 0-based line without its line
// feed. The final line has no line feed to strip.
func (t *Tree) LineText(line uint32) (string, error) {
	start, err := t.LineStartOffset(line)
	if err != nil {
		return "", err
	}
	end := t.totalBytes
	if line < t.totalLineFeeds {
		next, err := t.LineStartOffset(line + 1)
		if err != nil {
			return "", err
		}
		end = next - 1
	}
	return t.TextRange(start, end)
}

// PositionForOffset converts a byte offset to a 0-based line number and
// the byte column within that line. offset == Len() is valid and maps
// to the end of the last line.
func (t *Tree) PositionForOffset(offset int64) (uint32, int64, error) {
	if offset < 0 || offset > t.totalBytes {
		return 0, 0, fmt.Errorf("%w: offset %d of %d bytes", ErrOutOfRange, offset, t.totalBytes)
	}

	var line uint32
	rem := offset
	x := t.root
descend:
	for x != nilIdx {
		n := t.nodes[x]
		leftBytes := t.nodes[n.left].subtreeBytes
		switch {
		case rem < leftBytes:
			x = n.left
		case rem < leftBytes+n.length:
			line += t.nodes[n.left].subtreeLineFeeds
			line += countLineFeeds(t.buffers[n.bufIdx][n.start : n.start+rem-leftBytes])
			break descend
		default:
			rem -= leftBytes + n.length
			line += t.nodes[n.left].subtreeLineFeeds + n.lineFeeds
			x = n.right
		}
	}

	start, err := t.LineStartOffset(line)
	if err != nil {
		return 0, 0, err
	}
	return line, offset - start, nil
}

// Clone returns an independent copy of the tree. The node arena is
// copied; the underlying buffers are shared because they are never
// mutated. O(p).
func (t *Tree) Clone() *Tree {
	c := &Tree{
		buffers:        make([][]byte, len(t.buffers)),
		nodes:          make([]node, len(t.nodes)),
		free:           make([]int32, len(t.free)),
		root:           t.root,
		totalBytes:     t.totalBytes,
		totalLineFeeds: t.totalLineFeeds,
	}
	copy(c.buffers, t.buffers)
	copy(c.nodes, t.nodes)
	copy(c.free, t.free)
	return c
}

// Stats describes the tree's current shape.
type Stats struct {
	Pieces  int
	Buffers int
	Bytes   int64
	Lines   uint32
	Height  int
}

// Stats reports piece, buffer, and size counts plus the tree height.
func (t *Tree) Stats() Stats {
	return Stats{
		Pieces:  len(t.nodes) - 1 - len(t.free),
		Buffers: len(t.buffers),
		Bytes:   t.totalBytes,
		Lines:   t.LineCount(),
		Height:  t.height(t.root),
	}
}

func (t *Tree) height(x int32) int {
	if x == nilIdx {
		return 0
	}
	return 1 + max(t.height(t.nodes[x].left), t.height(t.nodes[x].right))
}

// findByOffset returns the piece containing offset and the offset's
// position within it, via order-statistics descent on the byte
// aggregate. offset must be in [0, totalBytes).
func (t *Tree) findByOffset(offset int64) (int32, int64) {
	x := t.root
	for x != nilIdx {
		n := t.nodes[x]
		leftBytes := t.nodes[n.left].subtreeBytes
		switch {
		case offset < leftBytes:
			x = n.left
		case offset < leftBytes+n.length:
			return x, offset - leftBytes
		default:
			offset -= leftBytes + n.length
			x = n.right
		}
	}
	return nilIdx, 0
}

// insertAfter links piece n as the in-order successor of x and restores
// the tree invariants. Returns the new node's index.
func (t *Tree) insertAfter(x int32, n node) int32 {
	n.color = red
	n.left, n.right = nilIdx, nilIdx
	z := t.alloc(n)
	if t.nodes[x].right == nilIdx {
		t.nodes[x].right = z
		t.nodes[z].parent = x
	} else {
		p := t.minimum(t.nodes[x].right)
		t.nodes[p].left = z
		t.nodes[z].parent = p
	}
	t.updateToRoot(z)
	t.insertFixup(z)
	return z
}

// insertBefore links piece n as the in-order predecessor of x.
func (t *Tree) insertBefore(x int32, n node) int32 {
	n.color = red
	n.left, n.right = nilIdx, nilIdx
	z := t.alloc(n)
	if t.nodes[x].left == nilIdx {
		t.nodes[x].left = z
		t.nodes[z].parent = x
	} else {
		p := t.maximum(t.nodes[x].left)
		t.nodes[p].right = z
		t.nodes[z].parent = p
	}
	t.updateToRoot(z)
	t.insertFixup(z)
	return z
}

// splitAndInsert splits piece x at rel bytes and links n between the
// halves. The left half keeps the original start with the shorter
// length; the right half owns the remainder with its line feeds
// recounted from the bytes it now covers.
func (t *Tree) splitAndInsert(x int32, rel int64, n node) {
	nx := t.nodes[x]
	right := node{
		bufIdx:    nx.bufIdx,
		start:     nx.start + rel,
		length:    nx.length - rel,
		lineFeeds: countLineFeeds(t.buffers[nx.bufIdx][nx.start+rel : nx.start+nx.length]),
	}

	t.nodes[x].length = rel
	t.nodes[x].lineFeeds = nx.lineFeeds - right.lineFeeds
	t.updateToRoot(x)

	z := t.insertAfter(x, n)
	t.insertAfter(z, right)
}

// inorder visits the pieces left to right without recursion. The visit
// callback may not mutate the tree.
func (t *Tree) inorder(visit func(*node) bool) {
	stack := make([]int32, 0, 32)
	x := t.root
	for x != nilIdx || len(stack) > 0 {
		for x != nilIdx {
			stack = append(stack, x)
			x = t.nodes[x].left
		}
		x = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(&t.nodes[x]) {
			return
		}
		x = t.nodes[x].right
	}
}

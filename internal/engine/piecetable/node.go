package piecetable

import "bytes"

// color of a red-black tree node.
type color uint8

const (
	red color = iota
	black
)

// nilIdx is the arena index of the shared sentinel. The sentinel is
// black with zero length and zero aggregates; its parent field is
// scratch space for the delete fix-up.
const nilIdx int32 = 0

// node is one piece of the document plus its tree linkage.
//
// The piece covers length bytes of buffers[bufIdx] starting at start;
// lineFeeds counts '\n' bytes inside that span. subtreeBytes and
// subtreeLineFeeds summarize the node together with both children and
// must hold after every structural mutation:
//
//	subtreeBytes(n) == subtreeBytes(n.left) + subtreeBytes(n.right) + n.length
//
// and symmetrically for line feeds.
type node struct {
	bufIdx    int32
	start     int64
	length    int64
	lineFeeds uint32

	parent int32
	left   int32
	right  int32
	color  color

	subtreeBytes     int64
	subtreeLineFeeds uint32
}

// alloc places n in the arena, reusing a freed slot when one exists.
func (t *Tree) alloc(n node) int32 {
	if k := len(t.free); k > 0 {
		idx := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// release returns an arena slot to the free list.
func (t *Tree) release(x int32) {
	t.nodes[x] = node{left: nilIdx, right: nilIdx, parent: nilIdx, color: black}
	t.free = append(t.free, x)
}

// update recomputes x's subtree aggregates from its children.
func (t *Tree) update(x int32) {
	if x == nilIdx {
		return
	}
	n := &t.nodes[x]
	n.subtreeBytes = t.nodes[n.left].subtreeBytes + t.nodes[n.right].subtreeBytes + n.length
	n.subtreeLineFeeds = t.nodes[n.left].subtreeLineFeeds + t.nodes[n.right].subtreeLineFeeds + n.lineFeeds
}

// updateToRoot recomputes aggregates from x up to the root.
func (t *Tree) updateToRoot(x int32) {
	for x != nilIdx {
		t.update(x)
		x = t.nodes[x].parent
	}
}

// rotateLeft rotates x with its right child. Both rotated nodes get
// fresh aggregates; relinking alone would corrupt every lookup passing
// through the rotation point.
func (t *Tree) rotateLeft(x int32) {
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	if t.nodes[y].left != nilIdx {
		t.nodes[t.nodes[y].left].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	switch p := t.nodes[x].parent; {
	case p == nilIdx:
		t.root = y
	case x == t.nodes[p].left:
		t.nodes[p].left = y
	default:
		t.nodes[p].right = y
	}
	t.nodes[y].left = x
	t.nodes[x].parent = y
	t.update(x)
	t.update(y)
}

// rotateRight is the mirror of rotateLeft.
func (t *Tree) rotateRight(x int32) {
	y := t.nodes[x].left
	t.nodes[x].left = t.nodes[y].right
	if t.nodes[y].right != nilIdx {
		t.nodes[t.nodes[y].right].parent = x
	}
	t.nodes[y].parent = t.nodes[x].parent
	switch p := t.nodes[x].parent; {
	case p == nilIdx:
		t.root = y
	case x == t.nodes[p].right:
		t.nodes[p].right = y
	default:
		t.nodes[p].left = y
	}
	t.nodes[y].right = x
	t.nodes[x].parent = y
	t.update(x)
	t.update(y)
}

// insertFixup restores the red-black invariants after z was linked in
// red. Rotations maintain the aggregates; recoloring never touches them.
func (t *Tree) insertFixup(z int32) {
	for t.nodes[t.nodes[z].parent].color == red {
		parent := t.nodes[z].parent
		grand := t.nodes[parent].parent
		if parent == t.nodes[grand].left {
			uncle := t.nodes[grand].right
			if t.nodes[uncle].color == red {
				t.nodes[parent].color = black
				t.nodes[uncle].color = black
				t.nodes[grand].color = red
				z = grand
			} else {
				if z == t.nodes[parent].right {
					z = parent
					t.rotateLeft(z)
					parent = t.nodes[z].parent
					grand = t.nodes[parent].parent
				}
				t.nodes[parent].color = black
				t.nodes[grand].color = red
				t.rotateRight(grand)
			}
		} else {
			uncle := t.nodes[grand].left
			if t.nodes[uncle].color == red {
				t.nodes[parent].color = black
				t.nodes[uncle].color = black
				t.nodes[grand].color = red
				z = grand
			} else {
				if z == t.nodes[parent].left {
					z = parent
					t.rotateRight(z)
					parent = t.nodes[z].parent
					grand = t.nodes[parent].parent
				}
				t.nodes[parent].color = black
				t.nodes[grand].color = red
				t.rotateLeft(grand)
			}
		}
	}
	t.nodes[t.root].color = black
}

// transplant replaces the subtree rooted at u with the one rooted at v.
// v's parent is set even when v is the sentinel; deleteFixup reads it.
func (t *Tree) transplant(u, v int32) {
	p := t.nodes[u].parent
	switch {
	case p == nilIdx:
		t.root = v
	case u == t.nodes[p].left:
		t.nodes[p].left = v
	default:
		t.nodes[p].right = v
	}
	t.nodes[v].parent = p
}

// removeNode unlinks z from the tree, restores the red-black and
// aggregate invariants, and releases z's arena slot. Totals are the
// caller's responsibility.
func (t *Tree) removeNode(z int32) {
	y := z
	yColor := t.nodes[y].color
	var x, fixFrom int32

	switch {
	case t.nodes[z].left == nilIdx:
		x = t.nodes[z].right
		fixFrom = t.nodes[z].parent
		t.transplant(z, x)
	case t.nodes[z].right == nilIdx:
		x = t.nodes[z].left
		fixFrom = t.nodes[z].parent
		t.transplant(z, x)
	default:
		y = t.minimum(t.nodes[z].right)
		yColor = t.nodes[y].color
		x = t.nodes[y].right
		if t.nodes[y].parent == z {
			t.nodes[x].parent = y
			fixFrom = y
		} else {
			fixFrom = t.nodes[y].parent
			t.transplant(y, x)
			t.nodes[y].right = t.nodes[z].right
			t.nodes[t.nodes[y].right].parent = y
		}
		t.transplant(z, y)
		t.nodes[y].left = t.nodes[z].left
		t.nodes[t.nodes[y].left].parent = y
		t.nodes[y].color = t.nodes[z].color
	}

	t.updateToRoot(fixFrom)
	if yColor == black {
		t.deleteFixup(x)
	}
	t.release(z)
	t.nodes[nilIdx].parent = nilIdx
	t.nodes[nilIdx].color = black
}

// deleteFixup restores the red-black invariants after removing a black
// node; x carries the extra blackness.
func (t *Tree) deleteFixup(x int32) {
	for x != t.root && t.nodes[x].color == black {
		p := t.nodes[x].parent
		if x == t.nodes[p].left {
			w := t.nodes[p].right
			if t.nodes[w].color == red {
				t.nodes[w].color = black
				t.nodes[p].color = red
				t.rotateLeft(p)
				w = t.nodes[p].right
			}
			if t.nodes[t.nodes[w].left].color == black && t.nodes[t.nodes[w].right].color == black {
				t.nodes[w].color = red
				x = p
			} else {
				if t.nodes[t.nodes[w].right].color == black {
					t.nodes[t.nodes[w].left].color = black
					t.nodes[w].color = red
					t.rotateRight(w)
					w = t.nodes[p].right
				}
				t.nodes[w].color = t.nodes[p].color
				t.nodes[p].color = black
				t.nodes[t.nodes[w].right].color = black
				t.rotateLeft(p)
				x = t.root
			}
		} else {
			w := t.nodes[p].left
			if t.nodes[w].color == red {
				t.nodes[w].color = black
				t.nodes[p].color = red
				t.rotateRight(p)
				w = t.nodes[p].left
			}
			if t.nodes[t.nodes[w].left].color == black && t.nodes[t.nodes[w].right].color == black {
				t.nodes[w].color = red
				x = p
			} else {
				if t.nodes[t.nodes[w].left].color == black {
					t.nodes[t.nodes[w].right].color = black
					t.nodes[w].color = red
					t.rotateLeft(w)
					w = t.nodes[p].left
				}
				t.nodes[w].color = t.nodes[p].color
				t.nodes[p].color = black
				t.nodes[t.nodes[w].left].color = black
				t.rotateRight(p)
				x = t.root
			}
		}
	}
	t.nodes[x].color = black
}

// minimum returns the leftmost node of the subtree rooted at x.
func (t *Tree) minimum(x int32) int32 {
	for t.nodes[x].left != nilIdx {
		x = t.nodes[x].left
	}
	return x
}

// maximum returns the rightmost node of the subtree rooted at x.
func (t *Tree) maximum(x int32) int32 {
	for t.nodes[x].right != nilIdx {
		x = t.nodes[x].right
	}
	return x
}

// successor returns x's in-order successor, or the sentinel.
func (t *Tree) successor(x int32) int32 {
	if t.nodes[x].right != nilIdx {
		return t.minimum(t.nodes[x].right)
	}
	p := t.nodes[x].parent
	for p != nilIdx && x == t.nodes[p].right {
		x = p
		p = t.nodes[p].parent
	}
	return p
}

// countLineFeeds returns the number of '\n' bytes in b.
func countLineFeeds(b []byte) uint32 {
	return uint32(bytes.Count(b, []byte{'\n'}))
}

// nthLineFeed returns the byte index of the nth line feed in b,
// 1-indexed, or -1 when b holds fewer than n line feeds.
func nthLineFeed(b []byte, n uint32) int {
	base := 0
	for n > 0 {
		i := bytes.IndexByte(b, '\n')
		if i < 0 {
			return -1
		}
		n--
		if n == 0 {
			return base + i
		}
		base += i + 1
		b = b[i+1:]
	}
	return -1
}

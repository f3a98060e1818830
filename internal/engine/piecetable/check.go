package piecetable

import "fmt"

// Check verifies the red-black invariants, the piece spans, and both
// subtree aggregates across the whole tree. It exists for debug builds
// and tests; a failure means this package corrupted its own structure,
// so callers running with checks enabled should treat it as fatal.
func (t *Tree) Check() error {
	s := t.nodes[nilIdx]
	if s.length != 0 || s.subtreeBytes != 0 || s.subtreeLineFeeds != 0 {
		return fmt.Errorf("%w: sentinel carries data", ErrInvariant)
	}
	if s.color != black {
		return fmt.Errorf("%w: sentinel is not black", ErrInvariant)
	}
	if t.root != nilIdx && t.nodes[t.root].color != black {
		return fmt.Errorf("%w: root is not black", ErrInvariant)
	}
	if t.root != nilIdx && t.nodes[t.root].parent != nilIdx {
		return fmt.Errorf("%w: root has a parent", ErrInvariant)
	}

	bytes, lfs, _, err := t.checkNode(t.root)
	if err != nil {
		return err
	}
	if bytes != t.totalBytes {
		return fmt.Errorf("%w: tree holds %d bytes, total says %d", ErrInvariant, bytes, t.totalBytes)
	}
	if lfs != t.totalLineFeeds {
		return fmt.Errorf("%w: tree holds %d line feeds, total says %d", ErrInvariant, lfs, t.totalLineFeeds)
	}
	return nil
}

// checkNode validates the subtree rooted at x and returns its byte
// count, line-feed count, and black height.
func (t *Tree) checkNode(x int32) (int64, uint32, int, error) {
	if x == nilIdx {
		return 0, 0, 1, nil
	}
	n := t.nodes[x]

	if n.length <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: node %d has length %d", ErrInvariant, x, n.length)
	}
	if n.bufIdx < 0 || int(n.bufIdx) >= len(t.buffers) {
		return 0, 0, 0, fmt.Errorf("%w: node %d references buffer %d of %d", ErrInvariant, x, n.bufIdx, len(t.buffers))
	}
	if n.start < 0 || n.start+n.length > int64(len(t.buffers[n.bufIdx])) {
		return 0, 0, 0, fmt.Errorf("%w: node %d span [%d,%d) exceeds buffer %d", ErrInvariant, x, n.start, n.start+n.length, n.bufIdx)
	}
	if lf := countLineFeeds(t.buffers[n.bufIdx][n.start : n.start+n.length]); lf != n.lineFeeds {
		return 0, 0, 0, fmt.Errorf("%w: node %d records %d line feeds, span has %d", ErrInvariant, x, n.lineFeeds, lf)
	}
	if n.color == red && (t.nodes[n.left].color == red || t.nodes[n.right].color == red) {
		return 0, 0, 0, fmt.Errorf("%w: red node %d has a red child", ErrInvariant, x)
	}
	if n.left != nilIdx && t.nodes[n.left].parent != x {
		return 0, 0, 0, fmt.Errorf("%w: node %d left child disowns it", ErrInvariant, x)
	}
	if n.right != nilIdx && t.nodes[n.right].parent != x {
		return 0, 0, 0, fmt.Errorf("%w: node %d right child disowns it", ErrInvariant, x)
	}

	lb, llf, lbh, err := t.checkNode(n.left)
	if err != nil {
		return 0, 0, 0, err
	}
	rb, rlf, rbh, err := t.checkNode(n.right)
	if err != nil {
		return 0, 0, 0, err
	}
	if lbh != rbh {
		return 0, 0, 0, fmt.Errorf("%w: node %d black height %d left vs %d right", ErrInvariant, x, lbh, rbh)
	}
	if n.subtreeBytes != lb+rb+n.length {
		return 0, 0, 0, fmt.Errorf("%w: node %d byte aggregate %d, children+self %d", ErrInvariant, x, n.subtreeBytes, lb+rb+n.length)
	}
	if n.subtreeLineFeeds != llf+rlf+n.lineFeeds {
		return 0, 0, 0, fmt.Errorf("%w: node %d line-feed aggregate %d, children+self %d", ErrInvariant, x, n.subtreeLineFeeds, llf+rlf+n.lineFeeds)
	}

	bh := lbh
	if n.color == black {
		bh++
	}
	return lb + rb + n.length, llf + rlf + n.lineFeeds, bh, nil
}

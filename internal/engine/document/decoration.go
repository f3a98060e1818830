package document

import (
	"sort"

	"github.com/google/uuid"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/buffer"
)

// Stickiness controls how a decoration boundary reacts to text
// inserted exactly at it.
type Stickiness uint8

const (
	// StickinessGrows extends the range over text inserted at either
	// boundary: the start stays put, the end moves past the new text.
	StickinessGrows Stickiness = iota

	// StickinessFixed keeps text inserted at a boundary outside the
	// range: the start hops over the new text, the end stays put.
	StickinessFixed
)

// String returns the stickiness name.
func (s Stickiness) String() string {
	if s == StickinessFixed {
		return "fixed"
	}
	return "grows"
}

// Decoration is a tracked annotation over a span of text. Its range
// follows edits: unrelated edits shift it, edits at its boundaries
// resolve by Stickiness, and deleting text it covers shrinks it.
type Decoration struct {
	ID         string
	Range      Range
	Stickiness Stickiness

	// Class tags the decoration for consumers: a highlight kind, a
	// diagnostic severity, a bookmark.
	Class string
}

// decorationRecord is a decoration pinned to byte offsets. Offsets are
// what edits shift; positions are computed on the way out.
type decorationRecord struct {
	id         string
	start, end int64
	stickiness Stickiness
	class      string
}

// DeltaDecorations atomically removes the decorations named in
// removeIDs (unknown IDs are ignored) and adds the given decorations,
// returning the IDs of the added ones in input order. An added
// decoration with an empty ID gets a generated one; a non-empty ID
// replaces any existing decoration with that ID. Ranges are clamped
// into the document.
func (d *Document) DeltaDecorations(removeIDs []string, add []Decoration) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}

	for _, id := range removeIDs {
		delete(d.decorations, id)
	}

	ids := make([]string, len(add))
	for i, dec := range add {
		id := dec.ID
		if id == "" {
			id = uuid.NewString()
		}

		r := NewRange(dec.Range.Start, dec.Range.End)
		start := d.clampedOffsetLocked(r.Start)
		end := d.clampedOffsetLocked(r.End)
		if end < start {
			end = start
		}

		d.decorations[id] = &decorationRecord{
			id:         id,
			start:      start,
			end:        end,
			stickiness: dec.Stickiness,
			class:      dec.Class,
		}
		ids[i] = id
	}

	return ids
}

// Decorations returns all decorations ordered by range, then ID.
func (d *Document) Decorations() []Decoration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.decorationsLocked(func(*decorationRecord) bool { return true })
}

// DecorationsInRange returns the decorations whose spans overlap r.
// Empty decorations match only when strictly inside r.
func (d *Document) DecorationsInRange(r Range) ([]Decoration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	nr := NewRange(r.Start, r.End)
	start, err := d.offsetAtLocked(nr.Start)
	if err != nil {
		return nil, err
	}
	end, err := d.offsetAtLocked(nr.End)
	if err != nil {
		return nil, err
	}

	return d.decorationsLocked(func(rec *decorationRecord) bool {
		return rec.start < end && start < rec.end
	}), nil
}

// DecorationRange returns the current range of a decoration.
func (d *Document) DecorationRange(id string) (Range, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	rec, ok := d.decorations[id]
	if !ok {
		return Range{}, false
	}
	return d.recordRangeLocked(rec), true
}

// DecorationCount returns the number of tracked decorations.
func (d *Document) DecorationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.decorations)
}

func (d *Document) decorationsLocked(keep func(*decorationRecord) bool) []Decoration {
	out := make([]Decoration, 0, len(d.decorations))
	for _, rec := range d.decorations {
		if !keep(rec) {
			continue
		}
		out = append(out, Decoration{
			ID:         rec.id,
			Range:      d.recordRangeLocked(rec),
			Stickiness: rec.stickiness,
			Class:      rec.class,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Range.Start.Compare(out[j].Range.Start); c != 0 {
			return c < 0
		}
		if c := out[i].Range.End.Compare(out[j].Range.End); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})

	return out
}

func (d *Document) recordRangeLocked(rec *decorationRecord) Range {
	start, err := d.buf.OffsetToPoint(rec.start)
	if err != nil {
		return Range{}
	}
	end, err := d.buf.OffsetToPoint(rec.end)
	if err != nil {
		end = start
	}
	return Range{Start: fromPoint(start), End: fromPoint(end)}
}

// updateDecorationsLocked shifts every decoration across an applied
// batch. changes must be ascending by pre-batch offset; forces, when
// non-nil, carries each change's ForceMoveMarkers flag.
func (d *Document) updateDecorationsLocked(changes []buffer.Change, forces []bool) {
	for _, rec := range d.decorations {
		var shift int64
		start, end := rec.start, rec.end

		for i, c := range changes {
			s := c.Range.Start + shift
			e := c.Range.End + shift
			length := int64(len(c.NewText))
			force := forces != nil && forces[i]

			start = adjustBoundary(start, s, e, length, true, rec.stickiness, force)
			end = adjustBoundary(end, s, e, length, false, rec.stickiness, force)
			shift += c.Delta()
		}

		if end < start {
			start = end
		}
		rec.start, rec.end = start, end
	}
}

// adjustBoundary maps one decoration boundary across a replacement of
// [s, e) by length new bytes, all in the same coordinate space as m.
// isStart distinguishes the two boundaries because stickiness works in
// opposite directions at each end.
func adjustBoundary(m, s, e, length int64, isStart bool, st Stickiness, force bool) int64 {
	delta := length - (e - s)
	switch {
	case m < s:
		return m
	case m > e:
		return m + delta
	}

	if force {
		return s + length
	}
	if m > s && m < e {
		// The boundary sat inside the replaced text; collapse to the
		// start of the replacement.
		return s
	}

	// The boundary touches the replaced span (or a pure insertion
	// point). Growing ranges absorb the new text; fixed ones shed it.
	if st == StickinessGrows {
		if isStart {
			return s
		}
		return s + length
	}
	if isStart {
		return s + length
	}
	return s
}

// decorationAnchor remembers a decoration's line/column location so it
// can be re-pinned after a whole-document rewrite.
type decorationAnchor struct {
	rec        *decorationRecord
	start, end Position
}

func (d *Document) captureDecorationAnchorsLocked() []decorationAnchor {
	anchors := make([]decorationAnchor, 0, len(d.decorations))
	for _, rec := range d.decorations {
		ps, err1 := d.buf.OffsetToPoint(rec.start)
		pe, err2 := d.buf.OffsetToPoint(rec.end)
		if err1 != nil || err2 != nil {
			continue
		}
		anchors = append(anchors, decorationAnchor{
			rec:   rec,
			start: fromPoint(ps),
			end:   fromPoint(pe),
		})
	}
	return anchors
}

func (d *Document) reanchorDecorationsLocked(anchors []decorationAnchor) {
	for _, a := range anchors {
		a.rec.start = d.clampedOffsetLocked(a.start)
		a.rec.end = d.clampedOffsetLocked(a.end)
		if a.rec.end < a.rec.start {
			a.rec.end = a.rec.start
		}
	}
}

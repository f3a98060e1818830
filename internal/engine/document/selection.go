package document

import "fmt"

// SelectionDirection reports which way a selection was made.
type SelectionDirection uint8

const (
	// SelectionLTR means the anchor precedes the active end.
	SelectionLTR SelectionDirection = iota
	// SelectionRTL means the cursor moved backwards from the anchor.
	SelectionRTL
)

// String returns the direction name.
func (d SelectionDirection) String() string {
	if d == SelectionRTL {
		return "rtl"
	}
	return "ltr"
}

// Selection is an anchored range: Anchor is where the selection
// started, Active is where the cursor currently is. Unlike Range the
// two ends are not normalized, so the direction of the gesture
// survives.
type Selection struct {
	Anchor Position
	Active Position
}

// NewSelection creates a selection from anchor to active.
func NewSelection(anchor, active Position) Selection {
	return Selection{Anchor: anchor, Active: active}
}

// SelectionFromRange spans a range in the given direction.
func SelectionFromRange(r Range, dir SelectionDirection) Selection {
	if dir == SelectionRTL {
		return Selection{Anchor: r.End, Active: r.Start}
	}
	return Selection{Anchor: r.Start, Active: r.End}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("%s->%s", s.Anchor, s.Active)
}

// Range returns the covered span with normalized endpoints.
func (s Selection) Range() Range {
	return NewRange(s.Anchor, s.Active)
}

// Direction reports which way the selection runs.
func (s Selection) Direction() SelectionDirection {
	if s.Active.Before(s.Anchor) {
		return SelectionRTL
	}
	return SelectionLTR
}

// IsEmpty returns true when anchor and active coincide.
// Reversed reports whether the active end precedes the anchor.
func (s Selection) Reversed() bool {
	return s.Direction() == SelectionRTL
}

func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

package document

import "fmt"

// Range is a span between two positions, inclusive of Start and
// exclusive of End for the text it covers.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a Range, swapping reversed endpoints so Start never
// comes after End.
func NewRange(start, end Position) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// RangeAt returns the empty range at a position.
func RangeAt(p Position) Range {
	return Range{Start: p, End: p}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsSingleLine returns true if the range starts and ends on one line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// ContainsPosition returns true if p lies within the range, boundaries
// included.
func (r Range) ContainsPosition(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) <= 0
}

// ContainsRange returns true if other lies entirely within this range.
func (r Range) ContainsRange(other Range) bool {
	return other.Start.Compare(r.Start) >= 0 && other.End.Compare(r.End) <= 0
}

// Overlaps returns true if the two ranges share covered text.
// Touching ranges do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Union returns the smallest range containing both ranges.
func (r Range) Union(other Range) Range {
	start := r.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := r.End
	if other.End.After(end) {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// Intersect returns the shared span of two ranges, reporting false
// when they are disjoint.
func (r Range) Intersect(other Range) (Range, bool) {
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	if end.Before(start) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

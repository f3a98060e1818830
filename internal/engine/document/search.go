package document

import (
	"fmt"
	"regexp"
	"sort"
)

// compilePattern builds the search regexp. Literal patterns are quoted
// so their metacharacters match themselves; case-insensitive matching
// is compiled in, never post-filtered.
func compilePattern(pattern string, isRegex, matchCase bool) (*regexp.Regexp, error) {
	expr := pattern
	if !isRegex {
		expr = regexp.QuoteMeta(pattern)
	}
	if !matchCase {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	return re, nil
}

// lineStarts indexes the byte offset of every line start in text.
func lineStarts(text string) []int {
	starts := make([]int, 1, 16)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// positionForOffset maps a byte offset to a position through a
// precomputed line-start index.
func positionForOffset(starts []int, offset int) Position {
	line := sort.SearchInts(starts, offset+1) - 1
	return Position{Line: uint32(line), Column: uint32(offset - starts[line])}
}

// FindMatches returns the range of every match of pattern, in document
// order. A literal pattern matches itself even when it contains regexp
// metacharacters; isRegex interprets it as Go regexp syntax instead.
// Matching runs against one content snapshot, so a concurrent edit
// never changes a call's input. A malformed regexp fails with
// ErrInvalidPattern.
func (d *Document) FindMatches(pattern string, isRegex, matchCase bool) ([]Range, error) {
	re, err := compilePattern(pattern, isRegex, matchCase)
	if err != nil {
		return nil, err
	}

	text := d.buf.Snapshot().Text()
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil, nil
	}

	starts := lineStarts(text)
	ranges := make([]Range, len(locs))
	for i, loc := range locs {
		ranges[i] = Range{
			Start: positionForOffset(starts, loc[0]),
			End:   positionForOffset(starts, loc[1]),
		}
	}
	return ranges, nil
}

// FindNextMatch returns the first match of pattern starting strictly
// after a position, wrapping around to the document start when nothing
// follows it. ok is false only when the document has no match at all.
func (d *Document) FindNextMatch(pattern string, after Position, isRegex, matchCase bool) (Range, bool, error) {
	re, err := compilePattern(pattern, isRegex, matchCase)
	if err != nil {
		return Range{}, false, err
	}

	snap := d.buf.Snapshot()
	from, err := resolvePosition(snap, after)
	if err != nil {
		return Range{}, false, err
	}

	text := snap.Text()
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return Range{}, false, nil
	}

	best := locs[0]
	for _, loc := range locs {
		if int64(loc[0]) > from {
			best = loc
			break
		}
	}

	starts := lineStarts(text)
	return Range{
		Start: positionForOffset(starts, best[0]),
		End:   positionForOffset(starts, best[1]),
	}, true, nil
}

package view

// LineSpan is an inclusive span of model lines awaiting redraw.
type LineSpan struct {
	Start, End uint32
}

// lineSpan is the internal span representation before clamping.
type lineSpan struct {
	start, end uint32
}

func (s lineSpan) contains(line uint32) bool {
	return line >= s.start && line <= s.end
}

// mergeable reports whether two spans overlap or touch.
func (s lineSpan) mergeable(other lineSpan) bool {
	if other.start > s.end {
		return other.start-s.end <= 1
	}
	if s.start > other.end {
		return s.start-other.end <= 1
	}
	return true
}

func (s lineSpan) merge(other lineSpan) lineSpan {
	return lineSpan{start: min(s.start, other.start), end: max(s.end, other.end)}
}

// dirtySet coalesces dirty model-line spans. An edit that changes the
// line count shifts everything below it, so such edits are tracked as
// a single open-ended span instead of a growing span list. The View
// owns the locking.
type dirtySet struct {
	spans    []lineSpan
	openFrom uint32
	open     bool
}

func (ds *dirtySet) markSpan(start, end uint32) {
	if end < start {
		start, end = end, start
	}
	if ds.open && start >= ds.openFrom {
		return
	}

	span := lineSpan{start: start, end: end}
	for i := range ds.spans {
		if ds.spans[i].mergeable(span) {
			ds.spans[i] = ds.spans[i].merge(span)
			ds.coalesce()
			return
		}
	}
	ds.spans = append(ds.spans, span)
}

// markFrom dirties every line at or below start.
func (ds *dirtySet) markFrom(start uint32) {
	if !ds.open || start < ds.openFrom {
		ds.open = true
		ds.openFrom = start
	}

	// Spans swallowed by the open region are redundant.
	kept := ds.spans[:0]
	for _, s := range ds.spans {
		if s.start < ds.openFrom {
			if s.end >= ds.openFrom {
				s.end = ds.openFrom - 1
			}
			kept = append(kept, s)
		}
	}
	ds.spans = kept
}

// coalesce repeatedly merges mergeable span pairs until none remain.
func (ds *dirtySet) coalesce() {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(ds.spans) && !changed; i++ {
			for j := i + 1; j < len(ds.spans); j++ {
				if ds.spans[i].mergeable(ds.spans[j]) {
					ds.spans[i] = ds.spans[i].merge(ds.spans[j])
					ds.spans = append(ds.spans[:j], ds.spans[j+1:]...)
					changed = true
					break
				}
			}
		}
	}
}

func (ds *dirtySet) isDirty(line uint32) bool {
	if ds.open && line >= ds.openFrom {
		return true
	}
	for _, s := range ds.spans {
		if s.contains(line) {
			return true
		}
	}
	return false
}

func (ds *dirtySet) isEmpty() bool {
	return !ds.open && len(ds.spans) == 0
}

func (ds *dirtySet) clear() {
	ds.spans = ds.spans[:0]
	ds.open = false
	ds.openFrom = 0
}

// resolved returns the dirty spans clamped to the current line count,
// sorted and merged.
func (ds *dirtySet) resolved(lineCount uint32) []LineSpan {
	if lineCount == 0 {
		return nil
	}

	var out []LineSpan
	for _, s := range ds.spans {
		if s.start >= lineCount {
			continue
		}
		out = append(out, LineSpan{Start: s.start, End: min(s.end, lineCount-1)})
	}
	if ds.open && ds.openFrom < lineCount {
		out = append(out, LineSpan{Start: ds.openFrom, End: lineCount - 1})
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Start < out[j-1].Start; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

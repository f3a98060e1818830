package document

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/buffer"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/history"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/piecetable"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/tracking"
)

// Defaults applied by Open.
const (
	// DefaultUndoLimit caps the undo stack depth.
	DefaultUndoLimit = 1000

	// DefaultCoalesceWindow is how long after a typing insert the next
	// single-rune insert still merges into the same undo element.
	DefaultCoalesceWindow = time.Second
)

// EndOfLine is the document's dominant line-ending style.
type EndOfLine = buffer.LineEnding

// Line-ending styles.
const (
	EndOfLineLF   = buffer.LineEndingLF
	EndOfLineCRLF = buffer.LineEndingCRLF
	EndOfLineCR   = buffer.LineEndingCR
)

// Change-log types surfaced by the Document.
type (
	Event   = tracking.Event
	Change  = tracking.Change
	Summary = tracking.Summary
)

// ChangeListener observes every applied mutation. It runs synchronously
// on the mutating goroutine while the document lock is held: it must
// return quickly and must not call back into the document.
type ChangeListener func(Event)

// Document couples a text buffer with identity, versioning, undo/redo,
// decorations, and a bounded change log. The version starts at 1 and
// increments once per content mutation, including undo and redo.
//
// One mutex serializes mutations and decoration bookkeeping. Pure text
// reads go through buffer snapshots and never wait on a writer.
type Document struct {
	id  string
	uri string

	mu  sync.Mutex
	buf *buffer.Buffer

	version atomic.Uint64

	hist *history.History
	log  *tracking.Log

	decorations map[string]*decorationRecord

	eol      EndOfLine
	listener ChangeListener

	readOnly    bool
	debugChecks bool
	closed      bool

	// Construction knobs consumed by Open.
	undoLimit      int
	coalesceWindow time.Duration
	logCapacity    int
	eolSet         bool
}

// Option configures a document at Open.
type Option func(*Document)

// WithID overrides the generated document id.
func WithID(id string) Option {
	return func(d *Document) { d.id = id }
}

// WithUndoLimit caps the undo stack depth.
func WithUndoLimit(n int) Option {
	return func(d *Document) {
		if n > 0 {
			d.undoLimit = n
		}
	}
}

// WithCoalesceWindow sets the typing coalescing window. Zero disables
// coalescing entirely.
func WithCoalesceWindow(w time.Duration) Option {
	return func(d *Document) {
		if w >= 0 {
			d.coalesceWindow = w
		}
	}
}

// WithChangeLogCapacity sets how many change events the log retains.
func WithChangeLogCapacity(n int) Option {
	return func(d *Document) {
		if n > 0 {
			d.logCapacity = n
		}
	}
}

// WithEOL fixes the end-of-line style instead of detecting it from the
// opened content. The content itself is stored byte-exact either way.
func WithEOL(eol EndOfLine) Option {
	return func(d *Document) {
		d.eol = eol
		d.eolSet = true
	}
}

// WithReadOnly opens the document read-only: every mutation fails with
// ErrReadOnly and undo/redo are no-ops.
func WithReadOnly() Option {
	return func(d *Document) { d.readOnly = true }
}

// WithDebugChecks verifies tree invariants after every mutation and
// panics on violation. Expensive; for tests and debugging.
func WithDebugChecks() Option {
	return func(d *Document) { d.debugChecks = true }
}

// WithChangeListener registers the mutation listener at construction.
func WithChangeListener(fn ChangeListener) Option {
	return func(d *Document) { d.listener = fn }
}

// Open creates a document over the given content at version 1. The
// line-ending style is detected from the content unless WithEOL is
// given.
func Open(uri, content string, opts ...Option) *Document {
	d := &Document{
		uri:            uri,
		decorations:    make(map[string]*decorationRecord),
		undoLimit:      DefaultUndoLimit,
		coalesceWindow: DefaultCoalesceWindow,
		logCapacity:    tracking.DefaultCapacity,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.id == "" {
		d.id = uuid.NewString()
	}
	if !d.eolSet {
		d.eol = buffer.DetectLineEnding(content)
	}

	d.buf = buffer.NewBufferFromString(content, buffer.WithLineEnding(d.eol))
	d.hist = history.NewHistory(d.undoLimit)
	d.hist.SetCoalesceWindow(d.coalesceWindow)
	d.log = tracking.NewLog(tracking.WithCapacity(d.logCapacity))
	d.version.Store(1)

	return d
}

// Identity

// ID returns the document id.
func (d *Document) ID() string { return d.id }

// URI returns the document URI.
func (d *Document) URI() string { return d.uri }

// Version returns the current document version.
func (d *Document) Version() uint64 { return d.version.Load() }

// ReadOnly reports whether the document rejects mutations.
func (d *Document) ReadOnly() bool { return d.readOnly }

// EOL returns the current end-of-line style.
func (d *Document) EOL() EndOfLine {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eol
}

// Read Operations

// Text returns the full document content.
func (d *Document) Text() string { return d.buf.Text() }

// Len returns the document length in bytes.
func (d *Document) Len() int64 { return d.buf.Len() }

// LineCount returns the number of lines. A document holding n line
// feeds has n+1 lines regardless of line-ending style.
func (d *Document) LineCount() uint32 { return d.buf.LineCount() }

// IsEmpty reports whether the document has no content.
func (d *Document) IsEmpty() bool { return d.buf.IsEmpty() }

// TextRange returns the content of r. Reversed ranges are normalized.
func (d *Document) TextRange(r Range) (string, error) {
	snap := d.buf.Snapshot()
	nr := NewRange(r.Start, r.End)

	start, err := resolvePosition(snap, nr.Start)
	if err != nil {
		return "", err
	}
	end, err := resolvePosition(snap, nr.End)
	if err != nil {
		return "", err
	}

	text, err := snap.TextRange(start, end)
	if err != nil {
		return "", fmt.Errorf("%w: range %s", ErrOutOfRange, nr)
	}
	return text, nil
}

// LineContent returns a line's text without its line terminator; a
// trailing "\r" left by a CRLF break is stripped as well.
func (d *Document) LineContent(line uint32) (string, error) {
	text, err := d.buf.LineText(line)
	if err != nil {
		return "", fmt.Errorf("%w: line %d", ErrOutOfRange, line)
	}
	return strings.TrimSuffix(text, "\r"), nil
}

// LineLength returns a line's length in bytes, excluding its
// terminator.
func (d *Document) LineLength(line uint32) (uint32, error) {
	text, err := d.LineContent(line)
	if err != nil {
		return 0, err
	}
	return uint32(len(text)), nil
}

// OffsetAt resolves a position to its byte offset. A column one past
// the last byte of the line is valid; anything further is out of range.
func (d *Document) OffsetAt(p Position) (int64, error) {
	off, err := d.buf.PointToOffset(point(p))
	if err != nil {
		return 0, fmt.Errorf("%w: position %s", ErrOutOfRange, p)
	}
	return off, nil
}

// PositionAt resolves a byte offset to its position. offset == Len()
// is valid and maps to the end of the last line.
func (d *Document) PositionAt(offset int64) (Position, error) {
	pt, err := d.buf.OffsetToPoint(offset)
	if err != nil {
		return Position{}, fmt.Errorf("%w: offset %d", ErrOutOfRange, offset)
	}
	return fromPoint(pt), nil
}

// Edits

// resolvedOp is an edit operation pinned to byte offsets, ready to
// order, validate, and apply.
type resolvedOp struct {
	start, end int64
	text       string
	force      bool
}

// ApplyEdits applies a batch of edits atomically: one version bump, one
// undo element, one change event. Operations may arrive in any order;
// they are sorted by start position. Overlapping operations fail with
// ErrOverlappingEdits (touching is fine), positions beyond the document
// fail with ErrOutOfRange, and in both cases nothing is applied.
//
// Operations are resolved against the pre-edit document, so none sees
// the effect of another. Two insertions at the same position keep their
// batch order. The returned version identifies the post-edit document.
func (d *Document) ApplyEdits(ops []EditOperation) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return d.version.Load(), ErrClosed
	}
	if d.readOnly {
		return d.version.Load(), ErrReadOnly
	}
	if len(ops) == 0 {
		return d.version.Load(), nil
	}

	resolved, err := d.resolveOpsLocked(ops)
	if err != nil {
		return d.version.Load(), err
	}

	changes, err := d.applyResolvedLocked(resolved)
	if err != nil {
		return d.version.Load(), err
	}

	versionBefore := d.version.Load()
	version := d.version.Add(1)

	d.hist.Push(&history.Element{
		VersionBefore: versionBefore,
		Changes:       changes,
		At:            time.Now(),
	})

	forces := make([]bool, len(resolved))
	for i, op := range resolved {
		forces[i] = op.force
	}
	d.updateDecorationsLocked(changes, forces)
	d.recordLocked(changes, eventFlags{})

	return version, nil
}

// resolveOpsLocked maps each operation's range to byte offsets in the
// current document, sorts the batch ascending (stable, so same-position
// insertions keep their input order), and rejects overlap.
func (d *Document) resolveOpsLocked(ops []EditOperation) ([]resolvedOp, error) {
	resolved := make([]resolvedOp, len(ops))
	for i, op := range ops {
		r := NewRange(op.Range.Start, op.Range.End)
		start, err := d.offsetAtLocked(r.Start)
		if err != nil {
			return nil, err
		}
		end, err := d.offsetAtLocked(r.End)
		if err != nil {
			return nil, err
		}
		resolved[i] = resolvedOp{start: start, end: end, text: op.Text, force: op.ForceMoveMarkers}
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].start != resolved[j].start {
			return resolved[i].start < resolved[j].start
		}
		return resolved[i].end < resolved[j].end
	})

	for i := 1; i < len(resolved); i++ {
		if resolved[i].start < resolved[i-1].end {
			return nil, fmt.Errorf("%w: [%d, %d) and [%d, %d)",
				ErrOverlappingEdits,
				resolved[i-1].start, resolved[i-1].end,
				resolved[i].start, resolved[i].end)
		}
	}

	return resolved, nil
}

// applyResolvedLocked pushes the batch through the buffer (which wants
// descending order) and rebuilds the change list ascending, with each
// change's new range in post-batch coordinates.
func (d *Document) applyResolvedLocked(resolved []resolvedOp) ([]buffer.Change, error) {
	n := len(resolved)
	edits := make([]buffer.Edit, n)
	for i, op := range resolved {
		edits[n-1-i] = buffer.Edit{
			Range:   buffer.Range{Start: op.start, End: op.end},
			NewText: op.text,
		}
	}

	results, err := d.buf.ApplyEdits(edits)
	if err != nil {
		return nil, fmt.Errorf("apply edits: %w", err)
	}

	changes := make([]buffer.Change, n)
	var shift int64
	for i, op := range resolved {
		newStart := op.start + shift
		changes[i] = buffer.Change{
			Range:    buffer.Range{Start: op.start, End: op.end},
			NewRange: buffer.Range{Start: newStart, End: newStart + int64(len(op.text))},
			OldText:  results[n-1-i].OldText,
			NewText:  op.text,
		}
		shift += int64(len(op.text)) - (op.end - op.start)
	}

	return changes, nil
}

// Undo / Redo

// Undo reverts the most recent edit batch and reports the resulting
// version and whether anything was undone. An empty stack is a no-op,
// not an error. Undo produces a fresh version; versions never rewind.
func (d *Document) Undo() (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.readOnly {
		return d.version.Load(), false
	}

	el, ok := d.hist.PopUndo()
	if !ok {
		return d.version.Load(), false
	}

	inverted := el.InvertedChanges()

	var anchors []decorationAnchor
	if el.Flush {
		anchors = d.captureDecorationAnchorsLocked()
	}

	if err := d.replayLocked(inverted); err != nil {
		d.hist.TransferToUndo(el)
		return d.version.Load(), false
	}

	version := d.version.Add(1)
	d.hist.TransferToRedo(el)

	if el.Flush {
		d.eol = buffer.DetectLineEnding(d.buf.Text())
		d.buf.SetLineEnding(d.eol)
		d.reanchorDecorationsLocked(anchors)
	} else {
		d.updateDecorationsLocked(inverted, nil)
	}

	d.recordLocked(inverted, eventFlags{undo: true, flush: el.Flush})
	return version, true
}

// Redo reapplies the most recently undone batch. An empty stack is a
// no-op, not an error.
func (d *Document) Redo() (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.readOnly {
		return d.version.Load(), false
	}

	el, ok := d.hist.PopRedo()
	if !ok {
		return d.version.Load(), false
	}

	var anchors []decorationAnchor
	if el.Flush {
		anchors = d.captureDecorationAnchorsLocked()
	}

	if err := d.replayLocked(el.Changes); err != nil {
		d.hist.TransferToRedo(el)
		return d.version.Load(), false
	}

	version := d.version.Add(1)
	d.hist.TransferToUndo(el)

	if el.Flush {
		d.eol = buffer.DetectLineEnding(d.buf.Text())
		d.buf.SetLineEnding(d.eol)
		d.reanchorDecorationsLocked(anchors)
	} else {
		d.updateDecorationsLocked(el.Changes, nil)
	}

	d.recordLocked(el.Changes, eventFlags{redo: true, flush: el.Flush})
	return version, true
}

// replayLocked applies ascending changes through the buffer, which
// wants them descending.
func (d *Document) replayLocked(changes []buffer.Change) error {
	n := len(changes)
	edits := make([]buffer.Edit, n)
	for i, c := range changes {
		edits[n-1-i] = c.ToEdit()
	}
	_, err := d.buf.ApplyEdits(edits)
	return err
}

// CanUndo reports whether an undo element is available.
func (d *Document) CanUndo() bool { return d.hist.CanUndo() }

// CanRedo reports whether a redo element is available.
func (d *Document) CanRedo() bool { return d.hist.CanRedo() }

// UndoDepth returns how many elements the undo stack holds.
func (d *Document) UndoDepth() int { return d.hist.UndoCount() }

// RedoDepth returns how many elements the redo stack holds.
func (d *Document) RedoDepth() int { return d.hist.RedoCount() }

// End-of-line conversion

// SetEOL converts every line break to the given style as one undoable
// whole-document edit (a flush). Decorations are re-anchored by their
// line/column location rather than shifted. Setting the current style,
// or a style on a document with no line breaks to rewrite, only updates
// the mode and does not bump the version.
func (d *Document) SetEOL(eol EndOfLine) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return d.version.Load(), ErrClosed
	}
	if d.readOnly {
		return d.version.Load(), ErrReadOnly
	}
	if eol == d.eol {
		return d.version.Load(), nil
	}

	old := d.buf.Text()
	converted := buffer.NormalizeLineEndings(old, eol)
	if converted == old {
		d.eol = eol
		d.buf.SetLineEnding(eol)
		return d.version.Load(), nil
	}

	anchors := d.captureDecorationAnchorsLocked()

	if _, err := d.buf.Replace(0, int64(len(old)), converted); err != nil {
		return d.version.Load(), fmt.Errorf("set eol: %w", err)
	}

	versionBefore := d.version.Load()
	version := d.version.Add(1)

	change := buffer.Change{
		Range:    buffer.Range{Start: 0, End: int64(len(old))},
		NewRange: buffer.Range{Start: 0, End: int64(len(converted))},
		OldText:  old,
		NewText:  converted,
	}
	d.hist.Push(&history.Element{
		VersionBefore: versionBefore,
		Changes:       []buffer.Change{change},
		At:            time.Now(),
		Flush:         true,
	})

	d.eol = eol
	d.buf.SetLineEnding(eol)
	d.reanchorDecorationsLocked(anchors)
	d.recordLocked([]buffer.Change{change}, eventFlags{flush: true})

	return version, nil
}

// Change log

// SetChangeListener registers fn as the mutation listener, replacing
// any previous one. A nil fn unregisters.
func (d *Document) SetChangeListener(fn ChangeListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listener = fn
}

// ChangesSince returns every retained change event with a version
// greater than version, in order. A caller that sees a gap (fewer
// events than versions) should resynchronize from the full content.
func (d *Document) ChangesSince(version uint64) []Event {
	return d.log.EventsSince(version)
}

// ChangeSummary aggregates the retained events after a version.
func (d *Document) ChangeSummary(since uint64) Summary {
	return d.log.SummarizeSince(since)
}

// eventFlags classifies a mutation for the change log.
type eventFlags struct {
	undo, redo, flush bool
}

// recordLocked annotates the batch with the line spans its new text
// occupies, records the event, and invokes the listener.
func (d *Document) recordLocked(changes []buffer.Change, flags eventFlags) {
	tracked := make([]tracking.Change, len(changes))
	for i, c := range changes {
		tc := tracking.Change{Change: c}
		if start, err := d.buf.OffsetToPoint(c.NewRange.Start); err == nil {
			tc.StartLine = start.Line
		}
		if end, err := d.buf.OffsetToPoint(c.NewRange.End); err == nil {
			tc.EndLine = end.Line
		}
		tracked[i] = tc
	}

	ev := Event{
		Version: d.version.Load(),
		Changes: tracked,
		IsUndo:  flags.undo,
		IsRedo:  flags.redo,
		IsFlush: flags.flush,
		At:      time.Now(),
	}
	d.log.Record(ev)

	if d.listener != nil {
		d.listener(ev)
	}

	if d.debugChecks {
		if err := d.buf.CheckInvariants(); err != nil {
			panic(fmt.Sprintf("document %s: invariant violation at version %d: %v", d.id, ev.Version, err))
		}
	}
}

// Lifecycle

// Stats reports document state for inspection and benchmarks.
type Stats struct {
	Tree        piecetable.Stats
	Version     uint64
	UndoDepth   int
	RedoDepth   int
	Decorations int
	LogEvents   int
}

// Stats returns a consistent snapshot of the document's bookkeeping.
func (d *Document) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Stats{
		Tree:        d.buf.Stats(),
		Version:     d.version.Load(),
		UndoDepth:   d.hist.UndoCount(),
		RedoDepth:   d.hist.RedoCount(),
		Decorations: len(d.decorations),
		LogEvents:   d.log.Len(),
	}
}

// CheckInvariants verifies the underlying tree structure.
func (d *Document) CheckInvariants() error {
	return d.buf.CheckInvariants()
}

// Close releases history, the change log, and decorations, and rejects
// further mutations with ErrClosed. Reads keep working on the final
// content. Close is idempotent.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	d.hist.Clear()
	d.log.Clear()
	d.decorations = make(map[string]*decorationRecord)
	d.listener = nil
}

// IsClosed reports whether Close has been called.
func (d *Document) IsClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Position helpers

func (d *Document) offsetAtLocked(p Position) (int64, error) {
	off, err := d.buf.PointToOffset(point(p))
	if err != nil {
		return 0, fmt.Errorf("%w: position %s", ErrOutOfRange, p)
	}
	return off, nil
}

// clampedOffsetLocked resolves p leniently: a line past the end maps to
// the document end and a column past the line end to the line end.
func (d *Document) clampedOffsetLocked(p Position) int64 {
	if p.Line >= d.buf.LineCount() {
		return d.buf.Len()
	}

	start, err := d.buf.LineStartOffset(p.Line)
	if err != nil {
		return d.buf.Len()
	}
	end, err := d.buf.LineEndOffset(p.Line)
	if err != nil {
		return d.buf.Len()
	}

	off := start + int64(p.Column)
	if off > end {
		off = end
	}
	return off
}

func resolvePosition(snap *buffer.Snapshot, p Position) (int64, error) {
	off, err := snap.PointToOffset(point(p))
	if err != nil {
		return 0, fmt.Errorf("%w: position %s", ErrOutOfRange, p)
	}
	return off, nil
}

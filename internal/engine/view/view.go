package view

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/document"
)

// ErrLineOutOfRange indicates a model or view line beyond the
// respective extent.
var ErrLineOutOfRange = errors.New("line out of range")

// Defaults for presentation knobs.
const (
	DefaultPreviewGraphemes = 100
	DefaultWrapColumn       = 120
	DefaultTabWidth         = 4
	DefaultViewportHeight   = 24
)

// Model is the part of the document the view reads: line count and
// line content. *document.Document satisfies it.
type Model interface {
	LineCount() uint32
	LineContent(line uint32) (string, error)
}

// View folds, scrolls, and annotates a Model without owning any text.
// Folds hide model lines; the view exposes the contiguous view-line
// space that remains and translates coordinates between the two.
type View struct {
	mu    sync.Mutex
	model Model

	// folds sorted by Start ascending, outer before inner at equal
	// starts. Partial overlap is rejected at FoldRange, so containment
	// forms a forest.
	folds []Fold

	top    uint32 // first visible view line
	height uint32 // viewport height in view lines

	dirty dirtySet

	previewGraphemes int
	wrapColumn       int
	tabWidth         int
}

// Option configures a View.
type Option func(*View)

// WithPreviewGraphemes caps line previews at n grapheme clusters.
func WithPreviewGraphemes(n int) Option {
	return func(v *View) {
		if n > 0 {
			v.previewGraphemes = n
		}
	}
}

// WithWrapColumn sets the cell width beyond which a line is flagged
// as wrapped.
func WithWrapColumn(n int) Option {
	return func(v *View) {
		if n > 0 {
			v.wrapColumn = n
		}
	}
}

// WithTabWidth sets the tab stop width used for wrap measurement.
func WithTabWidth(n int) Option {
	return func(v *View) {
		if n > 0 {
			v.tabWidth = n
		}
	}
}

// WithViewportHeight sets the initial viewport height.
func WithViewportHeight(h uint32) Option {
	return func(v *View) { v.height = h }
}

// NewView creates a view over model with no folds and the viewport at
// the top.
func NewView(model Model, opts ...Option) *View {
	v := &View{
		model:            model,
		height:           DefaultViewportHeight,
		previewGraphemes: DefaultPreviewGraphemes,
		wrapColumn:       DefaultWrapColumn,
		tabWidth:         DefaultTabWidth,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Folding

// FoldRange collapses model lines start+1 through end behind the
// header line start. It reports whether the fold was added: start must
// precede end, end must be inside the model, and the fold must not
// duplicate or partially overlap an existing fold. Strict nesting and
// disjoint folds are accepted.
func (v *View) FoldRange(start, end uint32) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if start >= end || end >= v.model.LineCount() {
		return false
	}

	f := Fold{Start: start, End: end}
	for _, g := range v.folds {
		if f == g {
			return false
		}
		if !f.disjoint(g) && !f.contains(g) && !g.contains(f) {
			return false
		}
	}

	v.folds = append(v.folds, f)
	sort.Slice(v.folds, func(i, j int) bool {
		if v.folds[i].Start != v.folds[j].Start {
			return v.folds[i].Start < v.folds[j].Start
		}
		return v.folds[i].End > v.folds[j].End
	})

	// Every view line at or below the header shifts.
	v.dirty.markFrom(start)
	v.clampViewportLocked()
	return true
}

// UnfoldRange removes the exact fold [start, end], reporting whether
// it existed.
func (v *View) UnfoldRange(start, end uint32) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, g := range v.folds {
		if g.Start == start && g.End == end {
			v.folds = append(v.folds[:i], v.folds[i+1:]...)
			v.dirty.markFrom(start)
			v.clampViewportLocked()
			return true
		}
	}
	return false
}

// UnfoldAll removes every fold.
func (v *View) UnfoldAll() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.folds) == 0 {
		return
	}
	first := v.folds[0].Start
	v.folds = v.folds[:0]
	v.dirty.markFrom(first)
	v.clampViewportLocked()
}

// Folds returns the folds ordered by position.
func (v *View) Folds() []Fold {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]Fold, len(v.folds))
	copy(out, v.folds)
	return out
}

// FoldCount returns the number of folds.
func (v *View) FoldCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.folds)
}

// topLevelLocked returns the outermost folds ascending; only they hide
// lines. Folds stranded past the model end by a shrink are skipped
// until the next reconcile drops them.
func (v *View) topLevelLocked() []Fold {
	lineCount := v.model.LineCount()
	var top []Fold
	covered := int64(-1)
	for _, f := range v.folds {
		if f.End >= lineCount {
			continue
		}
		if int64(f.Start) > covered {
			top = append(top, f)
			covered = int64(f.End)
		}
	}
	return top
}

// Coordinate Mapping

// ViewLineCount returns the number of visible lines: the model line
// count minus the lines hidden by top-level folds.
func (v *View) ViewLineCount() uint32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewLineCountLocked()
}

func (v *View) viewLineCountLocked() uint32 {
	count := v.model.LineCount()
	for _, f := range v.topLevelLocked() {
		count -= f.hiddenLines()
	}
	return count
}

// ModelToView maps a model line to its view line. A line hidden inside
// a fold maps to the fold header's view line.
func (v *View) ModelToView(line uint32) (uint32, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.modelToViewLocked(line)
}

func (v *View) modelToViewLocked(line uint32) (uint32, error) {
	if line >= v.model.LineCount() {
		return 0, fmt.Errorf("%w: model line %d", ErrLineOutOfRange, line)
	}

	viewLine := line
	for _, f := range v.topLevelLocked() {
		switch {
		case line > f.End:
			viewLine -= f.hiddenLines()
		case line > f.Start:
			// Hidden inside this fold; collapse to the header.
			return viewLine - (line - f.Start), nil
		default:
			return viewLine, nil
		}
	}
	return viewLine, nil
}

// ViewToModel maps a view line back to the model line it shows.
func (v *View) ViewToModel(viewLine uint32) (uint32, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewToModelLocked(viewLine)
}

func (v *View) viewToModelLocked(viewLine uint32) (uint32, error) {
	if viewLine >= v.viewLineCountLocked() {
		return 0, fmt.Errorf("%w: view line %d", ErrLineOutOfRange, viewLine)
	}

	model := viewLine
	for _, f := range v.topLevelLocked() {
		if f.Start >= model {
			break
		}
		model += f.hiddenLines()
	}
	return model, nil
}

// ModelToViewPosition maps a model position to view space. The column
// passes through unchanged: wrapping flags lines, it never remaps
// coordinates.
func (v *View) ModelToViewPosition(p document.Position) (document.Position, error) {
	line, err := v.ModelToView(p.Line)
	if err != nil {
		return document.Position{}, err
	}
	return document.Position{Line: line, Column: p.Column}, nil
}

// ViewToModelPosition maps a view position back to model space.
func (v *View) ViewToModelPosition(p document.Position) (document.Position, error) {
	line, err := v.ViewToModel(p.Line)
	if err != nil {
		return document.Position{}, err
	}
	return document.Position{Line: line, Column: p.Column}, nil
}

// Viewport

// SetViewport positions the visible window in view-line space. top is
// clamped into the current view line count.
func (v *View) SetViewport(top, height uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.top = top
	v.height = height
	v.clampViewportLocked()
}

// Viewport returns the current top view line and height.
func (v *View) Viewport() (top, height uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.top, v.height
}

func (v *View) clampViewportLocked() {
	count := v.viewLineCountLocked()
	if count == 0 {
		v.top = 0
		return
	}
	if v.top >= count {
		v.top = count - 1
	}
}

// LineInfo describes one visible line for presentation.
type LineInfo struct {
	ViewLine  uint32
	ModelLine uint32
	IsFolded  bool   // the line is a collapsed fold header
	IsWrapped bool   // rendered width exceeds the wrap column
	IsDirty   bool   // the model line awaits redraw
	Preview   string // content capped to the preview grapheme limit
}

// LinesInViewport resolves the view lines intersecting the viewport,
// top to bottom.
func (v *View) LinesInViewport() ([]LineInfo, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	count := v.viewLineCountLocked()
	if v.height == 0 || count == 0 || v.top >= count {
		return nil, nil
	}

	end := v.top + v.height
	if end > count {
		end = count
	}

	infos := make([]LineInfo, 0, end-v.top)
	for viewLine := v.top; viewLine < end; viewLine++ {
		modelLine, err := v.viewToModelLocked(viewLine)
		if err != nil {
			return nil, err
		}
		content, err := v.model.LineContent(modelLine)
		if err != nil {
			return nil, fmt.Errorf("model line %d: %w", modelLine, err)
		}

		preview, _ := truncateGraphemes(content, v.previewGraphemes)
		infos = append(infos, LineInfo{
			ViewLine:  viewLine,
			ModelLine: modelLine,
			IsFolded:  v.isFoldHeaderLocked(modelLine),
			IsWrapped: cellWidth(content, v.tabWidth) > v.wrapColumn,
			IsDirty:   v.dirty.isDirty(modelLine),
			Preview:   preview,
		})
	}
	return infos, nil
}

func (v *View) isFoldHeaderLocked(line uint32) bool {
	for _, f := range v.folds {
		if f.Start == line {
			return true
		}
	}
	return false
}

// Change Plumbing

// HandleChange reconciles the view with a document mutation: the
// touched model lines become dirty (everything below, when the line
// count changed), folds stranded past the new line count are dropped,
// and the viewport is clamped.
func (v *View) HandleChange(ev document.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, c := range ev.Changes {
		added := strings.Count(c.NewText, "\n")
		removed := strings.Count(c.OldText, "\n")
		if added != removed || ev.IsFlush {
			v.dirty.markFrom(c.StartLine)
		} else {
			v.dirty.markSpan(c.StartLine, c.EndLine)
		}
	}

	v.reconcileFoldsLocked()
	v.clampViewportLocked()
}

func (v *View) reconcileFoldsLocked() {
	lineCount := v.model.LineCount()
	kept := v.folds[:0]
	for _, f := range v.folds {
		if f.End < lineCount {
			kept = append(kept, f)
		}
	}
	v.folds = kept
}

// Dirty Tracking

// MarkDirty marks an inclusive span of model lines for redraw.
func (v *View) MarkDirty(start, end uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dirty.markSpan(start, end)
}

// MarkAllDirty marks every model line for redraw.
func (v *View) MarkAllDirty() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dirty.markFrom(0)
}

// IsLineDirty reports whether a model line awaits redraw.
func (v *View) IsLineDirty(line uint32) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dirty.isDirty(line)
}

// HasDirty reports whether anything awaits redraw.
func (v *View) HasDirty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.dirty.isEmpty()
}

// DirtySpans returns the coalesced dirty spans clamped to the model.
func (v *View) DirtySpans() []LineSpan {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dirty.resolved(v.model.LineCount())
}

// ClearDirty resets the dirty set after a redraw.
func (v *View) ClearDirty() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dirty.clear()
}

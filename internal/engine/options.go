package engine

import (
	"time"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/app"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/document"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/view"
)

// Default configuration values, mirrored from the component packages.
const (
	DefaultUndoLimit        = document.DefaultUndoLimit
	DefaultCoalesceWindow   = document.DefaultCoalesceWindow
	DefaultPreviewGraphemes = view.DefaultPreviewGraphemes
	DefaultWrapColumn       = view.DefaultWrapColumn
	DefaultTabWidth         = view.DefaultTabWidth
	DefaultViewportHeight   = view.DefaultViewportHeight
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithID sets the document id instead of generating one.
func WithID(id string) Option {
	return func(e *Engine) {
		e.id = id
	}
}

// WithEOL sets the line-ending style instead of detecting it from the
// content.
func WithEOL(eol EndOfLine) Option {
	return func(e *Engine) {
		e.eol = eol
		e.eolSet = true
	}
}

// WithUndoLimit caps the undo stack depth.
func WithUndoLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.undoLimit = n
		}
	}
}

// WithCoalesceWindow sets the window within which consecutive typing
// inserts merge into one undo element. Zero disables coalescing.
func WithCoalesceWindow(w time.Duration) Option {
	return func(e *Engine) {
		if w >= 0 {
			e.coalesceWindow = w
		}
	}
}

// WithChangeLogCapacity caps the change event ring buffer.
func WithChangeLogCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.logCapacity = n
		}
	}
}

// WithPreviewGraphemes caps viewport line previews at n grapheme
// clusters.
func WithPreviewGraphemes(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.previewGraphemes = n
		}
	}
}

// WithWrapColumn sets the cell width beyond which a line is flagged as
// wrapped.
func WithWrapColumn(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.wrapColumn = n
		}
	}
}

// WithTabWidth sets the tab stop width used for wrap measurement.
func WithTabWidth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.tabWidth = n
		}
	}
}

// WithViewportHeight sets the initial viewport height.
func WithViewportHeight(h uint32) Option {
	return func(e *Engine) {
		e.viewportHeight = h
	}
}

// WithReadOnly creates a read-only engine. Mutations return
// ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithDebugChecks verifies storage invariants after every mutation,
// panicking on violation.
func WithDebugChecks() Option {
	return func(e *Engine) {
		e.debugChecks = true
	}
}

// WithChangeListener installs a change listener at creation.
func WithChangeListener(fn ChangeListener) Option {
	return func(e *Engine) {
		e.listener = fn
	}
}

// WithLogger directs debug traces to the given logger.
func WithLogger(l *app.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

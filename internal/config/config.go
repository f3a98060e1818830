// Package config loads engine options for the RIDE command-line tools.
//
// Options are read from TOML or YAML files through a Loader. Keys absent
// from the file keep their defaults, so a config file only needs to name
// the settings it changes. A missing file is not an error: loaders return
// (nil, nil) and callers fall back to DefaultOptions.
package config

import (
	"strings"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/app"
)

// Options holds the tunable engine settings.
type Options struct {
	// UndoLimit caps the undo stack depth per document.
	UndoLimit int `toml:"undo_limit" yaml:"undo_limit"`

	// CoalesceWindowMS is how long after a typing insert the next one may
	// arrive and still merge into the same undo entry, in milliseconds.
	// Zero disables coalescing.
	CoalesceWindowMS int `toml:"coalesce_window_ms" yaml:"coalesce_window_ms"`

	// PreviewGraphemes caps viewport line previews at this many grapheme
	// clusters.
	PreviewGraphemes int `toml:"preview_graphemes" yaml:"preview_graphemes"`

	// WrapColumn is the cell width beyond which a viewport line reports
	// as wrapped.
	WrapColumn int `toml:"wrap_column" yaml:"wrap_column"`

	// TabWidth is the number of cells a tab advances when measuring width.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`

	// ChangeLogCapacity caps the ring buffer of content-change events
	// retained for ChangesSince.
	ChangeLogCapacity int `toml:"change_log_capacity" yaml:"change_log_capacity"`

	// DebugChecks verifies tree invariants after every edit.
	DebugChecks bool `toml:"debug_checks" yaml:"debug_checks"`

	// EOL is the end-of-line mode for new documents ("auto", "lf",
	// "crlf", "cr").
	EOL string `toml:"eol" yaml:"eol"`

	// LogLevel is the minimum log level ("debug", "info", "warn",
	// "error").
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() *Options {
	return &Options{
		UndoLimit:         1000,
		CoalesceWindowMS:  1000,
		PreviewGraphemes:  100,
		WrapColumn:        120,
		TabWidth:          4,
		ChangeLogCapacity: 1000,
		DebugChecks:       false,
		EOL:               "auto",
		LogLevel:          "info",
	}
}

// Validate reports every invalid field, not just the first.
func (o *Options) Validate() error {
	errs := app.NewErrorList()

	if o.UndoLimit <= 0 {
		errs.Addf("undo_limit must be positive, got %d", o.UndoLimit)
	}
	if o.CoalesceWindowMS < 0 {
		errs.Addf("coalesce_window_ms must not be negative, got %d", o.CoalesceWindowMS)
	}
	if o.PreviewGraphemes <= 0 {
		errs.Addf("preview_graphemes must be positive, got %d", o.PreviewGraphemes)
	}
	if o.WrapColumn <= 0 {
		errs.Addf("wrap_column must be positive, got %d", o.WrapColumn)
	}
	if o.TabWidth <= 0 {
		errs.Addf("tab_width must be positive, got %d", o.TabWidth)
	}
	if o.ChangeLogCapacity <= 0 {
		errs.Addf("change_log_capacity must be positive, got %d", o.ChangeLogCapacity)
	}

	switch o.EOL {
	case "auto", "lf", "crlf", "cr":
	default:
		errs.Addf("eol must be one of auto, lf, crlf, cr; got %q", o.EOL)
	}

	switch strings.ToLower(o.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs.Addf("log_level must be one of debug, info, warn, error; got %q", o.LogLevel)
	}

	return errs.AsError()
}

package config

import (
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.UndoLimit != 1000 {
		t.Errorf("UndoLimit = %d, want 1000", opts.UndoLimit)
	}
	if opts.CoalesceWindowMS != 1000 {
		t.Errorf("CoalesceWindowMS = %d, want 1000", opts.CoalesceWindowMS)
	}
	if opts.PreviewGraphemes != 100 {
		t.Errorf("PreviewGraphemes = %d, want 100", opts.PreviewGraphemes)
	}
	if opts.WrapColumn != 120 {
		t.Errorf("WrapColumn = %d, want 120", opts.WrapColumn)
	}
	if opts.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", opts.TabWidth)
	}
	if opts.ChangeLogCapacity != 1000 {
		t.Errorf("ChangeLogCapacity = %d, want 1000", opts.ChangeLogCapacity)
	}
	if opts.DebugChecks {
		t.Error("DebugChecks should default to false")
	}
	if opts.EOL != "auto" {
		t.Errorf("EOL = %q, want 'auto'", opts.EOL)
	}
	if opts.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want 'info'", opts.LogLevel)
	}
}

func TestOptions_Validate_Defaults(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("default options should validate, got: %v", err)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{
			name:    "zero undo limit",
			mutate:  func(o *Options) { o.UndoLimit = 0 },
			wantErr: "undo_limit",
		},
		{
			name:    "negative coalesce window",
			mutate:  func(o *Options) { o.CoalesceWindowMS = -1 },
			wantErr: "coalesce_window_ms",
		},
		{
			name:    "zero coalesce window is valid",
			mutate:  func(o *Options) { o.CoalesceWindowMS = 0 },
			wantErr: "",
		},
		{
			name:    "zero preview graphemes",
			mutate:  func(o *Options) { o.PreviewGraphemes = 0 },
			wantErr: "preview_graphemes",
		},
		{
			name:    "negative wrap column",
			mutate:  func(o *Options) { o.WrapColumn = -5 },
			wantErr: "wrap_column",
		},
		{
			name:    "zero tab width",
			mutate:  func(o *Options) { o.TabWidth = 0 },
			wantErr: "tab_width",
		},
		{
			name:    "zero change log capacity",
			mutate:  func(o *Options) { o.ChangeLogCapacity = 0 },
			wantErr: "change_log_capacity",
		},
		{
			name:    "bad eol",
			mutate:  func(o *Options) { o.EOL = "mixed" },
			wantErr: "eol",
		},
		{
			name:    "crlf eol is valid",
			mutate:  func(o *Options) { o.EOL = "crlf" },
			wantErr: "",
		},
		{
			name:    "bad log level",
			mutate:  func(o *Options) { o.LogLevel = "verbose" },
			wantErr: "log_level",
		},
		{
			name:    "warning log level is valid",
			mutate:  func(o *Options) { o.LogLevel = "WARNING" },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(opts)

			err := opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestOptions_Validate_Aggregates(t *testing.T) {
	opts := DefaultOptions()
	opts.UndoLimit = 0
	opts.TabWidth = -1
	opts.EOL = "bogus"

	err := opts.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	msg := err.Error()
	if !strings.Contains(msg, "3 errors") {
		t.Errorf("expected all 3 errors reported, got: %s", msg)
	}
	if !strings.Contains(msg, "undo_limit") {
		t.Errorf("expected first error to mention undo_limit, got: %s", msg)
	}
}

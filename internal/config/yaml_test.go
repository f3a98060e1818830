package config

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
undo_limit: 500
coalesce_window_ms: 250
preview_graphemes: 80
wrap_column: 100
tab_width: 8
change_log_capacity: 64
debug_checks: true
eol: crlf
log_level: debug
`)

	loader := NewYAMLLoaderWithFS(memfs, "/config.yaml")
	opts, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if opts.UndoLimit != 500 {
		t.Errorf("UndoLimit = %d, want 500", opts.UndoLimit)
	}
	if opts.CoalesceWindowMS != 250 {
		t.Errorf("CoalesceWindowMS = %d, want 250", opts.CoalesceWindowMS)
	}
	if !opts.DebugChecks {
		t.Error("DebugChecks = false, want true")
	}
	if opts.EOL != "crlf" {
		t.Errorf("EOL = %q, want 'crlf'", opts.EOL)
	}
	if opts.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want 'debug'", opts.LogLevel)
	}
}

func TestYAMLLoader_Load_UnsetKeysKeepDefaults(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `tab_width: 2`)

	loader := NewYAMLLoaderWithFS(memfs, "/config.yaml")
	opts, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if opts.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", opts.TabWidth)
	}
	if opts.UndoLimit != 1000 {
		t.Errorf("UndoLimit = %d, want default 1000", opts.UndoLimit)
	}
}

func TestYAMLLoader_LoadNonExistent(t *testing.T) {
	memfs := NewMemFS()
	loader := NewYAMLLoaderWithFS(memfs, "/nonexistent.yaml")

	opts, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if opts != nil {
		t.Error("expected nil options for non-existent file")
	}
}

func TestYAMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.yaml", "undo_limit: [unclosed")

	loader := NewYAMLLoaderWithFS(memfs, "/invalid.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Path != "/invalid.yaml" {
		t.Errorf("Path = %q, want '/invalid.yaml'", parseErr.Path)
	}
}

func TestYAMLLoader_LoadFromReader(t *testing.T) {
	loader := &YAMLLoader{}

	reader := strings.NewReader("wrap_column: 72\n")
	opts, err := loader.LoadFromReader(reader)
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}

	if opts.WrapColumn != 72 {
		t.Errorf("WrapColumn = %d, want 72", opts.WrapColumn)
	}
}

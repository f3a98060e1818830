package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ride.toml")
	if err := os.WriteFile(path, []byte("tab_width = 3\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	opts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if opts.TabWidth != 3 {
		t.Errorf("TabWidth = %d, want 3", opts.TabWidth)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, "ride"+ext)
		if err := os.WriteFile(path, []byte("tab_width: 3\n"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		opts, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) failed: %v", ext, err)
		}
		if opts.TabWidth != 3 {
			t.Errorf("LoadFile(%s): TabWidth = %d, want 3", ext, opts.TabWidth)
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	opts, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if opts != nil {
		t.Error("expected nil options for missing file")
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadFile("/tmp/config.json")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.txt")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	fsys := DefaultFS()

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("ReadFile = %q, want 'data'", data)
	}

	if _, err := fsys.Stat(path); err != nil {
		t.Errorf("Stat failed: %v", err)
	}

	f, err := fsys.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	f.Close()
}

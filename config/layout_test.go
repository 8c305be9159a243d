package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDataLayout(t *testing.T) {
	d := DefaultDataLayout()
	if d.PointerBytes != 8 || d.StructAlignDefault != 8 {
		t.Fatalf("unexpected default layout: %+v", d)
	}
}

func TestLoadDataLayoutFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vane.toml")
	if err := os.WriteFile(path, []byte("[layout]\npointer_bytes = 4\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	d, err := LoadDataLayout(path)
	if err != nil {
		t.Fatalf("LoadDataLayout returned an error: %v", err)
	}
	if d.PointerBytes != 4 {
		t.Fatalf("PointerBytes = %d, want 4", d.PointerBytes)
	}
	if d.StructAlignDefault != 8 {
		t.Fatalf("StructAlignDefault = %d, want default 8", d.StructAlignDefault)
	}
}

func TestLoadDataLayoutMissingFile(t *testing.T) {
	if _, err := LoadDataLayout(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected an error for a missing layout file")
	}
}

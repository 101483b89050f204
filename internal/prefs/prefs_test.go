package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "prefs.toml"))
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if !p.ConfirmDeletes {
		t.Fatal("ConfirmDeletes = false, want true by default")
	}
}

func TestLoad_CorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [broken"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	p := Load(path)
	if p.Theme != defaultTheme || !p.ConfirmDeletes {
		t.Fatalf("corrupt prefs produced %+v, want defaults", p)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	want := Prefs{Theme: "Gruvbox", ConfirmDeletes: false, GalleryFilter: "ensaios"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got := Load(path)
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestLoad_BlankThemeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = \"  \"\nconfirm_deletes = true\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if p := Load(path); p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want fallback", p.Theme)
	}
}

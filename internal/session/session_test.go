//nolint:testpackage // Tests require internal access for thorough testing
package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSessionSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	original := Session{Selected: "build-api", ViewMode: "Week", ViewDate: &date}
	if err := Save(tmpDir, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Selected != original.Selected {
		t.Errorf("Selected = %q, want %q", loaded.Selected, original.Selected)
	}
	if loaded.ViewMode != original.ViewMode {
		t.Errorf("ViewMode = %q, want %q", loaded.ViewMode, original.ViewMode)
	}
	if loaded.ViewDate == nil || !loaded.ViewDate.Equal(date) {
		t.Errorf("ViewDate = %v, want %v", loaded.ViewDate, date)
	}
	if loaded.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be stamped on save")
	}
}

func TestLoadMissing(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load of missing session failed: %v", err)
	}
	if s.Selected != "" || s.ViewMode != "" || s.ViewDate != nil {
		t.Errorf("expected empty session, got %+v", s)
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		id       string
		selected bool
		want     string
	}{
		{name: "select from empty", initial: "", id: "a", selected: true, want: "a"},
		{name: "select replaces", initial: "a", id: "b", selected: true, want: "b"},
		{name: "deselect current", initial: "a", id: "a", selected: false, want: ""},
		{name: "deselect other keeps", initial: "a", id: "b", selected: false, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if err := Save(tmpDir, Session{Selected: tt.initial}); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if err := Select(tmpDir, tt.id, tt.selected); err != nil {
				t.Fatalf("Select failed: %v", err)
			}
			s, err := Load(tmpDir)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if s.Selected != tt.want {
				t.Errorf("Selected = %q, want %q", s.Selected, tt.want)
			}
		})
	}
}

func TestForget(t *testing.T) {
	tmpDir := t.TempDir()

	// No session file: nothing to do and nothing created.
	if err := Forget(tmpDir, "a"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	if Exists(tmpDir) {
		t.Error("Forget should not create a session file")
	}

	if err := Save(tmpDir, Session{Selected: "a", ViewMode: "Day"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Forget(tmpDir, "a"); err != nil {
		t.Fatalf("Forget failed: %v", err)
	}
	s, _ := Load(tmpDir)
	if s.Selected != "" {
		t.Errorf("Selected = %q, want empty", s.Selected)
	}
	if s.ViewMode != "Day" {
		t.Errorf("ViewMode = %q, want Day", s.ViewMode)
	}
}

func TestSetView(t *testing.T) {
	tmpDir := t.TempDir()
	if err := Save(tmpDir, Session{Selected: "a"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	if err := SetView(tmpDir, "Month", &date); err != nil {
		t.Fatalf("SetView failed: %v", err)
	}
	s, _ := Load(tmpDir)
	if s.ViewMode != "Month" || s.ViewDate == nil {
		t.Errorf("view not stored: %+v", s)
	}
	if s.Selected != "a" {
		t.Errorf("SetView should keep selection, got %q", s.Selected)
	}

	if err := SetView(tmpDir, "", nil); err != nil {
		t.Fatalf("SetView failed: %v", err)
	}
	s, _ = Load(tmpDir)
	if s.ViewMode != "" || s.ViewDate != nil {
		t.Errorf("view not cleared: %+v", s)
	}
}

func TestSessionDelete(t *testing.T) {
	tmpDir := t.TempDir()

	if err := Save(tmpDir, Session{Selected: "a"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !Exists(tmpDir) {
		t.Error("Session should exist after Save")
	}

	if err := Delete(tmpDir); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if Exists(tmpDir) {
		t.Error("Session should not exist after Delete")
	}

	// Deleting again is not an error
	if err := Delete(tmpDir); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, sessionFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(tmpDir); err == nil {
		t.Error("Load of corrupt session should fail")
	}
}

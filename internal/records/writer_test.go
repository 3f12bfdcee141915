package records

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixClock(t *testing.T) {
	t.Helper()
	saved := nowFunc
	nowFunc = func() time.Time {
		return time.Date(2026, time.March, 14, 10, 30, 45, 0, time.UTC)
	}
	t.Cleanup(func() { nowFunc = saved })
}

func TestSaveDaily(t *testing.T) {
	fixClock(t)
	root := t.TempDir()
	w := NewWriter(filepath.Join(root, "records"), filepath.Join(root, "txt"))

	path, err := w.SaveDaily("Zara Khan", "document body")
	if err != nil {
		t.Fatalf("SaveDaily: %v", err)
	}

	want := filepath.Join(root, "records", "2026-03-14", "Zara Khan_103045.txt")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading record back: %v", err)
	}
	if string(data) != "document body" {
		t.Fatalf("record content = %q", data)
	}
}

func TestSaveDailySanitizesName(t *testing.T) {
	fixClock(t)
	root := t.TempDir()
	w := NewWriter(filepath.Join(root, "records"), filepath.Join(root, "txt"))

	path, err := w.SaveDaily("../etc/passwd: <Dr. Evil>  ", "x")
	if err != nil {
		t.Fatalf("SaveDaily: %v", err)
	}
	base := filepath.Base(path)
	if base != "etcpasswd Dr Evil_103045.txt" {
		t.Fatalf("sanitized file name = %q", base)
	}
	if filepath.Dir(path) != filepath.Join(root, "records", "2026-03-14") {
		t.Fatalf("record escaped the day folder: %q", path)
	}
}

func TestSaveDailyEmptyNameFallsBack(t *testing.T) {
	fixClock(t)
	root := t.TempDir()
	w := NewWriter(filepath.Join(root, "records"), filepath.Join(root, "txt"))

	path, err := w.SaveDaily("//<>//", "x")
	if err != nil {
		t.Fatalf("SaveDaily: %v", err)
	}
	if filepath.Base(path) != "patient_103045.txt" {
		t.Fatalf("expected fallback name, got %q", filepath.Base(path))
	}
}

func TestSaveDailyFailure(t *testing.T) {
	fixClock(t)
	root := t.TempDir()
	blocker := filepath.Join(root, "records")
	if err := os.WriteFile(blocker, []byte("a file where the folder should be"), 0o644); err != nil {
		t.Fatalf("seeding blocker: %v", err)
	}

	w := NewWriter(blocker, filepath.Join(root, "txt"))
	if _, err := w.SaveDaily("Zara", "x"); err == nil {
		t.Fatal("expected an error when the records root is not a directory")
	}
}

func TestExport(t *testing.T) {
	fixClock(t)
	root := t.TempDir()
	w := NewWriter(filepath.Join(root, "records"), filepath.Join(root, "txt"))

	path, err := w.Export("combined document")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := filepath.Join(root, "txt", "bill_prescription_20260314_103045.txt")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export back: %v", err)
	}
	if string(data) != "combined document" {
		t.Fatalf("export content = %q", data)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Zara Khan", "Zara Khan"},
		{"a/b\\c", "abc"},
		{"under_score 9", "under_score 9"},
		{"trailing   ", "trailing"},
		{"éclair Ünïcode", "éclair Ünïcode"},
		{"<>:\"|?*", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMultipleSavesSameSecondOverwrite(t *testing.T) {
	fixClock(t)
	root := t.TempDir()
	w := NewWriter(filepath.Join(root, "records"), filepath.Join(root, "txt"))

	if _, err := w.SaveDaily("Zara", "first"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	path, err := w.SaveDaily("Zara", "second")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("listing day folder: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected the frozen clock to produce one file, got %d", len(entries))
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "second") {
		t.Fatalf("latest write should win, got %q", data)
	}
}

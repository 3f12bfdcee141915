// Package records persists generated documents to disk, both the
// per-day clinic archive and one-off exports requested by the user.
package records

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// nowFunc returns the current time. Tests may swap it out.
var nowFunc = time.Now

// Writer saves rendered documents under the clinic's records tree and
// the export directory.
type Writer struct {
	recordsDir string
	exportDir  string
}

func NewWriter(recordsDir, exportDir string) *Writer {
	return &Writer{recordsDir: recordsDir, exportDir: exportDir}
}

// SaveDaily writes text into the day folder for the current date. The
// file name carries the sanitized patient name and a time suffix so
// repeated visits on the same day never collide.
func (w *Writer) SaveDaily(patientName, text string) (string, error) {
	now := nowFunc()
	dir := filepath.Join(w.recordsDir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("records: create day folder: %w", err)
	}

	name := SanitizeName(patientName)
	if name == "" {
		name = "patient"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, now.Format("150405")))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("records: write record: %w", err)
	}
	return path, nil
}

// Export writes text to a timestamped file in the export directory and
// returns the path for display to the user.
func (w *Writer) Export(text string) (string, error) {
	if err := os.MkdirAll(w.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("records: create export folder: %w", err)
	}

	path := filepath.Join(w.exportDir, fmt.Sprintf("bill_prescription_%s.txt", nowFunc().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("records: write export: %w", err)
	}
	return path, nil
}

// SanitizeName strips characters that are unsafe in file names,
// keeping letters, digits, spaces and underscores, then trims
// trailing spaces.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

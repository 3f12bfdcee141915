// Package appointments tracks booked appointments in a single JSON array
// file, rewritten wholesale on every mutation.
//
// Reads are lenient: a missing or malformed file degrades to an empty list.
// Dates are ISO calendar dates (YYYY-MM-DD), so lexicographic order on the
// stored strings is chronological order. The store is not safe for
// concurrent use; the application drives it from a single goroutine.
package appointments

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/adilwahab585-svg/Reimagine-clinic/pkg/logging"
)

const dateLayout = "2006-01-02"

var nowFunc = time.Now

// Record is one booked appointment.
type Record struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
}

// Store binds the appointment list to its backing file.
type Store struct {
	path   string
	logger *logging.Logger
}

// NewStore creates a store for the appointment file at path.
func NewStore(path string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{path: path, logger: logger}
}

// Load reads all stored records. A missing file or any parse error yields an
// empty list; Load never fails.
func (s *Store) Load() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("appointments: unreadable file, starting empty", "path", s.path, "error", err)
		}
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("appointments: malformed file, starting empty", "path", s.path, "error", err)
		return nil
	}
	return records
}

// Book validates the fields, appends a new record, and persists the list.
func (s *Store) Book(name, phone, date string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	date = strings.TrimSpace(date)
	if name == "" || phone == "" || date == "" {
		return ErrMissingFields
	}
	if err := validateDate(date); err != nil {
		return err
	}
	records := append(s.Load(), Record{Name: name, Phone: phone, Date: date})
	return s.save(records)
}

// Upcoming returns copies of the records dated today or later, sorted
// ascending by date. Records whose date does not parse are skipped.
func (s *Store) Upcoming() []Record {
	today := nowFunc().Format(dateLayout)
	var upcoming []Record
	for _, rec := range s.Load() {
		if _, err := time.Parse(dateLayout, rec.Date); err != nil {
			continue
		}
		if rec.Date >= today {
			upcoming = append(upcoming, rec)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date < upcoming[j].Date
	})
	return upcoming
}

// Search filters records by a case-insensitive substring match on name or a
// substring match on phone. An empty query returns the input unchanged.
func Search(records []Record, query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	var filtered []Record
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), q) || strings.Contains(rec.Phone, q) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// Delete removes the first record equal to target and persists. With no
// match it reports false and leaves the file untouched.
func (s *Store) Delete(target Record) (bool, error) {
	records := s.Load()
	for i, rec := range records {
		if rec == target {
			records = append(records[:i], records[i+1:]...)
			return true, s.save(records)
		}
	}
	return false, nil
}

// Edit merges the new date and phone into target (empty values keep the old
// ones), validates the date like Book, and replaces the first stored record
// carrying the target's name. The match is by name alone, so a patient with
// several appointments gets the first one updated. An unmatched name is
// appended as a new record.
func (s *Store) Edit(target Record, newDate, newPhone string) error {
	updated := target
	if newDate = strings.TrimSpace(newDate); newDate != "" {
		if err := validateDate(newDate); err != nil {
			return err
		}
		updated.Date = newDate
	}
	if newPhone = strings.TrimSpace(newPhone); newPhone != "" {
		updated.Phone = newPhone
	}

	records := s.Load()
	replaced := false
	for i, rec := range records {
		if rec.Name == target.Name {
			records[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, updated)
	}
	return s.save(records)
}

// Reminder returns the records dated exactly tomorrow, in file order.
func (s *Store) Reminder() []Record {
	tomorrow := nowFunc().AddDate(0, 0, 1).Format(dateLayout)
	var due []Record
	for _, rec := range s.Load() {
		if rec.Date == tomorrow {
			due = append(due, rec)
		}
	}
	return due
}

func (s *Store) save(records []Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("appointments: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("appointments: save %s: %w", s.path, err)
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrDateFormat
	}
	if date < nowFunc().Format(dateLayout) {
		return ErrPastDate
	}
	return nil
}

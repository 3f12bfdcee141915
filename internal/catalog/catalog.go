// Package catalog maintains the clinic's treatment price list, persisted as
// a single JSON object mapping treatment name to price in rupees.
//
// Reads are lenient: a missing or malformed file degrades to an empty
// catalog. Writes are strict: every mutation rewrites the whole file and
// reports failures to the caller. The catalog is not safe for concurrent
// use; the application drives it from a single goroutine.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/adilwahab585-svg/Reimagine-clinic/pkg/logging"
)

// Entry is one priced treatment, used for sorted listings.
type Entry struct {
	Name  string
	Price int
}

// Catalog is the in-memory treatment price list bound to its backing file.
type Catalog struct {
	path  string
	items map[string]int
}

// Load reads the catalog file at path. A missing file or any parse or type
// error yields an empty catalog; Load never fails.
func Load(path string, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Catalog{path: path, items: map[string]int{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("catalog: unreadable file, starting empty", "path", path, "error", err)
		}
		return c
	}
	var items map[string]int
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("catalog: malformed file, starting empty", "path", path, "error", err)
		return c
	}
	if items != nil {
		c.items = items
	}
	return c
}

// Add inserts a new treatment and persists the full catalog. The in-memory
// insert survives a failed persist so the user can retry the save.
func (c *Catalog) Add(name string, price int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := c.items[name]; ok {
		return ErrDuplicateName
	}
	if price < 1 {
		return ErrInvalidPrice
	}
	c.items[name] = price
	return c.Save()
}

// Remove deletes each present name and persists. Names not found are
// silently ignored; when nothing was removed the file is left untouched.
func (c *Catalog) Remove(names ...string) error {
	removed := false
	for _, name := range names {
		if _, ok := c.items[name]; ok {
			delete(c.items, name)
			removed = true
		}
	}
	if !removed {
		return nil
	}
	return c.Save()
}

// Save rewrites the whole catalog file.
func (c *Catalog) Save() error {
	data, err := json.MarshalIndent(c.items, "", "    ")
	if err != nil {
		return fmt.Errorf("catalog: marshal: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("catalog: save %s: %w", c.path, err)
	}
	return nil
}

// Price returns the listed price for a treatment name.
func (c *Catalog) Price(name string) (int, bool) {
	price, ok := c.items[name]
	return price, ok
}

// Names returns all treatment names sorted ascending.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.items))
	for name := range c.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Items returns all entries sorted by name, for display.
func (c *Catalog) Items() []Entry {
	entries := make([]Entry, 0, len(c.items))
	for _, name := range c.Names() {
		entries = append(entries, Entry{Name: name, Price: c.items[name]})
	}
	return entries
}

// Len is the number of treatments in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

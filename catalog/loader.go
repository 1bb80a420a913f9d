package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

/* Loader manages the seed catalog from books.yaml
 * Provides in-memory lookup by ISBN for fast access
 */

// Config represents the structure of books.yaml
type Config struct {
	Books []EntryConfig `yaml:"books"`
}

// EntryConfig represents a single book in the YAML file
type EntryConfig struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	ISBN   string `yaml:"isbn"`
}

// Entry is a validated seed catalog entry
type Entry struct {
	Title  string
	Author string
	ISBN   string
}

// Validate checks if the entry is complete and its ISBN well formed
func (e *Entry) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("title cannot be empty for isbn %q", e.ISBN)
	}
	if e.Author == "" {
		return fmt.Errorf("author cannot be empty for %q", e.Title)
	}
	if e.ISBN == "" {
		return fmt.Errorf("isbn cannot be empty for %q", e.Title)
	}
	if err := validateISBN(e.ISBN); err != nil {
		return fmt.Errorf("invalid isbn for %q: %w", e.Title, err)
	}
	return nil
}

// validateISBN accepts ISBN-10 and ISBN-13 shapes, hyphens allowed.
// ISBN-10 may end with an X check digit.
func validateISBN(isbn string) error {
	digits := strings.ReplaceAll(isbn, "-", "")
	switch len(digits) {
	case 10:
		for i, c := range digits {
			if c >= '0' && c <= '9' {
				continue
			}
			if i == 9 && (c == 'X' || c == 'x') {
				continue
			}
			return fmt.Errorf("unexpected character %q", c)
		}
	case 13:
		for _, c := range digits {
			if c < '0' || c > '9' {
				return fmt.Errorf("unexpected character %q", c)
			}
		}
	default:
		return fmt.Errorf("expected 10 or 13 digits, got %d", len(digits))
	}
	return nil
}

// Loader holds the loaded catalog
type Loader struct {
	entries map[string]*Entry
	order   []string
}

// NewLoader creates a new catalog loader
func NewLoader() *Loader {
	return &Loader{
		entries: make(map[string]*Entry),
	}
}

// Load reads and parses the books.yaml file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading catalog file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing catalog YAML: %w", err)
	}

	for _, ec := range config.Books {
		entry := &Entry{
			Title:  ec.Title,
			Author: ec.Author,
			ISBN:   ec.ISBN,
		}

		if err := entry.Validate(); err != nil {
			return fmt.Errorf("validating catalog entry: %w", err)
		}

		if _, dup := l.entries[entry.ISBN]; dup {
			return fmt.Errorf("duplicated isbn in catalog: %s", entry.ISBN)
		}

		l.entries[entry.ISBN] = entry
		l.order = append(l.order, entry.ISBN)
	}

	return nil
}

// Get retrieves an entry by its ISBN
func (l *Loader) Get(isbn string) (*Entry, error) {
	entry, exists := l.entries[isbn]
	if !exists {
		return nil, fmt.Errorf("entry not found: %s", isbn)
	}
	return entry, nil
}

// List returns all loaded entries in file order
func (l *Loader) List() []*Entry {
	entries := make([]*Entry, 0, len(l.entries))
	for _, isbn := range l.order {
		entries = append(entries, l.entries[isbn])
	}
	return entries
}

// Exists checks if an ISBN is in the catalog
func (l *Loader) Exists(isbn string) bool {
	_, exists := l.entries[isbn]
	return exists
}

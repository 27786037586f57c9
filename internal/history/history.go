// Package history keeps a small record of recently presented decks and the
// position reached in each, so a deck can be reopened where it was left.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// maxEntries caps the history length; older decks fall off the end.
const maxEntries = 20

// Entry records one recently opened deck.
type Entry struct {
	Path     string    `json:"path"`
	Index    int       `json:"index"`
	Total    int       `json:"total"`
	OpenedAt time.Time `json:"opened_at"`
}

// File is a JSON-backed history store.
type File struct {
	path string
}

// New creates a store backed by the given file path.
func New(path string) *File {
	return &File{path: path}
}

// Default returns the store at the standard location,
// $XDG_CONFIG_HOME/preso/recent.json.
func Default() (*File, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return New(filepath.Join(dir, "preso", "recent.json")), nil
}

// Load reads all entries, newest first. A missing file is an empty history.
func (f *File) Load() ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

// Record inserts or refreshes the entry for deckPath and persists the file.
func (f *File) Record(deckPath string, index, total int) error {
	entries, err := f.Load()
	if err != nil {
		// A corrupt history file should not block recording; start over.
		entries = nil
	}

	updated := []Entry{{
		Path:     deckPath,
		Index:    index,
		Total:    total,
		OpenedAt: time.Now().UTC(),
	}}
	for _, e := range entries {
		if e.Path == deckPath {
			continue
		}
		updated = append(updated, e)
		if len(updated) == maxEntries {
			break
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	data, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

package bookmark

import (
	"fmt"
	"os"
)

// Store reads and writes the bookmark token for a single deck. The token
// lives in a sidecar file so that the position survives restarts and can be
// edited externally while the presentation runs.
type Store struct {
	path string
}

// NewStore creates a store for the deck at deckPath. The sidecar file is
// "<deckPath>.bookmark".
func NewStore(deckPath string) *Store {
	return &Store{path: deckPath + ".bookmark"}
}

// Path returns the sidecar file location.
func (s *Store) Path() string { return s.path }

// Read parses the stored token. A missing file or malformed content yields
// ok=false; both are expected states, not errors.
func (s *Store) Read() (index int, ok bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, false
	}
	return Parse(string(data))
}

// Write stores the token, replacing any previous content.
func (s *Store) Write(token string) error {
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o644); err != nil {
		return fmt.Errorf("write bookmark: %w", err)
	}
	return nil
}

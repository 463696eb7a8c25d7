package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"docvault/internal/domain/models"
)

// Store persists a mirror State as a JSON file. Saves go through a
// temp file plus rename so a crash mid-write never corrupts the
// previous snapshot.
type Store struct {
	path string
}

// NewStore creates a store rooted at the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted state. A missing file yields a fresh empty
// state rather than an error.
func (st *Store) Load() (*State, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("read mirror state: %w", err)
	}

	state := NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode mirror state: %w", err)
	}

	// Maps may be nil after decoding an old or sparse file
	if state.Documents == nil {
		state.Documents = make(map[string]models.Document)
	}
	if state.Folders == nil {
		state.Folders = make(map[string]models.Folder)
	}
	if state.Tags == nil {
		state.Tags = make(map[string]models.Tag)
	}
	if state.Reminders == nil {
		state.Reminders = make(map[string]models.Reminder)
	}
	if state.Notes == nil {
		state.Notes = make(map[string]models.Note)
	}
	return state, nil
}

// Save writes the state atomically.
func (st *Store) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mirror state: %w", err)
	}

	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mirror-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write mirror state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, st.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace mirror state: %w", err)
	}

	return nil
}

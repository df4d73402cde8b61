package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists ledger state as a single JSON file. Each save writes
// a temp file and renames it over the original, so a crash mid-write never
// truncates the ledger.
type FileStore struct {
	filePath string
}

// NewFileStore creates a store backed by the given file, creating the
// parent directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	return &FileStore{filePath: path}, nil
}

// Load reads the full ledger state. A missing file is an empty ledger.
func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("failed to parse ledger file: %w", err)
	}
	return state, nil
}

// Save rewrites the full ledger state atomically.
func (s *FileStore) Save(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename ledger file: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	state State
	saves int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the current state.
func (s *MemoryStore) Load() (State, error) { return s.state, nil }

// Save replaces the current state.
func (s *MemoryStore) Save(state State) error {
	s.state = state
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *MemoryStore) Saves() int { return s.saves }

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

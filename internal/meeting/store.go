package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRepository is a JSON-file backed Repository. The file is read fully
// and rewritten fully on each mutation; writes go through a temp file and
// rename so a crash never leaves truncated state.
type FileRepository struct {
	mu       sync.Mutex
	filePath string
}

// NewFileRepository creates a repository backed by the given file. The
// parent directory is created if missing; a missing file means no meetings.
func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create meetings directory: %w", err)
	}
	return &FileRepository{filePath: path}, nil
}

// All returns every stored meeting in file order.
func (r *FileRepository) All(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// MarkAnalyzed sets the analyzed flag for the given meeting ids.
func (r *FileRepository) MarkAnalyzed(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	for i := range records {
		if want[records[i].ID] {
			records[i].Analyzed = true
			ts := at
			records[i].AnalyzedAt = &ts
		}
	}

	return r.save(records)
}

// Replace overwrites the full meeting set. Used by the host side when
// meetings are created or deleted.
func (r *FileRepository) Replace(records []Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(records)
}

func (r *FileRepository) load() ([]Record, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read meetings file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse meetings file: %w", err)
	}
	return records, nil
}

func (r *FileRepository) save(records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal meetings: %w", err)
	}

	// Write atomically
	tmpPath := r.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write meetings: %w", err)
	}
	if err := os.Rename(tmpPath, r.filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename meetings file: %w", err)
	}
	return nil
}

// Ensure FileRepository implements Repository.
var _ Repository = (*FileRepository)(nil)

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkoster/tally/internal/models"
)

// FileStore keeps the document as a single pretty-printed JSON artifact.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (store *FileStore) Load() (models.Document, error) {
	raw, err := os.ReadFile(store.path)
	if err != nil {
		return models.EmptyDocument(), nil
	}

	var document models.Document
	if err := json.Unmarshal(raw, &document); err != nil {
		return models.EmptyDocument(), nil
	}
	if document.Users == nil {
		document.Users = []models.User{}
	}
	if document.Habits == nil {
		document.Habits = []models.Habit{}
	}
	return document, nil
}

// Save writes to a temporary file in the same directory and renames it
// over the target, so a crash mid-write leaves the previous document
// intact.
func (store *FileStore) Save(document models.Document) error {
	raw, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(store.path), ".tally-*.json")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(raw); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close temp document: %w", err)
	}

	if err := os.Rename(tempPath, store.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

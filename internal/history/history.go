// Package history persists the previously generated document between runs,
// plus a log of generation cycles.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gxrwes/CS2QuickSetup/internal/log"
	"github.com/gxrwes/CS2QuickSetup/internal/types"
)

// ErrNoPrevious is returned when no document has been stored yet
var ErrNoPrevious = errors.New("no previous document")

// Store holds the single previous-document slot
type Store interface {
	LoadPrevious() (types.PreviousDocument, error)
	StorePrevious(doc types.PreviousDocument) (types.PreviousDocument, error)
	ClearPrevious() error
	Close() error
}

// Open returns the SQLite store, or a JSON file store next to dbPath when SQLite is unavailable
func Open(dbPath string) (Store, error) {
	m, err := NewManager(dbPath)
	if err == nil {
		return m, nil
	}

	log.Warn("SQLite state unavailable, falling back to file store", "error", err)
	return NewFileStore(filepath.Join(filepath.Dir(dbPath), "previous.json"))
}

// Previous loads the stored document text, treating an empty slot as an empty document
func Previous(s Store) (string, error) {
	doc, err := s.LoadPrevious()
	if errors.Is(err, ErrNoPrevious) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return doc.Document, nil
}

// FileStore keeps the previous document in a JSON file
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) LoadPrevious() (types.PreviousDocument, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return types.PreviousDocument{}, ErrNoPrevious
	}
	if err != nil {
		return types.PreviousDocument{}, fmt.Errorf("failed to read previous document: %w", err)
	}

	var doc types.PreviousDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.PreviousDocument{}, fmt.Errorf("failed to parse previous document: %w", err)
	}
	return doc, nil
}

func (f *FileStore) StorePrevious(doc types.PreviousDocument) (types.PreviousDocument, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return types.PreviousDocument{}, fmt.Errorf("failed to marshal previous document: %w", err)
	}

	// Write then rename so a crash never leaves a torn file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return types.PreviousDocument{}, fmt.Errorf("failed to write previous document: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return types.PreviousDocument{}, fmt.Errorf("failed to replace previous document: %w", err)
	}

	return doc, nil
}

func (f *FileStore) ClearPrevious() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear previous document: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

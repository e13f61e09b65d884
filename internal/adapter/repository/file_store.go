package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"resume-composer/internal/domain"
	"resume-composer/internal/model"
)

// FileStore keeps one JSON file per document under <dir>/documents and
// appends export records to <dir>/exports.jsonl.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "documents"), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, "documents", id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (model.Document, error) {
	if !ValidID(id) {
		return model.Document{}, ErrInvalidID
	}
	b, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return model.Document{}, ErrNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("reading document %s: %w", id, err)
	}
	return model.Decode(b)
}

// Save writes the document through a temp file and rename so a crash never
// leaves a half-written document behind.
func (s *FileStore) Save(ctx context.Context, id string, doc model.Document) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	b, err := model.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Join(s.dir, "documents"), id+".*.tmp")
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("saving document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving document: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

func (s *FileStore) RecordExport(ctx context.Context, e domain.Export) error {
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(s.dir, "exports.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

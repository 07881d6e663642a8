package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/axiome/firstprinciples/pkg/errors"
)

// FileStore is a file-based document store for the CLI.
// Documents are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based document store.
// If baseDir is empty, defaults to ~/.config/firstprinciples/documents/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "firstprinciples", "documents")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) documentPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Create(_ context.Context, doc *Document) error {
	if err := prepareCreate(doc); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.documentPath(doc.ID)); err == nil {
		return errors.New(errors.ErrCodeInvalidID, "document %s already exists", doc.ID)
	}
	return s.write(doc)
}

func (s *FileStore) Get(_ context.Context, id string) (*Document, error) {
	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, notFound(id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) List(_ context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		doc, err := s.read(entry.Name()[:len(entry.Name())-len(".json")])
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	slices.SortStableFunc(docs, func(a, b *Document) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return docs, nil
}

func (s *FileStore) Update(_ context.Context, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateDocumentID(doc.ID); err != nil {
		return notFound(doc.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.read(doc.ID)
	if err != nil {
		return err
	}
	cur.Title, cur.Kind, cur.Source, cur.Directed = doc.Title, doc.Kind, doc.Source, doc.Directed
	cur.UpdatedAt = now()
	if err := s.write(cur); err != nil {
		return err
	}
	*doc = *cur
	return nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := errors.ValidateDocumentID(id); err != nil {
		return notFound(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.documentPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return fmt.Errorf("remove document file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for document files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) read(id string) (*Document, error) {
	data, err := os.ReadFile(s.documentPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read document file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &doc, nil
}

func (s *FileStore) write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := os.WriteFile(s.documentPath(doc.ID), data, 0600); err != nil {
		return fmt.Errorf("write document file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)

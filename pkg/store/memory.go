package store

import (
	"context"
	"slices"
	"sync"

	"github.com/axiome/firstprinciples/pkg/errors"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	order []string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

func (s *MemoryStore) Create(_ context.Context, doc *Document) error {
	if err := prepareCreate(doc); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doc.ID]; ok {
		return errors.New(errors.ErrCodeInvalidID, "document %s already exists", doc.ID)
	}
	cp := *doc
	s.docs[doc.ID] = &cp
	s.order = append(s.order, doc.ID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *doc
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.docs[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.docs[doc.ID]
	if !ok {
		return notFound(doc.ID)
	}
	cur.Title, cur.Kind, cur.Source, cur.Directed = doc.Title, doc.Kind, doc.Source, doc.Directed
	cur.UpdatedAt = now()
	*doc = *cur
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return notFound(id)
	}
	delete(s.docs, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)

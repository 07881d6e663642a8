// Package store persists editor documents.
//
// A [Document] is the content of one editor tab: either an adjacency list
// that is converted on the fly, or Mermaid text edited directly. The
// [Store] interface has implementations for different backends:
//   - [MemoryStore]: in-process storage for development and tests
//   - [FileStore]: one JSON file per document, used by the CLI
//   - [MongoStore]: MongoDB collection for the API server
//
// # Usage
//
//	doc, err := store.NewDocument("Traversal", store.KindAdjacency, "A: B, C", true)
//	if err != nil {
//	    return err
//	}
//	if err := s.Create(ctx, doc); err != nil {
//	    return err
//	}
//
//	doc, err = s.Get(ctx, doc.ID)
//	if errors.Is(err, errors.ErrCodeDocumentNotFound) {
//	    // deleted in the meantime
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/axiome/firstprinciples/pkg/errors"
)

// Kind is the syntax of a document's source.
type Kind string

const (
	// KindAdjacency is a plain-text adjacency list ("A: B, C").
	KindAdjacency Kind = "adjacency"

	// KindMermaid is Mermaid flowchart text.
	KindMermaid Kind = "mermaid"
)

// MaxSourceBytes bounds a stored document's source.
const MaxSourceBytes = 1 << 20

// Document is one saved editor buffer.
type Document struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Kind      Kind      `json:"kind" bson:"kind"`
	Source    string    `json:"source" bson:"source"`
	Directed  bool      `json:"directed" bson:"directed"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for document storage backends.
type Store interface {
	// Create stores a new document. doc.ID must be unset or unused.
	Create(ctx context.Context, doc *Document) error

	// Get retrieves a document by ID.
	// Returns an ErrCodeDocumentNotFound error if it doesn't exist.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns all documents, oldest first.
	List(ctx context.Context) ([]*Document, error)

	// Update replaces the title, kind, source and direction of an existing
	// document and bumps UpdatedAt.
	Update(ctx context.Context, doc *Document) error

	// Delete removes a document.
	Delete(ctx context.Context, id string) error

	Close() error
}

// NewDocument creates a validated document with a fresh ID and timestamps.
func NewDocument(title string, kind Kind, source string, directed bool) (*Document, error) {
	now := now()
	doc := &Document{
		ID:        uuid.NewString(),
		Title:     title,
		Kind:      kind,
		Source:    source,
		Directed:  directed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks the document's user-supplied fields. An empty Kind is
// treated as KindAdjacency.
func (d *Document) Validate() error {
	if d.Kind == "" {
		d.Kind = KindAdjacency
	}
	if d.Kind != KindAdjacency && d.Kind != KindMermaid {
		return errors.New(errors.ErrCodeInvalidKind, "unknown document kind %q (want %q or %q)", d.Kind, KindAdjacency, KindMermaid)
	}
	if err := errors.ValidateTitle(d.Title); err != nil {
		return err
	}
	return errors.ValidateSource(d.Source, MaxSourceBytes)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", id)
}

// prepareCreate fills in an ID and timestamps and validates doc.
func prepareCreate(doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	} else if err := errors.ValidateDocumentID(doc.ID); err != nil {
		return err
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now()
	}
	doc.UpdatedAt = doc.CreatedAt
	return doc.Validate()
}

// now is truncated to the millisecond, the precision MongoDB keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

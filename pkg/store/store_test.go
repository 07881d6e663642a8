package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/axiome/firstprinciples/pkg/errors"
)

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		kind     Kind
		source   string
		wantCode errors.Code
	}{
		{"adjacency", "Traversal", KindAdjacency, "A: B, C", ""},
		{"default kind", "Traversal", "", "A: B", ""},
		{"mermaid", "Diagram", KindMermaid, "graph TD\n    A --> B", ""},
		{"empty source ok", "Empty", KindAdjacency, "", ""},
		{"bad kind", "X", "dot", "", errors.ErrCodeInvalidKind},
		{"blank title", "  ", KindAdjacency, "", errors.ErrCodeInvalidDocument},
		{"too large", "Big", KindAdjacency, strings.Repeat("x", MaxSourceBytes+1), errors.ErrCodeSourceTooLarge},
		{"null byte", "Bad", KindAdjacency, "A\x00: B", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewDocument(tt.title, tt.kind, tt.source, false)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
			if err != nil {
				return
			}
			if errors.ValidateDocumentID(doc.ID) != nil {
				t.Errorf("ID %q is not a UUID", doc.ID)
			}
			if doc.Kind == "" || doc.CreatedAt.IsZero() || !doc.CreatedAt.Equal(doc.UpdatedAt) {
				t.Errorf("unexpected document %+v", doc)
			}
		})
	}
}

// testStore runs the Store contract against a fresh backend.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	first := &Document{Title: "First", Source: "A: B"}
	if err := s.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == "" || first.Kind != KindAdjacency {
		t.Fatalf("Create did not fill defaults: %+v", first)
	}

	second, _ := NewDocument("Second", KindMermaid, "graph TD", true)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	if err := s.Create(ctx, second); err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if err := s.Create(ctx, &Document{ID: first.ID, Title: "Dup"}); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("duplicate Create error = %v", err)
	}

	got, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "First" || got.Source != "A: B" || !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("Get = %+v", got)
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != first.ID || docs[1].ID != second.ID {
		t.Errorf("List order wrong: %v", docs)
	}

	upd := &Document{ID: first.ID, Title: "Renamed", Kind: KindAdjacency, Source: "A: B, C", Directed: true}
	if err := s.Update(ctx, upd); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !upd.CreatedAt.Equal(first.CreatedAt) || upd.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("Update timestamps: %+v", upd)
	}
	got, _ = s.Get(ctx, first.ID)
	if got.Title != "Renamed" || got.Source != "A: B, C" || !got.Directed {
		t.Errorf("after Update, Get = %+v", got)
	}

	missing := "00000000-0000-4000-8000-000000000000"
	if _, err := s.Get(ctx, missing); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("Get missing error = %v", err)
	}
	if err := s.Update(ctx, &Document{ID: missing, Title: "x"}); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("Update missing error = %v", err)
	}
	if err := s.Update(ctx, &Document{ID: first.ID, Title: ""}); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Update invalid error = %v", err)
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, first.ID); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("second Delete error = %v", err)
	}
	docs, _ = s.List(ctx)
	if len(docs) != 1 || docs[0].ID != second.ID {
		t.Errorf("List after Delete = %v", docs)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	doc := &Document{Title: "T", Source: "A: B"}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatal(err)
	}
	doc.Title = "mutated"

	got, _ := s.Get(ctx, doc.ID)
	got.Source = "mutated"

	again, _ := s.Get(ctx, doc.ID)
	if again.Title != "T" || again.Source != "A: B" {
		t.Errorf("store shares memory with callers: %+v", again)
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if s.Path() != dir {
		t.Errorf("Path() = %q, want %q", s.Path(), dir)
	}
	testStore(t, s)
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	ctx := context.Background()

	if err := s.Create(ctx, &Document{Title: "T"}); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0600)

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Errorf("List returned %d documents, want 1", len(docs))
	}

	if _, err := s.Get(ctx, "../escape"); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("Get with path id error = %v", err)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "firstprinciples_test_" + time.Now().Format("20060102150405")
	s, err := NewMongoStore(ctx, uri, db)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()
	defer s.client.Database(db).Drop(context.Background())
	testStore(t, s)
}

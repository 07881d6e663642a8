package api

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/axiome/firstprinciples/pkg/buildinfo"
	"github.com/axiome/firstprinciples/pkg/concepts"
	"github.com/axiome/firstprinciples/pkg/errors"
	"github.com/axiome/firstprinciples/pkg/pipeline"
	"github.com/axiome/firstprinciples/pkg/render/mermaid"
	"github.com/axiome/firstprinciples/pkg/store"
)

// Title is the service name reported by GET /.
const Title = "First Principles Backend"

// Handlers holds the dependencies shared by all routes.
type Handlers struct {
	Runner   *pipeline.Runner
	Concepts *concepts.Service
	Store    store.Store
	Logger   *log.Logger
}

// NewHandlers fills nil dependencies with in-process defaults.
func NewHandlers(runner *pipeline.Runner, svc *concepts.Service, st store.Store, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if svc == nil {
		svc = concepts.NewService(nil, logger, 0)
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	return &Handlers{Runner: runner, Concepts: svc, Store: st, Logger: logger}
}

// Root reports the service name and build version.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": Title + " API", "version": buildinfo.Get().Version})
}

// Health is the liveness probe.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// =============================================================================
// Concepts
// =============================================================================

// ConceptMessage answers a concept question through the concepts service.
func (h *Handlers) ConceptMessage(w http.ResponseWriter, r *http.Request) {
	var req concepts.Request
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	resp, err := h.Concepts.Handle(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ConceptTopics lists the built-in topics.
func (h *Handlers) ConceptTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"topics": concepts.Topics})
}

// =============================================================================
// Diagrams
// =============================================================================

type convertRequest struct {
	Source   string `json:"source"`
	Directed bool   `json:"directed"`
}

type convertResponse struct {
	Mermaid  string `json:"mermaid"`
	Vertices int    `json:"vertices"`
	Edges    int    `json:"edges"`
}

// Convert returns the Mermaid markup for an adjacency list.
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	opts := pipeline.Options{Source: req.Source, Directed: req.Directed, Formats: []string{pipeline.FormatMermaid}}
	res, err := h.Runner.Execute(r.Context(), opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Mermaid:  string(res.Artifacts[pipeline.FormatMermaid]),
		Vertices: res.Stats.VertexCount,
		Edges:    res.Stats.EdgeCount,
	})
}

type renderRequest struct {
	Source   string  `json:"source"`
	Directed bool    `json:"directed"`
	Format   string  `json:"format"`
	Scale    float64 `json:"scale"`
	Refresh  bool    `json:"refresh"`
}

// Render returns a single artifact as the response body. The format
// defaults to SVG.
func (h *Handlers) Render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = pipeline.FormatSVG
	}
	res, err := h.Runner.Execute(r.Context(), pipeline.Options{
		Source:   req.Source,
		Directed: req.Directed,
		Formats:  []string{format},
		Scale:    req.Scale,
		Refresh:  req.Refresh,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if pipeline.IsImage(format) {
		if res.CacheInfo.RenderHit {
			w.Header().Set("X-Cache", "hit")
		} else {
			w.Header().Set("X-Cache", "miss")
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// =============================================================================
// Documents
// =============================================================================

type documentRequest struct {
	Title    string     `json:"title"`
	Kind     store.Kind `json:"kind"`
	Source   string     `json:"source"`
	Directed bool       `json:"directed"`
}

// ListDocuments returns every saved document, oldest first.
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Store.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*store.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// CreateDocument saves a new document.
func (h *Handlers) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	doc, err := store.NewDocument(req.Title, req.Kind, req.Source, req.Directed)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Store.Create(r.Context(), doc); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/documents/"+doc.ID)
	writeJSON(w, http.StatusCreated, doc)
}

// GetDocument returns one document by ID.
func (h *Handlers) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.document(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// UpdateDocument replaces a document's title, kind, source and direction.
func (h *Handlers) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDocumentID(id); err != nil {
		h.writeError(w, r, err)
		return
	}
	var req documentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	doc := &store.Document{ID: id, Title: req.Title, Kind: req.Kind, Source: req.Source, Directed: req.Directed}
	if err := h.Store.Update(r.Context(), doc); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document.
func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDocumentID(id); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DocumentMermaid returns a document as Mermaid markup, converting
// adjacency-list documents on the fly.
func (h *Handlers) DocumentMermaid(w http.ResponseWriter, r *http.Request) {
	doc, err := h.document(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := doc.Source
	if doc.Kind == store.KindAdjacency {
		out = mermaid.Convert(doc.Source, doc.Directed)
	}
	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatMermaid))
	_, _ = w.Write([]byte(out))
}

func (h *Handlers) document(r *http.Request) (*store.Document, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	return h.Store.Get(r.Context(), id)
}

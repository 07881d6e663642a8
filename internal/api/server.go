// Package api serves the editor's HTTP API.
//
// Routes:
//
//	GET    /                          service banner
//	GET    /health                    liveness probe
//	POST   /api/concepts/message      explain a concept
//	GET    /api/concepts/topics       built-in concept topics
//	POST   /api/diagrams/convert      adjacency list -> Mermaid
//	POST   /api/diagrams/render       adjacency list -> svg/png/pdf/dot/mermaid
//	GET    /api/documents             list saved documents
//	POST   /api/documents             create a document
//	GET    /api/documents/{id}        fetch a document
//	PUT    /api/documents/{id}        replace a document
//	DELETE /api/documents/{id}        delete a document
//	GET    /api/documents/{id}/mermaid  a document's Mermaid markup
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Server wraps http.Server with start and graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Package server exposes the engine's command protocol over HTTP for UI
// surfaces (popup, options page, dashboards).
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/lawrnfy/TaskForge/internal/engine"
	"go.uber.org/zap"
)

// Server wraps the engine in an HTTP command surface.
type Server struct {
	engine  *engine.Engine
	port    int
	origins map[string]struct{}
	server  *http.Server
	log     *zap.Logger
}

// New builds a server on port. allowedOrigins may be empty for same-host
// tooling.
func New(eng *engine.Engine, port int, allowedOrigins []string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		engine:  eng,
		port:    port,
		origins: make(map[string]struct{}, len(allowedOrigins)),
		log:     log,
	}
	for _, o := range allowedOrigins {
		s.origins[o] = struct{}{}
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.registerRoutes(),
	}
	return s
}

// Start runs the listener on its own goroutine, reporting fatal errors on
// errChan.
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.log.Info("command API listening", zap.Int("port", s.port))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

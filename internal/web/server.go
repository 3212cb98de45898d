// Package web provides the HTTP API for the moderation review queue.
package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/roasbeef/modqueue/internal/review"
	"github.com/roasbeef/modqueue/internal/store"
)

// Server is the HTTP server exposing the review queue API.
type Server struct {
	storage store.Storage
	reviews *review.Service
	hub     *Hub
	mux     *http.ServeMux
	srv     *http.Server
	addr    string
}

// Config holds configuration for the web server.
type Config struct {
	Addr string
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr: ":8080",
	}
}

// NewServer creates a new web server.
func NewServer(cfg *Config, storage store.Storage,
	reviews *review.Service) (*Server, error) {

	s := &Server{
		storage: storage,
		reviews: reviews,
		mux:     http.NewServeMux(),
		addr:    cfg.Addr,
	}

	s.registerAPIV1Routes()

	// Initialize and start WebSocket hub.
	s.hub = NewHub(s)
	go s.hub.Run()

	s.mux.HandleFunc("/ws", s.handleWebSocket)

	return s, nil
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         s.addr,
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting web server on %s", s.addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the WebSocket hub first.
	if s.hub != nil {
		s.hub.Stop()
	}

	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

// Handler returns the root handler, used by tests to drive the server
// without binding a listener.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Package web provides the propview JSON API server.
package web

import (
	"fmt"
	"net/http"

	"propview/internal/logging"
	"propview/internal/property"
)

// Server exposes the listing and comparison operations over HTTP.
type Server struct {
	repo *property.Repository
	mux  *http.ServeMux
}

// NewServer creates an API server backed by repo.
func NewServer(repo *property.Repository) *Server {
	s := &Server{
		repo: repo,
		mux:  http.NewServeMux(),
	}

	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/properties", s.handleProperties)
	s.mux.HandleFunc("/api/properties/", s.handlePropertyByID)
	s.mux.HandleFunc("/api/compare", s.handleCompare)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logging.RequestLogger(s.mux).ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting API on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

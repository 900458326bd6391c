package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"propview/internal/comparison"
	"propview/internal/property"
	"propview/internal/store"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// writeRepoError maps repository failures to HTTP responses. Remote
// service messages pass through as the error text.
func writeRepoError(w http.ResponseWriter, err error) {
	var validationErr *property.ValidationError
	var storeErr *store.Error

	switch {
	case errors.Is(err, property.ErrNotFound):
		apiError(w, "property not found", http.StatusNotFound)
	case errors.As(err, &validationErr):
		apiError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, property.ErrAmbiguous):
		apiError(w, err.Error(), http.StatusInternalServerError)
	case errors.As(err, &storeErr):
		apiError(w, storeErr.Message, http.StatusBadGateway)
	default:
		apiError(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleProperties serves GET (list) and POST (create) on /api/properties.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listProperties(w, r)
	case http.MethodPost:
		s.createProperty(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	var props []*property.Property
	var err error

	if contact := r.URL.Query().Get("contact"); contact != "" {
		props, err = s.repo.ListByContact(r.Context(), contact)
	} else {
		props, err = s.repo.ListAll(r.Context())
	}
	if err != nil {
		writeRepoError(w, err)
		return
	}

	apiJSON(w, props, http.StatusOK)
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	var draft property.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.repo.Create(r.Context(), draft)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	apiJSON(w, p, http.StatusCreated)
}

// handlePropertyByID serves GET, PATCH, and DELETE on /api/properties/{id}.
func (s *Server) handlePropertyByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/properties/")
	if id == "" || strings.Contains(id, "/") {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := s.repo.GetByID(r.Context(), id)
		if err != nil {
			writeRepoError(w, err)
			return
		}
		apiJSON(w, p, http.StatusOK)

	case http.MethodPatch:
		var draft property.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			apiError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		p, err := s.repo.Update(r.Context(), id, draft)
		if err != nil {
			writeRepoError(w, err)
			return
		}
		apiJSON(w, p, http.StatusOK)

	case http.MethodDelete:
		if err := s.repo.Delete(r.Context(), id); err != nil {
			writeRepoError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// compareResponse is the response for GET /api/compare.
type compareResponse struct {
	Properties []*property.Property          `json:"properties"`
	Best       map[comparison.Field][]string `json:"best"`
}

// handleCompare fetches the requested ids, keeps the requested order,
// drops ids that were not found, and reports per-field best values.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idsParam := r.URL.Query().Get("ids")
	if idsParam == "" {
		apiError(w, "no properties selected for comparison", http.StatusBadRequest)
		return
	}
	ids := strings.Split(idsParam, ",")

	props, err := s.repo.GetByIDs(r.Context(), ids)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	ordered := property.ReorderByIDs(ids, props)

	engine, err := comparison.NewEngine(ordered)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	best := make(map[comparison.Field][]string)
	for _, field := range comparison.Fields() {
		winners := []string{}
		for _, p := range ordered {
			if engine.IsBest(p, field) {
				winners = append(winners, p.ID)
			}
		}
		best[field] = winners
	}

	apiJSON(w, compareResponse{Properties: ordered, Best: best}, http.StatusOK)
}

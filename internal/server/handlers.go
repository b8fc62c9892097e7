package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps storage failures onto the API error taxonomy:
// ErrNotFound becomes a 404 naming the entity, anything else is logged in
// full and surfaced as an opaque 500.
func (s *Server) writeStoreError(w http.ResponseWriter, err error, entity string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, entity+" not found")
		return
	}
	s.log.Error("store error", "entity", entity, "error", err)
	writeError(w, http.StatusInternalServerError, "operation failed")
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

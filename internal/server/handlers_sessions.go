package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/storage"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.ListSessions(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	session, err := s.store.GetSession(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Order int    `json:"order"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	session, err := s.store.CreateSession(r.Context(), req.Name, req.Order)
	if err != nil {
		s.writeStoreError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	var req struct {
		Name  *string `json:"name"`
		Order *int    `json:"order"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name != nil && *req.Name == "" {
		writeError(w, http.StatusBadRequest, "name must not be empty")
		return
	}

	session, err := s.store.UpdateSession(r.Context(), id, storage.SessionUpdate{Name: req.Name, Order: req.Order})
	if err != nil {
		s.writeStoreError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	if err := s.store.DeleteSession(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleLastPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	perf, err := s.store.LastPerformance(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

func (s *Server) handleBestPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	perf, err := s.store.BestPerformance(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

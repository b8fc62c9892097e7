package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	var sessionID *uuid.UUID
	if v := r.URL.Query().Get("sessionId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid sessionId")
			return
		}
		sessionID = &id
	}

	exercises, err := s.store.ListExercises(r.Context(), sessionID)
	if err != nil {
		s.writeStoreError(w, err, "exercises")
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	exercise, err := s.store.GetExercise(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "exercise")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID  *uuid.UUID `json:"sessionId"`
		Name       string     `json:"name"`
		Order      int        `json:"order"`
		TargetSets *int       `json:"targetSets"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SessionID == nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "sessionId and name are required")
		return
	}
	targetSets := 3
	if req.TargetSets != nil {
		if *req.TargetSets < 1 {
			writeError(w, http.StatusBadRequest, "targetSets must be positive")
			return
		}
		targetSets = *req.TargetSets
	}

	exercise, err := s.store.CreateExercise(r.Context(), *req.SessionID, req.Name, req.Order, targetSets)
	if err != nil {
		s.writeStoreError(w, err, "session")
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	var req struct {
		Name       *string `json:"name"`
		Order      *int    `json:"order"`
		TargetSets *int    `json:"targetSets"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name != nil && *req.Name == "" {
		writeError(w, http.StatusBadRequest, "name must not be empty")
		return
	}
	if req.TargetSets != nil && *req.TargetSets < 1 {
		writeError(w, http.StatusBadRequest, "targetSets must be positive")
		return
	}

	exercise, err := s.store.UpdateExercise(r.Context(), id, storage.ExerciseUpdate{
		Name: req.Name, Order: req.Order, TargetSets: req.TargetSets,
	})
	if err != nil {
		s.writeStoreError(w, err, "exercise")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	if err := s.store.DeleteExercise(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "exercise")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleExerciseProgression(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	result, err := s.store.ExerciseProgression(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "exercise")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

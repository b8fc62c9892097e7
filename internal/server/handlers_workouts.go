package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.store.ListWorkouts(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "workouts")
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

// handleStartWorkout starts a workout for today, or resumes the existing
// same-day one with its logged sets. 201 on a fresh start, 200 on resume —
// calling it twice in one day never creates a second row.
func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID *uuid.UUID `json:"sessionId"`
		Notes     *string    `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.SessionID == nil {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	today := s.now().Format("2006-01-02")
	workout, resumed, err := s.store.StartWorkout(r.Context(), *req.SessionID, today, req.Notes)
	if err != nil {
		s.writeStoreError(w, err, "session")
		return
	}
	status := http.StatusCreated
	if resumed {
		status = http.StatusOK
	}
	writeJSON(w, status, workout)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}
	workout, err := s.store.GetWorkout(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "workout")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}
	var req struct {
		Notes *string `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	workout, err := s.store.UpdateWorkoutNotes(r.Context(), id, req.Notes)
	if err != nil {
		s.writeStoreError(w, err, "workout")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}
	workout, err := s.store.CompleteWorkout(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err, "workout")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// handleDeleteWorkout serves both the discard path (finishing with zero sets
// logged) and explicit deletion from the history view.
func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}
	if err := s.store.DeleteWorkout(r.Context(), id); err != nil {
		s.writeStoreError(w, err, "workout")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleSaveSet upserts one set position. All five fields are required;
// reps and weight of zero are valid values, hence the pointer fields.
func (s *Server) handleSaveSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkoutID  *uuid.UUID `json:"workoutId"`
		ExerciseID *uuid.UUID `json:"exerciseId"`
		SetNumber  *int       `json:"setNumber"`
		Reps       *int       `json:"reps"`
		Weight     *float64   `json:"weight"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.WorkoutID == nil || req.ExerciseID == nil || req.SetNumber == nil || req.Reps == nil || req.Weight == nil {
		writeError(w, http.StatusBadRequest, "workoutId, exerciseId, setNumber, reps, and weight are required")
		return
	}
	if *req.SetNumber < 1 {
		writeError(w, http.StatusBadRequest, "setNumber must be positive")
		return
	}
	if *req.Reps < 0 || *req.Weight < 0 {
		writeError(w, http.StatusBadRequest, "reps and weight must not be negative")
		return
	}

	set, created, err := s.store.UpsertSet(r.Context(), storage.SetInput{
		WorkoutID:  *req.WorkoutID,
		ExerciseID: *req.ExerciseID,
		SetNumber:  *req.SetNumber,
		Reps:       *req.Reps,
		Weight:     *req.Weight,
	})
	if err != nil {
		s.writeStoreError(w, err, "workout or exercise")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, set)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetDataStats(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

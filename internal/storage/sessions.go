package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionUpdate holds the fields of a partial session update. Nil means
// "leave unchanged".
type SessionUpdate struct {
	Name  *string
	Order *int
}

// ListSessions returns all sessions ordered by display order, each with its
// exercises and most recent workout (for the home screen).
func (db *DB) ListSessions(ctx context.Context) ([]models.Session, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, display_order, created_at
		 FROM sessions
		 ORDER BY display_order ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.Order, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		index[s.ID] = len(sessions)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	exercises, err := db.ListExercises(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range exercises {
		if i, ok := index[e.SessionID]; ok {
			sessions[i].Exercises = append(sessions[i].Exercises, e)
		}
	}

	// Latest workout per session, one row each.
	wrows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT ON (session_id)
		        id, session_id, date::text, notes, completed_at, created_at
		 FROM workouts
		 ORDER BY session_id, date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying latest workouts: %w", err)
	}
	defer wrows.Close()

	for wrows.Next() {
		var w models.Workout
		if err := wrows.Scan(&w.ID, &w.SessionID, &w.Date, &w.Notes, &w.CompletedAt, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning latest workout: %w", err)
		}
		if i, ok := index[w.SessionID]; ok {
			workout := w
			sessions[i].LastWorkout = &workout
		}
	}
	return sessions, wrows.Err()
}

// GetSession returns a session with its exercises in display order.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var s models.Session
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, display_order, created_at FROM sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Name, &s.Order, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	sid := s.ID
	s.Exercises, err = db.ListExercises(ctx, &sid)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession inserts a new session template.
func (db *DB) CreateSession(ctx context.Context, name string, order int) (*models.Session, error) {
	var s models.Session
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO sessions (id, name, display_order)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, display_order, created_at`,
		uuid.New(), name, order,
	).Scan(&s.ID, &s.Name, &s.Order, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return &s, nil
}

// UpdateSession applies a partial update and returns the updated row.
func (db *DB) UpdateSession(ctx context.Context, id uuid.UUID, upd SessionUpdate) (*models.Session, error) {
	var s models.Session
	err := db.Pool.QueryRow(ctx,
		`UPDATE sessions
		 SET name = COALESCE($2, name),
		     display_order = COALESCE($3, display_order)
		 WHERE id = $1
		 RETURNING id, name, display_order, created_at`,
		id, upd.Name, upd.Order,
	).Scan(&s.ID, &s.Name, &s.Order, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}
	return &s, nil
}

// DeleteSession removes a session; exercises, workouts and their sets go
// with it via FK cascade.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

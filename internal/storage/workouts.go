package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StartWorkout returns the workout for (sessionID, date), creating it if
// none exists. The returned bool is true when an existing same-day workout
// was resumed. Date is a calendar day in "2006-01-02" form; the caller owns
// the clock. Safe to call repeatedly — the UNIQUE (session_id, date)
// constraint guarantees at most one row per pair even under concurrent
// starts.
func (db *DB) StartWorkout(ctx context.Context, sessionID uuid.UUID, date string, notes *string) (*models.Workout, bool, error) {
	w, err := db.workoutByDay(ctx, sessionID, date)
	if err == nil {
		w.Sets, err = db.setsForWorkout(ctx, w.ID)
		if err != nil {
			return nil, false, err
		}
		return w, true, nil
	}
	if err != ErrNotFound {
		return nil, false, err
	}

	var created models.Workout
	err = db.Pool.QueryRow(ctx,
		`INSERT INTO workouts (id, session_id, date, notes)
		 VALUES ($1, $2, $3::date, $4)
		 ON CONFLICT ON CONSTRAINT workouts_session_date_key DO NOTHING
		 RETURNING id, session_id, date::text, notes, completed_at, created_at`,
		uuid.New(), sessionID, date, notes,
	).Scan(&created.ID, &created.SessionID, &created.Date, &created.Notes, &created.CompletedAt, &created.CreatedAt)
	if err == pgx.ErrNoRows {
		// Lost the race to a concurrent start; resume the winner's row.
		w, err = db.workoutByDay(ctx, sessionID, date)
		if err != nil {
			return nil, false, err
		}
		w.Sets, err = db.setsForWorkout(ctx, w.ID)
		if err != nil {
			return nil, false, err
		}
		return w, true, nil
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("inserting workout: %w", err)
	}
	created.Sets = []models.Set{}
	return &created, false, nil
}

func (db *DB) workoutByDay(ctx context.Context, sessionID uuid.UUID, date string) (*models.Workout, error) {
	var w models.Workout
	err := db.Pool.QueryRow(ctx,
		`SELECT id, session_id, date::text, notes, completed_at, created_at
		 FROM workouts
		 WHERE session_id = $1 AND date = $2::date`,
		sessionID, date,
	).Scan(&w.ID, &w.SessionID, &w.Date, &w.Notes, &w.CompletedAt, &w.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout by day: %w", err)
	}
	return &w, nil
}

// GetWorkout returns a workout with its session and sets ordered by set
// number. Each set carries its exercise when it still resolves; a set whose
// exercise is gone keeps a nil Exercise instead of failing the read.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var w models.Workout
	var s models.Session
	err := db.Pool.QueryRow(ctx,
		`SELECT w.id, w.session_id, w.date::text, w.notes, w.completed_at, w.created_at,
		        s.id, s.name, s.display_order, s.created_at
		 FROM workouts w
		 JOIN sessions s ON s.id = w.session_id
		 WHERE w.id = $1`,
		id,
	).Scan(&w.ID, &w.SessionID, &w.Date, &w.Notes, &w.CompletedAt, &w.CreatedAt,
		&s.ID, &s.Name, &s.Order, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	w.Session = &s

	rows, err := db.Pool.Query(ctx,
		`SELECT st.id, st.workout_id, st.exercise_id, st.set_number, st.reps, st.weight, st.created_at,
		        e.id, e.session_id, e.name, e.display_order, e.target_sets
		 FROM sets st
		 LEFT JOIN exercises e ON e.id = st.exercise_id
		 WHERE st.workout_id = $1
		 ORDER BY st.set_number ASC, st.created_at ASC`,
		id)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	w.Sets = []models.Set{}
	for rows.Next() {
		var set models.Set
		var eID, eSessionID *uuid.UUID
		var eName *string
		var eOrder, eTargetSets *int
		if err := rows.Scan(&set.ID, &set.WorkoutID, &set.ExerciseID, &set.SetNumber, &set.Reps, &set.Weight, &set.CreatedAt,
			&eID, &eSessionID, &eName, &eOrder, &eTargetSets); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		if eID != nil {
			set.Exercise = &models.Exercise{
				ID: *eID, SessionID: *eSessionID, Name: *eName,
				Order: *eOrder, TargetSets: *eTargetSets,
			}
		}
		w.Sets = append(w.Sets, set)
	}
	return &w, rows.Err()
}

// ListWorkouts returns the full history, most recent first, each workout
// with its session and sets.
func (db *DB) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.id, w.session_id, w.date::text, w.notes, w.completed_at, w.created_at,
		        s.id, s.name, s.display_order, s.created_at
		 FROM workouts w
		 JOIN sessions s ON s.id = w.session_id
		 ORDER BY w.date DESC, w.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var workouts []models.Workout
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var w models.Workout
		var s models.Session
		if err := rows.Scan(&w.ID, &w.SessionID, &w.Date, &w.Notes, &w.CompletedAt, &w.CreatedAt,
			&s.ID, &s.Name, &s.Order, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.Session = &s
		w.Sets = []models.Set{}
		index[w.ID] = len(workouts)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return workouts, nil
	}

	srows, err := db.Pool.Query(ctx,
		`SELECT id, workout_id, exercise_id, set_number, reps, weight, created_at
		 FROM sets
		 ORDER BY set_number ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer srows.Close()

	for srows.Next() {
		var set models.Set
		if err := srows.Scan(&set.ID, &set.WorkoutID, &set.ExerciseID, &set.SetNumber, &set.Reps, &set.Weight, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		if i, ok := index[set.WorkoutID]; ok {
			workouts[i].Sets = append(workouts[i].Sets, set)
		}
	}
	return workouts, srows.Err()
}

// UpdateWorkoutNotes replaces a workout's notes.
func (db *DB) UpdateWorkoutNotes(ctx context.Context, id uuid.UUID, notes *string) (*models.Workout, error) {
	var w models.Workout
	err := db.Pool.QueryRow(ctx,
		`UPDATE workouts SET notes = $2
		 WHERE id = $1
		 RETURNING id, session_id, date::text, notes, completed_at, created_at`,
		id, notes,
	).Scan(&w.ID, &w.SessionID, &w.Date, &w.Notes, &w.CompletedAt, &w.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating workout notes: %w", err)
	}
	return &w, nil
}

// CompleteWorkout stamps completed_at with the store's current time.
// Idempotent: completing twice just refreshes the stamp.
func (db *DB) CompleteWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var w models.Workout
	err := db.Pool.QueryRow(ctx,
		`UPDATE workouts SET completed_at = now()
		 WHERE id = $1
		 RETURNING id, session_id, date::text, notes, completed_at, created_at`,
		id,
	).Scan(&w.ID, &w.SessionID, &w.Date, &w.Notes, &w.CompletedAt, &w.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("completing workout: %w", err)
	}
	return &w, nil
}

// DeleteWorkout removes a workout and (via cascade) its sets. Used both to
// discard an abandoned empty workout and to delete from history.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) setsForWorkout(ctx context.Context, workoutID uuid.UUID) ([]models.Set, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, workout_id, exercise_id, set_number, reps, weight, created_at
		 FROM sets
		 WHERE workout_id = $1
		 ORDER BY set_number ASC, created_at ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	sets := []models.Set{}
	for rows.Next() {
		var s models.Set
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetNumber, &s.Reps, &s.Weight, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

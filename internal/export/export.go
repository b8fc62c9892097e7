package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Store is the slice of the storage layer the exporter reads from.
type Store interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListExercises(ctx context.Context, sessionID *uuid.UUID) ([]models.Exercise, error)
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
}

// Stats reports how many rows a snapshot contains.
type Stats struct {
	Sessions  int
	Exercises int
	Workouts  int
	Sets      int
}

const schema = `
CREATE TABLE sessions (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	sort_order  INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE TABLE exercises (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL REFERENCES sessions(id),
	name        TEXT NOT NULL,
	sort_order  INTEGER NOT NULL,
	target_sets INTEGER NOT NULL
);
CREATE TABLE workouts (
	id           TEXT PRIMARY KEY,
	session_id   TEXT NOT NULL REFERENCES sessions(id),
	date         TEXT NOT NULL,
	notes        TEXT,
	completed_at TIMESTAMP,
	created_at   TIMESTAMP NOT NULL
);
CREATE TABLE sets (
	id          TEXT PRIMARY KEY,
	workout_id  TEXT NOT NULL REFERENCES workouts(id),
	exercise_id TEXT NOT NULL REFERENCES exercises(id),
	set_number  INTEGER NOT NULL,
	reps        INTEGER NOT NULL,
	weight      REAL NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
`

// Write dumps all training data into a standalone SQLite file at path.
// Refuses to overwrite an existing file.
func Write(ctx context.Context, store Store, path string) (*Stats, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("refusing to overwrite %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	sessions, err := store.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	exercises, err := store.ListExercises(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	workouts, err := store.ListWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	stats := &Stats{}

	for _, s := range sessions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (id, name, sort_order, created_at) VALUES (?, ?, ?, ?)`,
			s.ID.String(), s.Name, s.Order, s.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting session %s: %w", s.ID, err)
		}
		stats.Sessions++
	}

	for _, e := range exercises {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO exercises (id, session_id, name, sort_order, target_sets) VALUES (?, ?, ?, ?, ?)`,
			e.ID.String(), e.SessionID.String(), e.Name, e.Order, e.TargetSets,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting exercise %s: %w", e.ID, err)
		}
		stats.Exercises++
	}

	for _, w := range workouts {
		var completedAt any
		if w.CompletedAt != nil {
			completedAt = w.CompletedAt.Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO workouts (id, session_id, date, notes, completed_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			w.ID.String(), w.SessionID.String(), w.Date, w.Notes, completedAt, w.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting workout %s: %w", w.ID, err)
		}
		stats.Workouts++

		for _, set := range w.Sets {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO sets (id, workout_id, exercise_id, set_number, reps, weight, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				set.ID.String(), set.WorkoutID.String(), set.ExerciseID.String(),
				set.SetNumber, set.Reps, set.Weight, set.CreatedAt.Format(time.RFC3339),
			)
			if err != nil {
				return nil, fmt.Errorf("inserting set %s: %w", set.ID, err)
			}
			stats.Sets++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}

	return stats, nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// SetInput identifies one set position within a workout and the values to
// record there.
type SetInput struct {
	WorkoutID  uuid.UUID
	ExerciseID uuid.UUID
	SetNumber  int
	Reps       int
	Weight     float64
}

// UpsertSet records reps/weight for a set position, overwriting any earlier
// save for the same (workout, exercise, set number). The returned bool is
// true when a new row was inserted. The single ON CONFLICT statement is what
// makes two rapid saves for the same position safe: the unique constraint
// serializes them and the loser becomes an update.
func (db *DB) UpsertSet(ctx context.Context, in SetInput) (*models.Set, bool, error) {
	var s models.Set
	var inserted bool
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO sets (id, workout_id, exercise_id, set_number, reps, weight)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT ON CONSTRAINT sets_position_key
		 DO UPDATE SET reps = EXCLUDED.reps, weight = EXCLUDED.weight
		 RETURNING id, workout_id, exercise_id, set_number, reps, weight, created_at,
		           (xmax = 0) AS inserted`,
		uuid.New(), in.WorkoutID, in.ExerciseID, in.SetNumber, in.Reps, in.Weight,
	).Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.SetNumber, &s.Reps, &s.Weight, &s.CreatedAt, &inserted)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("upserting set: %w", err)
	}
	return &s, inserted, nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExerciseUpdate holds the fields of a partial exercise update. Nil means
// "leave unchanged".
type ExerciseUpdate struct {
	Name       *string
	Order      *int
	TargetSets *int
}

// ListExercises returns exercises in display order, optionally restricted to
// one session.
func (db *DB) ListExercises(ctx context.Context, sessionID *uuid.UUID) ([]models.Exercise, error) {
	query := `SELECT id, session_id, name, display_order, target_sets
	          FROM exercises`
	args := []any{}
	if sessionID != nil {
		query += ` WHERE session_id = $1`
		args = append(args, *sessionID)
	}
	query += ` ORDER BY display_order ASC, name ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Name, &e.Order, &e.TargetSets); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// GetExercise returns a single exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, session_id, name, display_order, target_sets
		 FROM exercises WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.SessionID, &e.Name, &e.Order, &e.TargetSets)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &e, nil
}

// CreateExercise inserts an exercise into a session's template.
func (db *DB) CreateExercise(ctx context.Context, sessionID uuid.UUID, name string, order, targetSets int) (*models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (id, session_id, name, display_order, target_sets)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, session_id, name, display_order, target_sets`,
		uuid.New(), sessionID, name, order, targetSets,
	).Scan(&e.ID, &e.SessionID, &e.Name, &e.Order, &e.TargetSets)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("inserting exercise: %w", err)
	}
	return &e, nil
}

// UpdateExercise applies a partial update and returns the updated row.
func (db *DB) UpdateExercise(ctx context.Context, id uuid.UUID, upd ExerciseUpdate) (*models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`UPDATE exercises
		 SET name = COALESCE($2, name),
		     display_order = COALESCE($3, display_order),
		     target_sets = COALESCE($4, target_sets)
		 WHERE id = $1
		 RETURNING id, session_id, name, display_order, target_sets`,
		id, upd.Name, upd.Order, upd.TargetSets,
	).Scan(&e.ID, &e.SessionID, &e.Name, &e.Order, &e.TargetSets)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating exercise: %w", err)
	}
	return &e, nil
}

// DeleteExercise removes an exercise; its logged sets cascade.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

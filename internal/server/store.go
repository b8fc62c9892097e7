package server

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// Store is the persistence surface the handlers depend on. *storage.DB
// satisfies it; tests substitute a fake.
type Store interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	CreateSession(ctx context.Context, name string, order int) (*models.Session, error)
	UpdateSession(ctx context.Context, id uuid.UUID, upd storage.SessionUpdate) (*models.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	ListExercises(ctx context.Context, sessionID *uuid.UUID) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error)
	CreateExercise(ctx context.Context, sessionID uuid.UUID, name string, order, targetSets int) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, id uuid.UUID, upd storage.ExerciseUpdate) (*models.Exercise, error)
	DeleteExercise(ctx context.Context, id uuid.UUID) error

	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	StartWorkout(ctx context.Context, sessionID uuid.UUID, date string, notes *string) (*models.Workout, bool, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	UpdateWorkoutNotes(ctx context.Context, id uuid.UUID, notes *string) (*models.Workout, error)
	CompleteWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error

	UpsertSet(ctx context.Context, in storage.SetInput) (*models.Set, bool, error)

	LastPerformance(ctx context.Context, sessionID uuid.UUID) (storage.Performance, error)
	BestPerformance(ctx context.Context, sessionID uuid.UUID) (storage.Performance, error)
	ExerciseProgression(ctx context.Context, exerciseID uuid.UUID) (*storage.ProgressionResult, error)
	GetDataStats(ctx context.Context) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

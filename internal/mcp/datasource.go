package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	LastPerformance(ctx context.Context, sessionID uuid.UUID) (storage.Performance, error)
	BestPerformance(ctx context.Context, sessionID uuid.UUID) (storage.Performance, error)
	ExerciseProgression(ctx context.Context, exerciseID uuid.UUID) (*storage.ProgressionResult, error)
	GetDataStats(ctx context.Context) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

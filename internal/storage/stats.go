package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// Volume returns the total tonnage of a group of sets (sum of reps x weight).
func Volume(sets []models.Set) float64 {
	var total float64
	for _, s := range sets {
		total += float64(s.Reps) * s.Weight
	}
	return total
}

// MaxWeight returns the heaviest weight among the sets, or 0 if empty.
func MaxWeight(sets []models.Set) float64 {
	var max float64
	for _, s := range sets {
		if s.Weight > max {
			max = s.Weight
		}
	}
	return max
}

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalSessions  int64              `json:"total_sessions"`
	TotalExercises int64              `json:"total_exercises"`
	TotalWorkouts  int64              `json:"total_workouts"`
	TotalSets      int64              `json:"total_sets"`
	FirstWorkout   *string            `json:"first_workout,omitempty"`
	LastWorkout    *string            `json:"last_workout,omitempty"`
	BySession      []SessionStat      `json:"by_session"`
}

// SessionStat summarizes training frequency for one session template.
type SessionStat struct {
	Name      string `json:"name"`
	Workouts  int64  `json:"workouts"`
	Completed int64  `json:"completed"`
}

// GetDataStats returns entity totals, the workout date range, and per-session
// training counts.
func (db *DB) GetDataStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM sessions),
		    (SELECT COUNT(*) FROM exercises),
		    (SELECT COUNT(*) FROM workouts),
		    (SELECT COUNT(*) FROM sets)`,
	).Scan(&stats.TotalSessions, &stats.TotalExercises, &stats.TotalWorkouts, &stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting entities: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(date)::text, MAX(date)::text FROM workouts`,
	).Scan(&stats.FirstWorkout, &stats.LastWorkout)
	if err != nil {
		return nil, fmt.Errorf("querying workout date range: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT s.name, COUNT(w.id), COUNT(w.completed_at)
		 FROM sessions s
		 LEFT JOIN workouts w ON w.session_id = s.id
		 GROUP BY s.id, s.name
		 ORDER BY COUNT(w.id) DESC, s.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying per-session stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s SessionStat
		if err := rows.Scan(&s.Name, &s.Workouts, &s.Completed); err != nil {
			return nil, fmt.Errorf("scanning session stat: %w", err)
		}
		stats.BySession = append(stats.BySession, s)
	}
	return stats, rows.Err()
}

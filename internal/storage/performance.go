package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Performance maps an exercise to its (reps, weight) pairs indexed by set
// position (position 1 at index 0).
type Performance map[uuid.UUID][]models.SetPerf

// perfRow is one logged set as fed into the aggregation folds. Rows arrive
// in chronological order so "first seen" is well defined.
type perfRow struct {
	ExerciseID uuid.UUID
	SetNumber  int
	Reps       int
	Weight     float64
}

// LastPerformance returns the sets of the session's most recent workout,
// grouped per exercise in set-number order. Pre-populates the next workout's
// inputs. Empty map when the session has no history.
func (db *DB) LastPerformance(ctx context.Context, sessionID uuid.UUID) (Performance, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT st.exercise_id, st.set_number, st.reps, st.weight
		 FROM sets st
		 WHERE st.workout_id = (
		     SELECT id FROM workouts
		     WHERE session_id = $1
		     ORDER BY date DESC, created_at DESC
		     LIMIT 1
		 )
		 ORDER BY st.set_number ASC, st.created_at ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying last performance: %w", err)
	}
	defer rows.Close()

	perf := Performance{}
	for rows.Next() {
		var r perfRow
		if err := rows.Scan(&r.ExerciseID, &r.SetNumber, &r.Reps, &r.Weight); err != nil {
			return nil, fmt.Errorf("scanning last performance: %w", err)
		}
		perf[r.ExerciseID] = append(perf[r.ExerciseID], models.SetPerf{Reps: r.Reps, Weight: r.Weight})
	}
	return perf, rows.Err()
}

// BestPerformance folds all completed workouts of a session into the best
// (reps, weight) per exercise and set position. Empty map when nothing has
// been completed yet.
func (db *DB) BestPerformance(ctx context.Context, sessionID uuid.UUID) (Performance, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT st.exercise_id, st.set_number, st.reps, st.weight
		 FROM sets st
		 JOIN workouts w ON w.id = st.workout_id
		 WHERE w.session_id = $1 AND w.completed_at IS NOT NULL
		 ORDER BY w.date ASC, w.created_at ASC, st.set_number ASC, st.created_at ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying best performance: %w", err)
	}
	defer rows.Close()

	var history []perfRow
	for rows.Next() {
		var r perfRow
		if err := rows.Scan(&r.ExerciseID, &r.SetNumber, &r.Reps, &r.Weight); err != nil {
			return nil, fmt.Errorf("scanning best performance: %w", err)
		}
		history = append(history, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return foldBest(history), nil
}

// foldBest retains, per exercise and set position, the pair with the highest
// weight; equal weight is broken by higher reps, and the first-seen pair
// wins all remaining ties. Positions an exercise never reached are filled
// with the {0, 0} sentinel so callers can index without bounds checks.
func foldBest(history []perfRow) Performance {
	perf := Performance{}
	seen := map[uuid.UUID][]bool{}

	for _, r := range history {
		if r.SetNumber < 1 {
			continue
		}
		pos := r.SetNumber - 1
		sets := perf[r.ExerciseID]
		logged := seen[r.ExerciseID]
		for len(sets) <= pos {
			sets = append(sets, models.SetPerf{})
			logged = append(logged, false)
		}

		candidate := models.SetPerf{Reps: r.Reps, Weight: r.Weight}
		if !logged[pos] || beats(candidate, sets[pos]) {
			sets[pos] = candidate
			logged[pos] = true
		}
		perf[r.ExerciseID] = sets
		seen[r.ExerciseID] = logged
	}
	return perf
}

// beats reports whether a improves on b: strictly more weight, or more reps
// at equal weight.
func beats(a, b models.SetPerf) bool {
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	return a.Reps > b.Reps
}

// ProgressionPoint is one calendar day of an exercise's history.
type ProgressionPoint struct {
	Date   string  `json:"date"`   // ISO calendar day
	Label  string  `json:"label"`  // DD/MM, as charted by the UI
	Weight float64 `json:"weight"` // max weight lifted that day
	Volume float64 `json:"volume"` // sum of reps x weight that day
}

// ProgressionResult pairs an exercise with its chronological per-day series.
type ProgressionResult struct {
	Exercise    models.Exercise    `json:"exercise"`
	Progression []ProgressionPoint `json:"progression"`
}

// progressionRow is one set joined to its workout's calendar day.
type progressionRow struct {
	Date   string
	Reps   int
	Weight float64
}

// ExerciseProgression returns the exercise and its per-day max-weight and
// total-volume series, oldest first.
func (db *DB) ExerciseProgression(ctx context.Context, exerciseID uuid.UUID) (*ProgressionResult, error) {
	exercise, err := db.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT w.date::text, st.reps, st.weight
		 FROM sets st
		 JOIN workouts w ON w.id = st.workout_id
		 WHERE st.exercise_id = $1
		 ORDER BY w.date ASC, st.created_at ASC`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying progression: %w", err)
	}
	defer rows.Close()

	var history []progressionRow
	for rows.Next() {
		var r progressionRow
		if err := rows.Scan(&r.Date, &r.Reps, &r.Weight); err != nil {
			return nil, fmt.Errorf("scanning progression: %w", err)
		}
		history = append(history, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ProgressionResult{
		Exercise:    *exercise,
		Progression: progressionPoints(history),
	}, nil
}

// progressionPoints groups sets by calendar day and reduces each day to its
// max weight and total volume, sorted chronologically.
func progressionPoints(history []progressionRow) []ProgressionPoint {
	byDate := map[string]*ProgressionPoint{}
	for _, r := range history {
		p, ok := byDate[r.Date]
		if !ok {
			p = &ProgressionPoint{Date: r.Date, Label: shortDateLabel(r.Date)}
			byDate[r.Date] = p
		}
		if r.Weight > p.Weight {
			p.Weight = r.Weight
		}
		p.Volume += float64(r.Reps) * r.Weight
	}

	points := make([]ProgressionPoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	// ISO dates sort chronologically as strings.
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// shortDateLabel turns "2024-01-31" into the chart label "31/01". Malformed
// dates fall through unchanged.
func shortDateLabel(isoDate string) string {
	if len(isoDate) != 10 {
		return isoDate
	}
	return isoDate[8:10] + "/" + isoDate[5:7]
}

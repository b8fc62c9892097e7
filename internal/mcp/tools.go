package mcp

import (
	"context"
	"strings"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List all session templates with their exercises, target set counts, and the date each was last trained."),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query workout history, newest first. Each workout includes its session, calendar date, completion state, and logged sets."),
	mcp.WithString("session", mcp.Description("Filter by session name (partial match, e.g. 'push')")),
	mcp.WithString("since", mcp.Description("Only workouts on or after this date (YYYY-MM-DD)")),
)

var toolGetWorkoutDetail = mcp.NewTool("get_workout_detail",
	mcp.WithDescription("Get a single workout with all logged sets, resolved exercise names included."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolGetLastPerformance = mcp.NewTool("get_last_performance",
	mcp.WithDescription("Per-exercise sets from the most recent workout of a session. The in-workout reference for what was lifted last time."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session UUID")),
)

var toolGetBestPerformance = mcp.NewTool("get_best_performance",
	mcp.WithDescription("Per-exercise personal bests for a session, position by position across all completed workouts. Positions never logged appear as zero reps and weight."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session UUID")),
)

var toolGetExerciseProgression = mcp.NewTool("get_exercise_progression",
	mcp.WithDescription("Per-day max weight and total volume for one exercise, oldest first. The data behind the progression chart."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID")),
)

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Totals across all data: sessions, exercises, workouts, sets, first and last workout dates, and per-session workout counts."),
)

// filterWorkouts narrows a workout list by session name (partial,
// case-insensitive) and a lower date bound. Dates are ISO day strings, so
// string comparison orders them.
func filterWorkouts(workouts []models.Workout, sessionFilter, since string) []models.Workout {
	sessionFilter = strings.ToLower(sessionFilter)
	filtered := []models.Workout{}
	for _, w := range workouts {
		if since != "" && w.Date < since {
			continue
		}
		if sessionFilter != "" {
			if w.Session == nil || !strings.Contains(strings.ToLower(w.Session.Name), sessionFilter) {
				continue
			}
		}
		filtered = append(filtered, w)
	}
	return filtered
}

// requireUUID extracts and parses a required UUID tool parameter.
func requireUUID(req mcp.CallToolRequest, name string) (uuid.UUID, *mcp.CallToolResult) {
	raw, err := req.RequireString(name)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError(name + " parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError(name + " must be a valid UUID")
	}
	return id, nil
}

// --- Tool handlers ---

func (h *handlers) listSessions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp list_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	filtered := filterWorkouts(workouts, req.GetString("session", ""), req.GetString("since", ""))

	result, err := mcp.NewToolResultJSON(filtered)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireUUID(req, "workout_id")
	if errResult != nil {
		return errResult, nil
	}

	workout, err := h.ds.GetWorkout(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout_detail", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLastPerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireUUID(req, "session_id")
	if errResult != nil {
		return errResult, nil
	}

	perf, err := h.ds.LastPerformance(ctx, id)
	if err != nil {
		h.log.Error("mcp get_last_performance", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(perf)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBestPerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireUUID(req, "session_id")
	if errResult != nil {
		return errResult, nil
	}

	perf, err := h.ds.BestPerformance(ctx, id)
	if err != nil {
		h.log.Error("mcp get_best_performance", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(perf)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireUUID(req, "exercise_id")
	if errResult != nil {
		return errResult, nil
	}

	progression, err := h.ds.ExerciseProgression(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(progression)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetDataStats(ctx)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

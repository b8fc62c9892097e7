package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context) ([]models.Session, error) {
	body, err := c.get(ctx, "/api/v1/sessions")
	if err != nil {
		return nil, err
	}

	var sessions []models.Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts")
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+id.String())
	if err != nil {
		return nil, err
	}

	var workout models.Workout
	if err := json.Unmarshal(body, &workout); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return &workout, nil
}

func (c *HTTPClient) LastPerformance(ctx context.Context, sessionID uuid.UUID) (storage.Performance, error) {
	body, err := c.get(ctx, "/api/v1/sessions/"+sessionID.String()+"/last-performance")
	if err != nil {
		return nil, err
	}

	var perf storage.Performance
	if err := json.Unmarshal(body, &perf); err != nil {
		return nil, fmt.Errorf("httpclient: decode last performance: %w", err)
	}
	return perf, nil
}

func (c *HTTPClient) BestPerformance(ctx context.Context, sessionID uuid.UUID) (storage.Performance, error) {
	body, err := c.get(ctx, "/api/v1/sessions/"+sessionID.String()+"/best-performance")
	if err != nil {
		return nil, err
	}

	var perf storage.Performance
	if err := json.Unmarshal(body, &perf); err != nil {
		return nil, fmt.Errorf("httpclient: decode best performance: %w", err)
	}
	return perf, nil
}

func (c *HTTPClient) ExerciseProgression(ctx context.Context, exerciseID uuid.UUID) (*storage.ProgressionResult, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+exerciseID.String()+"/progression")
	if err != nil {
		return nil, err
	}

	var result storage.ProgressionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("httpclient: decode progression: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats")
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}

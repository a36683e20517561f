package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/envira/envira-cli/internal/models"
)

type updateStepRequest struct {
	CurrentStep int `json:"current_step"`
}

type completeSessionRequest struct {
	Notes string `json:"notes"`
}

// Exercises fetches the exercise catalog, optionally filtered by category
// and difficulty. Empty strings mean no filter.
func (c *Client) Exercises(ctx context.Context, category, difficulty string) ([]models.Exercise, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if difficulty != "" {
		q.Set("difficulty", difficulty)
	}
	path := "/exercises"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return listOrWrapped[models.Exercise](raw, "exercises"), nil
}

// Exercise fetches a single definition including its step list.
func (c *Client) Exercise(ctx context.Context, exerciseID string) (models.Exercise, error) {
	var ex models.Exercise
	err := c.do(ctx, http.MethodGet, "/exercises/"+url.PathEscape(exerciseID), nil, &ex)
	return ex, err
}

// StartExerciseSession creates a backend session for an exercise attempt.
func (c *Client) StartExerciseSession(ctx context.Context, exerciseID string) (models.ExerciseSession, error) {
	var sess models.ExerciseSession
	err := c.do(ctx, http.MethodPost, "/exercises/"+url.PathEscape(exerciseID)+"/start", nil, &sess)
	return sess, err
}

// UpdateSessionStep records that the session advanced to stepNumber
// (1-based).
func (c *Client) UpdateSessionStep(ctx context.Context, sessionID string, stepNumber int) error {
	path := "/exercises/session/" + url.PathEscape(sessionID) + "/step"
	return c.do(ctx, http.MethodPut, path, updateStepRequest{CurrentStep: stepNumber}, nil)
}

// CompleteSession closes the session with optional free-text notes.
func (c *Client) CompleteSession(ctx context.Context, sessionID, notes string) error {
	path := "/exercises/session/" + url.PathEscape(sessionID) + "/complete"
	return c.do(ctx, http.MethodPost, path, completeSessionRequest{Notes: notes}, nil)
}

// ExerciseHistory fetches the user's past exercise sessions.
func (c *Client) ExerciseHistory(ctx context.Context) ([]models.ExerciseHistoryRecord, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/exercises/history/user", nil, &raw); err != nil {
		return nil, err
	}
	return listOrWrapped[models.ExerciseHistoryRecord](raw, "history"), nil
}

// ExerciseStats fetches the user's aggregate exercise stats.
func (c *Client) ExerciseStats(ctx context.Context) (models.ExerciseStats, error) {
	var stats models.ExerciseStats
	err := c.do(ctx, http.MethodGet, "/exercises/stats/user", nil, &stats)
	return stats, err
}

package api

import (
	"context"
	"net/http"

	"github.com/envira/envira-cli/internal/models"
)

type activitiesResponse struct {
	Activities []models.Activity `json:"activities"`
}

type recommendationRequest struct {
	DeviceID   string `json:"device_id"`
	ActivityID string `json:"activity_id,omitempty"`
}

type recommendationResponse struct {
	Recommendations []string `json:"recommendations"`
}

// Activities fetches the activity catalog.
func (c *Client) Activities(ctx context.Context) ([]models.Activity, error) {
	var resp activitiesResponse
	if err := c.do(ctx, http.MethodGet, "/recommendations/activities", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}

// GeneralRecommendations fetches recommendation text for the current
// environment of a device.
func (c *Client) GeneralRecommendations(ctx context.Context, deviceID string) ([]string, error) {
	var resp recommendationResponse
	err := c.do(ctx, http.MethodPost, "/recommendations/general", recommendationRequest{DeviceID: deviceID}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// ActivityRecommendations fetches recommendations tailored to an activity
// in the device's current environment.
func (c *Client) ActivityRecommendations(ctx context.Context, activityID, deviceID string) ([]string, error) {
	var resp recommendationResponse
	err := c.do(ctx, http.MethodPost, "/recommendations/activity", recommendationRequest{DeviceID: deviceID, ActivityID: activityID}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

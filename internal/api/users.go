package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/envira/envira-cli/internal/models"
)

// Profile fetches the authenticated user's account record.
func (c *Client) Profile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &p)
	return p, err
}

// Devices lists the user's registered sensor units.
func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users/devices", nil, &raw); err != nil {
		return nil, err
	}
	return listOrWrapped[models.Device](raw, "devices"), nil
}

// UpdatePreferences persists the aggregate preference object.
func (c *Client) UpdatePreferences(ctx context.Context, prefs models.Preferences) error {
	return c.do(ctx, http.MethodPut, "/users/preferences", prefs, nil)
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/envira/envira-cli/internal/models"
)

// LatestReading fetches the most recent sensor snapshot for a device.
func (c *Client) LatestReading(ctx context.Context, deviceID string) (models.DeviceSensorRecord, error) {
	var rec models.DeviceSensorRecord
	err := c.do(ctx, http.MethodGet, "/latest/"+url.PathEscape(deviceID), nil, &rec)
	return rec, err
}

// LatestSummary is the fallback snapshot endpoint used when LatestReading
// fails.
func (c *Client) LatestSummary(ctx context.Context, deviceID string) (models.DeviceSensorRecord, error) {
	var rec models.DeviceSensorRecord
	err := c.do(ctx, http.MethodGet, "/latest/device/"+url.PathEscape(deviceID)+"/summary", nil, &rec)
	return rec, err
}

// DeviceHistory fetches historical sensor records, newest first. limit
// caps the record count; hours bounds the lookback window.
func (c *Client) DeviceHistory(ctx context.Context, deviceID string, limit, hours int) ([]models.DeviceSensorRecord, error) {
	path := fmt.Sprintf("/devices/%s/data?limit=%d&hours=%d", url.PathEscape(deviceID), limit, hours)
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return listOrWrapped[models.DeviceSensorRecord](raw, "data"), nil
}

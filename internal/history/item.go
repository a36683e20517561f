// Package history reconciles the two record streams behind the history
// view: exercise sessions and raw device sensor snapshots. Both arrive
// with inconsistent field names; everything downstream (feed, stats,
// calendar) consumes only the normalized Item produced here.
package history

import (
	"time"

	"github.com/envira/envira-cli/internal/models"
)

// ItemType tags a normalized history item.
type ItemType string

const (
	TypeDevice   ItemType = "device"
	TypeExercise ItemType = "exercise"
)

// Item is the normalized superset record the rendering layer consumes.
// Timestamp is zero when no source field could be parsed; such items stay
// in the feed but are excluded from date grouping.
type Item struct {
	Type      ItemType
	Title     string
	Timestamp time.Time
	Status    string

	// Device fields
	Score    *float64
	DeviceID string
	Sensors  models.SensorValues

	// Exercise fields
	Duration       *float64 // minutes
	ExerciseID     string
	StepsCompleted *int
	TotalSteps     *int
	Notes          string
}

// timestampLayouts covers the formats the backend has been observed to
// emit, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp returns the zero time when s is empty or matches no
// known layout. Callers treat zero as "unorderable", never as an error.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NormalizeDevice maps a raw sensor record to an Item. The `timestamp`
// field is authoritative; `processed_at` is a pipeline artifact used only
// as a fallback.
func NormalizeDevice(rec models.DeviceSensorRecord) Item {
	ts := rec.Timestamp
	if ts == "" {
		ts = rec.ProcessedAt
	}
	return Item{
		Type:      TypeDevice,
		Title:     "Environment Check",
		Timestamp: parseTimestamp(ts),
		Status:    "completed",
		Score:     rec.Score(),
		DeviceID:  rec.DeviceID,
		Sensors:   rec.Sensors,
	}
}

// NormalizeExercise maps a raw exercise session record to an Item.
func NormalizeExercise(rec models.ExerciseHistoryRecord) Item {
	title := rec.ExerciseName
	if title == "" {
		title = rec.Name
	}
	if title == "" {
		title = "Unknown Exercise"
	}

	ts := rec.CompletedAt
	if ts == "" {
		ts = rec.CreatedAt
	}
	if ts == "" {
		ts = rec.Timestamp
	}

	duration := rec.DurationMinutes
	if duration == nil {
		duration = rec.Duration
	}

	status := rec.Status
	if status == "" {
		status = "completed"
	}

	return Item{
		Type:           TypeExercise,
		Title:          title,
		Timestamp:      parseTimestamp(ts),
		Status:         status,
		Duration:       duration,
		ExerciseID:     rec.ExerciseID,
		StepsCompleted: rec.StepsCompleted,
		TotalSteps:     rec.TotalSteps,
		Notes:          rec.Notes,
	}
}

// NormalizeDevices maps a whole device fetch.
func NormalizeDevices(recs []models.DeviceSensorRecord) []Item {
	items := make([]Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, NormalizeDevice(rec))
	}
	return items
}

// NormalizeExercises maps a whole exercise-history fetch.
func NormalizeExercises(recs []models.ExerciseHistoryRecord) []Item {
	items := make([]Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, NormalizeExercise(rec))
	}
	return items
}

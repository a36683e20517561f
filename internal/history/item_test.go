package history

import (
	"testing"

	"github.com/envira/envira-cli/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestNormalizeDevice_TimestampFieldWins(t *testing.T) {
	rec := models.DeviceSensorRecord{
		DeviceID:    "esp32-001",
		Timestamp:   "2026-03-02T10:00:00Z",
		ProcessedAt: "2026-03-02T10:05:00Z",
		IEQScore:    fptr(82),
	}

	item := NormalizeDevice(rec)

	if got := item.Timestamp.UTC().Format("2006-01-02T15:04:05Z"); got != "2026-03-02T10:00:00Z" {
		t.Errorf("expected the timestamp field to win over processed_at, got %s", got)
	}
	if item.Title != "Environment Check" {
		t.Errorf("unexpected title %q", item.Title)
	}
	if item.Score == nil || *item.Score != 82 {
		t.Errorf("expected score 82, got %v", item.Score)
	}
}

func TestNormalizeDevice_ProcessedAtFallback(t *testing.T) {
	rec := models.DeviceSensorRecord{
		ProcessedAt:        "2026-03-02T10:05:00Z",
		EnvironmentalScore: fptr(61),
	}

	item := NormalizeDevice(rec)

	if item.Timestamp.IsZero() {
		t.Fatal("expected processed_at to be used when timestamp is absent")
	}
	if item.Score == nil || *item.Score != 61 {
		t.Errorf("expected environmental_score fallback, got %v", item.Score)
	}
}

func TestNormalizeDevice_NoTimestampKeptWithZeroTime(t *testing.T) {
	item := NormalizeDevice(models.DeviceSensorRecord{DeviceID: "esp32-001"})

	if !item.Timestamp.IsZero() {
		t.Errorf("expected zero timestamp, got %v", item.Timestamp)
	}
}

func TestNormalizeExercise_FieldFallbackChains(t *testing.T) {
	cases := []struct {
		name      string
		rec       models.ExerciseHistoryRecord
		wantTitle string
		wantZero  bool
	}{
		{
			name:      "exercise_name wins",
			rec:       models.ExerciseHistoryRecord{ExerciseName: "Box Breathing", Name: "other", CompletedAt: "2026-01-05T08:00:00Z"},
			wantTitle: "Box Breathing",
		},
		{
			name:      "name fallback",
			rec:       models.ExerciseHistoryRecord{Name: "Desk Stretch", CreatedAt: "2026-01-05T08:00:00Z"},
			wantTitle: "Desk Stretch",
		},
		{
			name:      "unknown title and timestamp fallback",
			rec:       models.ExerciseHistoryRecord{Timestamp: "2026-01-05T08:00:00Z"},
			wantTitle: "Unknown Exercise",
		},
		{
			name:      "no timestamp at all",
			rec:       models.ExerciseHistoryRecord{Name: "Walk"},
			wantTitle: "Walk",
			wantZero:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := NormalizeExercise(tc.rec)
			if item.Title != tc.wantTitle {
				t.Errorf("title = %q, want %q", item.Title, tc.wantTitle)
			}
			if item.Timestamp.IsZero() != tc.wantZero {
				t.Errorf("timestamp zero = %v, want %v", item.Timestamp.IsZero(), tc.wantZero)
			}
		})
	}
}

func TestNormalizeExercise_DurationFallback(t *testing.T) {
	withMinutes := NormalizeExercise(models.ExerciseHistoryRecord{DurationMinutes: fptr(10), Duration: fptr(600)})
	if withMinutes.Duration == nil || *withMinutes.Duration != 10 {
		t.Errorf("expected duration_minutes to win, got %v", withMinutes.Duration)
	}

	withGeneric := NormalizeExercise(models.ExerciseHistoryRecord{Duration: fptr(5)})
	if withGeneric.Duration == nil || *withGeneric.Duration != 5 {
		t.Errorf("expected duration fallback, got %v", withGeneric.Duration)
	}
}

package history

import (
	"errors"
	"testing"

	"github.com/envira/envira-cli/internal/constants"
	hist "github.com/envira/envira-cli/internal/history"
	"github.com/envira/envira-cli/internal/models"
)

func TestExerciseFetchFailureKeepsDeviceItems(t *testing.T) {
	m := New(nil, "esp32-001")

	m, cmd := m.Update(exerciseMsg{err: errors.New("exercise backend down")})
	if cmd == nil {
		t.Fatal("expected a status notice for the failed exercise fetch")
	}
	status, ok := cmd().(constants.StatusMsg)
	if !ok {
		t.Fatalf("cmd yielded %T, want StatusMsg", cmd())
	}
	if !status.IsError {
		t.Error("exercise fetch failure should surface as an error notice")
	}

	score := 75.0
	m, _ = m.Update(deviceMsg{records: []models.DeviceSensorRecord{
		{DeviceID: "esp32-001", IEQScore: &score, Timestamp: "2026-08-30T10:00:00Z"},
	}})

	if len(m.feed) != 1 {
		t.Fatalf("feed has %d items, want the device item despite the exercise failure", len(m.feed))
	}
	if m.feed[0].Type != hist.TypeDevice {
		t.Errorf("feed item type = %q, want device", m.feed[0].Type)
	}
	if m.exErr == "" {
		t.Error("exercise error should stay recorded for the empty-feed message")
	}
	if m.devErr != "" {
		t.Errorf("device stream should carry no error, got %q", m.devErr)
	}
}

func TestDeviceFetchFailureKeepsExerciseItems(t *testing.T) {
	m := New(nil, "esp32-001")

	mins := 5.0
	m, _ = m.Update(exerciseMsg{records: []models.ExerciseHistoryRecord{
		{ExerciseName: "Box Breathing", CompletedAt: "2026-08-30T09:00:00Z", DurationMinutes: &mins},
	}})
	m, cmd := m.Update(deviceMsg{err: errors.New("device backend down")})

	if cmd == nil {
		t.Fatal("expected a status notice for the failed device fetch")
	}
	if len(m.feed) != 1 || m.feed[0].Type != hist.TypeExercise {
		t.Fatalf("exercise item should survive the device failure, feed = %+v", m.feed)
	}
	if m.stats.Completed != 1 {
		t.Errorf("stats.Completed = %d, want 1", m.stats.Completed)
	}
}

func TestBothStreamsFailingReportsEmptyFeed(t *testing.T) {
	m := New(nil, "esp32-001")

	m, _ = m.Update(exerciseMsg{err: errors.New("down")})
	m, _ = m.Update(deviceMsg{err: errors.New("down")})

	if len(m.feed) != 0 {
		t.Fatalf("feed should be empty, got %d items", len(m.feed))
	}
	if m.devErr == "" || m.exErr == "" {
		t.Error("both stream errors should be recorded")
	}
}

package exercises

import (
	"testing"

	"github.com/envira/envira-cli/internal/exercise"
	"github.com/envira/envira-cli/internal/models"
)

func completedRunModel(t *testing.T) Model {
	t.Helper()

	steps := []models.ExerciseStep{{Title: "Breathe", DurationSeconds: 1}}
	ex := models.Exercise{ExerciseID: "ex-1", Name: "Box Breathing", Steps: steps}

	tmr, err := exercise.New(steps)
	if err != nil {
		t.Fatalf("creating timer: %v", err)
	}
	if err := tmr.Start(); err != nil {
		t.Fatalf("starting timer: %v", err)
	}
	if result := tmr.Skip(); !result.Completed {
		t.Fatal("expected skipping the only step to complete the run")
	}

	m := New(nil)
	m.detail = &ex
	m.timer = tmr
	m.view = viewTimer
	m.done = true
	return m
}

func TestBlurAfterCompletionReturnsToCatalog(t *testing.T) {
	m := completedRunModel(t)

	m = m.Blur()

	if m.view != viewCatalog {
		t.Errorf("view = %v after blur, want catalog", m.view)
	}
	if m.done {
		t.Error("completion flag should clear on blur")
	}
	if m.timer != nil {
		t.Error("timer should be discarded on blur")
	}
}

func TestStaleReturnMsgIgnoredAfterBlur(t *testing.T) {
	m := completedRunModel(t)
	staleGen := m.timerGen

	m = m.Blur()
	m, _ = m.Update(returnMsg{gen: staleGen})

	if m.view != viewCatalog {
		t.Errorf("view = %v after stale return, want catalog", m.view)
	}
}

func TestReturnMsgResetsCompletedRun(t *testing.T) {
	m := completedRunModel(t)

	m, _ = m.Update(returnMsg{gen: m.timerGen})

	if m.view != viewCatalog {
		t.Errorf("view = %v after return delay, want catalog", m.view)
	}
	if m.done || m.timer != nil || m.detail != nil {
		t.Error("run state should be fully reset after the return delay")
	}
}

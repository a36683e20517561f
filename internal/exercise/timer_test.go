package exercise

import (
	"testing"

	"github.com/envira/envira-cli/internal/models"
)

func threeStepTimer(t *testing.T) *Timer {
	t.Helper()
	timer, err := New([]models.ExerciseStep{
		{Title: "Settle", DurationSeconds: 10},
		{Title: "Breathe", DurationSeconds: 5},
		{Title: "Release", DurationSeconds: 8},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return timer
}

func TestNew_RequiresSteps(t *testing.T) {
	if _, err := New(nil); err != ErrNoSteps {
		t.Errorf("expected ErrNoSteps, got %v", err)
	}
}

func TestTimer_PauseFreezesCountdown(t *testing.T) {
	timer := threeStepTimer(t)
	if err := timer.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Three seconds into step 1: 10 -> 7 remaining.
	for i := 0; i < 3; i++ {
		timer.Tick()
	}
	if timer.Remaining() != 7 {
		t.Fatalf("remaining = %d, want 7", timer.Remaining())
	}

	timer.Pause()
	for i := 0; i < 10; i++ {
		timer.Tick()
	}
	if timer.Remaining() != 7 {
		t.Errorf("ticks while paused changed remaining to %d, want frozen at 7", timer.Remaining())
	}

	timer.Resume()
	timer.Tick()
	if timer.Remaining() != 6 {
		t.Errorf("resume should continue from 7, got remaining = %d", timer.Remaining())
	}
}

func TestTimer_StepExpiryAdvances(t *testing.T) {
	timer := threeStepTimer(t)
	timer.Start()

	var advanced bool
	for i := 0; i < 10; i++ {
		res := timer.Tick()
		advanced = res.StepAdvanced
	}

	if !advanced {
		t.Fatal("tenth tick of a 10s step should advance")
	}
	if timer.StepIndex() != 1 {
		t.Errorf("step index = %d, want 1", timer.StepIndex())
	}
	if timer.Remaining() != 5 {
		t.Errorf("remaining = %d, want next step's 5", timer.Remaining())
	}
	if timer.State() != Running {
		t.Errorf("state = %v, want Running", timer.State())
	}
}

func TestTimer_LastStepCompletes(t *testing.T) {
	timer := threeStepTimer(t)
	timer.Start()

	var last TickResult
	for i := 0; i < 10+5+8; i++ {
		last = timer.Tick()
	}

	if !last.Completed {
		t.Fatal("expiring the final step should complete the timer")
	}
	if timer.State() != Completed {
		t.Errorf("state = %v, want Completed", timer.State())
	}

	// No countdown after completion.
	if res := timer.Tick(); res.StepAdvanced || res.Completed {
		t.Errorf("tick after completion should be a no-op, got %+v", res)
	}
}

func TestTimer_ResetFromAnyState(t *testing.T) {
	timer := threeStepTimer(t)
	timer.Start()
	for i := 0; i < 12; i++ {
		timer.Tick()
	}
	timer.Pause()

	timer.Reset()

	if timer.State() != NotStarted {
		t.Errorf("state = %v, want NotStarted", timer.State())
	}
	if timer.StepIndex() != 0 || timer.Remaining() != 10 {
		t.Errorf("reset should return to step 0 with 10s, got step %d remaining %d", timer.StepIndex(), timer.Remaining())
	}
}

func TestTimer_StartOnlyFromNotStarted(t *testing.T) {
	timer := threeStepTimer(t)
	timer.Start()
	if err := timer.Start(); err != ErrNotRunnable {
		t.Errorf("second Start should fail with ErrNotRunnable, got %v", err)
	}
}

func TestTimer_SkipOnLastStepCompletes(t *testing.T) {
	timer := threeStepTimer(t)
	timer.Start()
	timer.Skip()
	timer.Skip()

	res := timer.Skip()

	if !res.Completed {
		t.Fatal("skipping the last step should complete")
	}
	if timer.State() != Completed {
		t.Errorf("state = %v, want Completed", timer.State())
	}
}

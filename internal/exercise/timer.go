// Package exercise implements the client-side step timer that drives a
// guided exercise session. The timer is a pure state machine; the TUI
// feeds it one Tick per second while it is running and reports
// transitions to the backend.
package exercise

import (
	"errors"

	"github.com/envira/envira-cli/internal/models"
)

// State is the timer's lifecycle state.
type State int

const (
	NotStarted State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	ErrNoSteps     = errors.New("exercise has no steps")
	ErrNotRunnable = errors.New("timer is not in a runnable state")
)

// TickResult reports what a one-second tick did.
type TickResult struct {
	// StepAdvanced is true when the current step's countdown expired and
	// the timer moved to the next step.
	StepAdvanced bool
	// Completed is true when the expired step was the last one.
	Completed bool
}

// Timer runs a step sequence. All mutation goes through the transition
// methods; illegal transitions are no-ops or errors, never panics.
type Timer struct {
	steps     []models.ExerciseStep
	stepIndex int
	remaining int
	state     State
}

// New creates a timer positioned at the first step, not started.
func New(steps []models.ExerciseStep) (*Timer, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	return &Timer{
		steps:     steps,
		remaining: steps[0].DurationSeconds,
		state:     NotStarted,
	}, nil
}

func (t *Timer) State() State                   { return t.state }
func (t *Timer) StepIndex() int                 { return t.stepIndex }
func (t *Timer) TotalSteps() int                { return len(t.steps) }
func (t *Timer) Remaining() int                 { return t.remaining }
func (t *Timer) CurrentStep() models.ExerciseStep { return t.steps[t.stepIndex] }

// Progress is the fraction of steps entered so far, for the progress bar.
func (t *Timer) Progress() float64 {
	if t.state == Completed {
		return 1
	}
	return float64(t.stepIndex+1) / float64(len(t.steps))
}

// Start begins the countdown. Only valid from NotStarted.
func (t *Timer) Start() error {
	if t.state != NotStarted {
		return ErrNotRunnable
	}
	t.state = Running
	return nil
}

// Pause freezes the countdown. A no-op unless running.
func (t *Timer) Pause() {
	if t.state == Running {
		t.state = Paused
	}
}

// Resume continues from where Pause left off. A no-op unless paused.
func (t *Timer) Resume() {
	if t.state == Paused {
		t.state = Running
	}
}

// Reset returns the timer to its initial state: first step, full
// duration, not started. Valid from any state.
func (t *Timer) Reset() {
	t.stepIndex = 0
	t.remaining = t.steps[0].DurationSeconds
	t.state = NotStarted
}

// Tick consumes one second. It only has an effect while Running; ticks
// delivered in any other state are dropped, which is what makes pause
// freeze the displayed time and completion stop the countdown.
func (t *Timer) Tick() TickResult {
	if t.state != Running {
		return TickResult{}
	}
	if t.remaining > 1 {
		t.remaining--
		return TickResult{}
	}
	t.remaining = 0
	return t.advance()
}

// Skip ends the current step immediately, advancing or completing.
func (t *Timer) Skip() TickResult {
	if t.state != Running && t.state != Paused {
		return TickResult{}
	}
	return t.advance()
}

func (t *Timer) advance() TickResult {
	next := t.stepIndex + 1
	if next >= len(t.steps) {
		t.state = Completed
		return TickResult{StepAdvanced: true, Completed: true}
	}
	t.stepIndex = next
	t.remaining = t.steps[next].DurationSeconds
	t.state = Running
	return TickResult{StepAdvanced: true}
}

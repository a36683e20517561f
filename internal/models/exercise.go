package models

// ExerciseStep is one timed step of an exercise.
type ExerciseStep struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Guidance        string   `json:"guidance,omitempty"`
	Cues            []string `json:"cues,omitempty"`
	DurationSeconds int      `json:"duration_seconds"`
}

// Exercise is a catalog entry; Steps is only populated by the detail
// endpoint.
type Exercise struct {
	ExerciseID           string         `json:"exercise_id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	Category             string         `json:"category"`
	Difficulty           string         `json:"difficulty"`
	Benefits             []string       `json:"benefits,omitempty"`
	TotalDurationSeconds int            `json:"total_duration_seconds"`
	Steps                []ExerciseStep `json:"steps,omitempty"`
}

// ExerciseSession is the backend-tracked attempt at an exercise,
// identified separately from the exercise definition.
type ExerciseSession struct {
	SessionID   string `json:"session_id"`
	ExerciseID  string `json:"exercise_id,omitempty"`
	CurrentStep int    `json:"current_step,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ExerciseStats is the aggregate the backend keeps per user.
type ExerciseStats struct {
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	TotalMinutes      float64 `json:"total_minutes"`
	CurrentStreak     int     `json:"current_streak,omitempty"`
}

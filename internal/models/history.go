package models

// SensorValues is the per-reading sensor map. Every field is optional on
// the wire; zero means "not reported" and renders as such.
type SensorValues struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	AirQuality  *float64 `json:"air_quality,omitempty"`
	Light       *float64 `json:"light,omitempty"`
	Sound       *float64 `json:"sound,omitempty"`
}

// DeviceSensorRecord is one environmental snapshot as the backend sends
// it. The score and timestamp each arrive under one of two field names
// depending on the ingestion path; normalization in the history package
// resolves that.
type DeviceSensorRecord struct {
	ID                 string       `json:"id"`
	DeviceID           string       `json:"device_id"`
	SiteID             string       `json:"site_id"`
	Sensors            SensorValues `json:"sensors"`
	IEQScore           *float64     `json:"ieq_score,omitempty"`
	EnvironmentalScore *float64     `json:"environmental_score,omitempty"`
	ProcessedAt        string       `json:"processed_at,omitempty"`
	Timestamp          string       `json:"timestamp,omitempty"`
}

// Score returns the environmental quality score under whichever field
// name the backend used, or nil when neither is present.
func (r DeviceSensorRecord) Score() *float64 {
	if r.IEQScore != nil {
		return r.IEQScore
	}
	return r.EnvironmentalScore
}

// ExerciseHistoryRecord is one completed or attempted exercise session.
// Name, timestamp, and duration each have alternate field spellings.
type ExerciseHistoryRecord struct {
	ID              string   `json:"id"`
	ExerciseID      string   `json:"exercise_id,omitempty"`
	ExerciseName    string   `json:"exercise_name,omitempty"`
	Name            string   `json:"name,omitempty"`
	CompletedAt     string   `json:"completed_at,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	Timestamp       string   `json:"timestamp,omitempty"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
	Duration        *float64 `json:"duration,omitempty"`
	StepsCompleted  *int     `json:"steps_completed,omitempty"`
	TotalSteps      *int     `json:"total_steps,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Status          string   `json:"status,omitempty"`
}

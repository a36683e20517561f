package constants

import "time"

const (
	AppName            = "envira"
	DefaultKeyringUser = "auth-token"
	Version            = "v0.3.0"

	// DefaultBaseURL is the production backend used when the config file
	// does not override it.
	DefaultBaseURL = "https://envira-backend-production.up.railway.app"

	// DefaultDeviceID is the device polled when the user has not picked one.
	DefaultDeviceID = "esp32-001"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Dashboard polling
	PollInterval = 30 * time.Second

	// History fetch window
	HistoryLimit = 50
	HistoryHours = 720 // 30 days

	// Score thresholds for the qualitative labels
	ScoreExcellent = 80
	ScoreGood      = 60

	// Delay before the exercise view returns to the catalog after completion
	CompletionReturnDelay = 2 * time.Second
)

// Score label text shared by the dashboard and the calendar.
const (
	LabelExcellent      = "Excellent"
	LabelGood           = "Good"
	LabelNeedsAttention = "Needs Attention"
)

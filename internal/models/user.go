package models

// Profile is the authenticated user's account record.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Device is one registered sensor unit.
type Device struct {
	DeviceID string `json:"device_id"`
	SiteID   string `json:"site_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Online   bool   `json:"online,omitempty"`
}

// ActivityPreference is the per-activity detail the user picks during
// onboarding.
type ActivityPreference struct {
	Priority string `json:"priority"`
	Enabled  bool   `json:"enabled"`
}

// Preferences is the aggregate preference object submitted to the backend.
type Preferences struct {
	ActivityPreferences map[string]ActivityPreference `json:"activity_preferences"`
	SensitivityLevels   map[string]string             `json:"sensitivity_levels"`
	HealthConditions    []string                      `json:"health_conditions"`
}

// DefaultSensitivityLevels mirrors the onboarding defaults: air quality
// is treated as high-sensitivity, everything else medium.
func DefaultSensitivityLevels() map[string]string {
	return map[string]string{
		"temperature": "medium",
		"humidity":    "medium",
		"light":       "medium",
		"sound":       "medium",
		"air_quality": "high",
	}
}

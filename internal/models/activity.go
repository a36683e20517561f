package models

// Activity is a read-only catalog entry describing something the user
// might be doing (studying, coding, relaxing, ...). Immutable from the
// client's perspective during a session.
type Activity struct {
	ActivityID      string         `json:"activity_id"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Category        string         `json:"category,omitempty"`
	IdealConditions map[string]any `json:"ideal_conditions,omitempty"`
}

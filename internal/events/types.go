// Package events publishes roster-change events for downstream consumers.
package events

import "time"

// Roster actions carried in the event_type message header.
const (
	ActionSignup     = "roster.signup"
	ActionUnregister = "roster.unregister"
)

// RosterChanged represents the message emitted after a roster mutation is
// applied to the activity directory.
type RosterChanged struct {
	EventID    string    `json:"event_id"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

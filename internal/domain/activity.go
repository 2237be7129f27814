package domain

// Activity represents one extracurricular offering and its enrolled roster.
type Activity struct {
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

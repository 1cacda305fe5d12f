package models

import "time"

// Step identifies the current position in the booking dialogue.
type Step string

const (
	StepWelcome Step = "welcome"
	StepCity    Step = "city"
	StepDate    Step = "date"
	StepTime    Step = "time"
	StepName    Step = "name"
	StepEmail   Step = "email"
	StepComment Step = "comment"
)

// Session holds the in-progress dialogue state for one sender. Fields are
// populated progressively as the dialogue advances; a field is only set when
// its step has been passed with valid input.
type Session struct {
	Sender    string    `json:"sender"`
	Step      Step      `json:"step"`
	City      string    `json:"city,omitempty"`
	Date      string    `json:"date,omitempty"` // YYYY-MM-DD
	Time      string    `json:"time,omitempty"` // HH:MM
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

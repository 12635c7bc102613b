package domain

import "time"

// Suggestion lifecycle states.
const (
	SuggestionOpen     = "open"
	SuggestionAnswered = "answered"
)

// Suggestion is a store-improvement request submitted by a customer.
// The admin response lives on the record itself, not in client-side storage.
type Suggestion struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	PhoneNumber   string     `json:"phoneNumber,omitempty"`
	Nickname      string     `json:"nickname,omitempty"`
	Status        string     `json:"status"`
	AdminResponse string     `json:"adminResponse,omitempty"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

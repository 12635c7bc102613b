package domain

import "time"

// Notice is a store announcement. ScheduledAt defers visibility: the notice
// counts as published only once the scheduled time has passed, evaluated
// server-side at read time.
type Notice struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsPinned    bool       `json:"isPinned"`
	IsPublished bool       `json:"isPublished"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// VisibleAt reports whether the notice should appear in the public listing at t.
func (n Notice) VisibleAt(t time.Time) bool {
	if !n.IsPublished {
		return false
	}
	if n.ScheduledAt != nil && t.Before(*n.ScheduledAt) {
		return false
	}
	return true
}

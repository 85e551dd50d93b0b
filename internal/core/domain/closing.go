package domain

import "time"

// ClosingPeriod marks a calendar month as administratively closed. While the
// marker exists, punches and adjustments dated inside the month cannot be
// mutated. Reopening deletes the marker.
type ClosingPeriod struct {
	ClosingID string    `json:"closingID"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Notes     string    `json:"notes,omitempty"`
	ClosedBy  string    `json:"closedBy"`
	ClosedAt  time.Time `json:"closedAt"`
}

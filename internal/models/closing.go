package models

import "time"

// ClosingPeriod maps the closing_periods table, unique per (year, month).
type ClosingPeriod struct {
	ClosingID string    `db:"closing_id"`
	Year      int       `db:"year"`
	Month     int       `db:"month"`
	Notes     string    `db:"notes"`
	ClosedBy  string    `db:"closed_by"`
	ClosedAt  time.Time `db:"closed_at"`
}

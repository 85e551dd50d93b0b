package models

import "time"

// Alert maps the alerts table.
type Alert struct {
	AlertID   string     `db:"alert_id"`
	UserID    string     `db:"user_id"`
	Type      string     `db:"type"`
	Severity  string     `db:"severity"`
	Title     string     `db:"title"`
	Message   string     `db:"message"`
	ReadAt    *time.Time `db:"read_at"`
	CreatedAt time.Time  `db:"created_at"`
}

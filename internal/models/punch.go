package models

import "time"

// Punch maps the punches table. The (user_id, punch_date, type) unique
// constraint enforces one canonical punch of each type per local day.
type Punch struct {
	PunchID     string    `db:"punch_id"`
	UserID      string    `db:"user_id"`
	Type        string    `db:"type"`
	Source      string    `db:"source"`
	PunchedAt   time.Time `db:"punched_at"`
	PunchDate   time.Time `db:"punch_date"`
	Reason      string    `db:"reason"`
	Geolocation *string   `db:"geolocation"`
	PhotoRef    *string   `db:"photo_ref"`
	AuditFields
}

package models

import "time"

// AuditEvent maps the audit_events table. Details is stored as JSONB.
type AuditEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ActorID     string    `db:"actor_id"`
	SubjectID   string    `db:"subject_id"`
	Description string    `db:"description"`
	Details     []byte    `db:"details"`
	CreatedAt   time.Time `db:"created_at"`
}

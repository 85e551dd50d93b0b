package domain

import "time"

// AuditEvent is an append-only record of a sensitive operation. Writing one is
// fire-and-forget: a failed audit write is logged and never aborts the
// operation it describes.
type AuditEvent struct {
	EventID     string         `json:"eventID"`
	EventType   string         `json:"eventType"`
	ActorID     string         `json:"actorID"`
	SubjectID   string         `json:"subjectID"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

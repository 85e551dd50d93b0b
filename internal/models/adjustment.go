package models

import "time"

// Adjustment maps the adjustments table.
type Adjustment struct {
	AdjustmentID      string     `db:"adjustment_id"`
	UserID            string     `db:"user_id"`
	TargetPunchID     *string    `db:"target_punch_id"`
	OriginalTimestamp *time.Time `db:"original_timestamp"`
	OriginalType      *string    `db:"original_type"`
	ProposedTimestamp time.Time  `db:"proposed_timestamp"`
	ProposedType      string     `db:"proposed_type"`
	Reason            string     `db:"reason"`
	RequesterID       string     `db:"requester_id"`
	Status            string     `db:"status"`
	IsAddition        bool       `db:"is_addition"`
	Geolocation       *string    `db:"geolocation"`
	PhotoRef          *string    `db:"photo_ref"`
	ResolvedBy        *string    `db:"resolved_by"`
	ResolvedAt        *time.Time `db:"resolved_at"`
	ResolutionNotes   string     `db:"resolution_notes"`
	AuditFields
}

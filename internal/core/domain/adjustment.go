package domain

import "time"

// AdjustmentStatus is the lifecycle state of a correction request.
// Approved and rejected are terminal.
type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "pending"
	AdjustmentApproved AdjustmentStatus = "approved"
	AdjustmentRejected AdjustmentStatus = "rejected"
)

// Adjustment is a pending correction or addition to the canonical punches.
// When it targets an existing punch the original timestamp/type are captured
// for audit before any mutation happens.
type Adjustment struct {
	AdjustmentID      string           `json:"adjustmentID"`
	UserID            string           `json:"userID"`
	TargetPunchID     *string          `json:"targetPunchID,omitempty"`
	OriginalTimestamp *time.Time       `json:"originalTimestamp,omitempty"`
	OriginalType      *PunchType       `json:"originalType,omitempty"`
	ProposedTimestamp time.Time        `json:"proposedTimestamp"`
	ProposedType      PunchType        `json:"proposedType"`
	Reason            string           `json:"reason"`
	RequesterID       string           `json:"requesterID"`
	Status            AdjustmentStatus `json:"status"`
	IsAddition        bool             `json:"isAddition"`
	Geolocation       *string          `json:"geolocation,omitempty"`
	PhotoRef          *string          `json:"photoRef,omitempty"`
	ResolvedBy        *string          `json:"resolvedBy,omitempty"`
	ResolvedAt        *time.Time       `json:"resolvedAt,omitempty"`
	ResolutionNotes   string           `json:"resolutionNotes,omitempty"`
	AuditFields
}

package dto

import (
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// CreateAdjustmentRequest opens a correction (existing punch) or addition
// (missing punch) request. UserID is optional: managers may request on behalf
// of an employee; employees default to themselves.
type CreateAdjustmentRequest struct {
	TargetPunchID     *string   `json:"targetPunchID,omitempty"`
	UserID            *string   `json:"userID,omitempty"`
	ProposedTimestamp time.Time `json:"proposedTimestamp" binding:"required"`
	ProposedType      string    `json:"proposedType" binding:"required,oneof=entrada saida_intervalo retorno_intervalo saida_final"`
	Reason            string    `json:"reason" binding:"required"`
	Geolocation       *string   `json:"geolocation,omitempty"`
	PhotoRef          *string   `json:"photoRef,omitempty"`
}

// RejectAdjustmentRequest carries the mandatory rejection reason.
type RejectAdjustmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AdjustmentResponse is the API representation of an adjustment.
type AdjustmentResponse struct {
	AdjustmentID      string     `json:"adjustmentID"`
	UserID            string     `json:"userID"`
	TargetPunchID     *string    `json:"targetPunchID,omitempty"`
	OriginalTimestamp *time.Time `json:"originalTimestamp,omitempty"`
	OriginalType      *string    `json:"originalType,omitempty"`
	ProposedTimestamp time.Time  `json:"proposedTimestamp"`
	ProposedType      string     `json:"proposedType"`
	Reason            string     `json:"reason"`
	RequesterID       string     `json:"requesterID"`
	Status            string     `json:"status"`
	IsAddition        bool       `json:"isAddition"`
	ResolvedBy        *string    `json:"resolvedBy,omitempty"`
	ResolvedAt        *time.Time `json:"resolvedAt,omitempty"`
	ResolutionNotes   string     `json:"resolutionNotes,omitempty"`
}

// ToAdjustmentResponse maps a domain adjustment to its API shape.
func ToAdjustmentResponse(a *domain.Adjustment) AdjustmentResponse {
	var originalType *string
	if a.OriginalType != nil {
		t := string(*a.OriginalType)
		originalType = &t
	}
	return AdjustmentResponse{
		AdjustmentID:      a.AdjustmentID,
		UserID:            a.UserID,
		TargetPunchID:     a.TargetPunchID,
		OriginalTimestamp: a.OriginalTimestamp,
		OriginalType:      originalType,
		ProposedTimestamp: a.ProposedTimestamp,
		ProposedType:      string(a.ProposedType),
		Reason:            a.Reason,
		RequesterID:       a.RequesterID,
		Status:            string(a.Status),
		IsAddition:        a.IsAddition,
		ResolvedBy:        a.ResolvedBy,
		ResolvedAt:        a.ResolvedAt,
		ResolutionNotes:   a.ResolutionNotes,
	}
}

// ToAdjustmentResponses maps a slice of adjustments.
func ToAdjustmentResponses(adjustments []domain.Adjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		out[i] = ToAdjustmentResponse(&adjustments[i])
	}
	return out
}

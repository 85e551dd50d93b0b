package services

import (
	"context"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
	"github.com/pontocerto/ponto_backend/internal/dto"
)

// AdjustmentSvcFacade manages the correction/addition approval workflow. It is
// the only writer allowed to mutate an existing canonical punch.
type AdjustmentSvcFacade interface {
	// RequestAdjustment opens a pending request. Conflicts with an existing
	// pending request of the same proposed type for the same user/day.
	RequestAdjustment(ctx context.Context, req dto.CreateAdjustmentRequest, requesterID string) (*domain.Adjustment, error)

	// Approve applies the adjustment: re-validates sequencing as of approval
	// time, mutates or inserts the canonical punch, then triggers a ledger
	// recompute. Terminal and single-use.
	Approve(ctx context.Context, adjustmentID, approverID string) (*domain.Adjustment, error)

	// Reject closes the adjustment without touching punches or the ledger.
	// Terminal and single-use.
	Reject(ctx context.Context, adjustmentID, approverID, reason string) (*domain.Adjustment, error)

	// ListPending lists pending adjustments, newest first.
	ListPending(ctx context.Context, limit int) ([]domain.Adjustment, error)
}

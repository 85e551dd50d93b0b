package repositories

import (
	"context"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// AdjustmentReader defines read operations for correction requests.
type AdjustmentReader interface {
	// FindAdjustmentByID retrieves a single adjustment.
	FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error)

	// FindPendingByUserTypeAndRange retrieves pending adjustments for the
	// user whose proposed type matches and whose proposed timestamp falls in
	// [from, to).
	FindPendingByUserTypeAndRange(ctx context.Context, userID string, proposedType domain.PunchType, from, to time.Time) ([]domain.Adjustment, error)

	// CountPendingInRange counts pending adjustments whose proposed timestamp
	// falls in [from, to), any user. Used by the closing guard.
	CountPendingInRange(ctx context.Context, from, to time.Time) (int, error)

	// FindAdjustmentsByStatus lists adjustments with the given status, newest first.
	FindAdjustmentsByStatus(ctx context.Context, status domain.AdjustmentStatus, limit int) ([]domain.Adjustment, error)
}

// AdjustmentWriter defines write operations for correction requests.
type AdjustmentWriter interface {
	// SaveAdjustment persists a new pending adjustment.
	SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) error

	// ResolveAdjustment transitions a pending adjustment to a terminal status.
	// Returns apperrors.ErrConflict when the adjustment is no longer pending,
	// making the transition single-use even under races.
	ResolveAdjustment(ctx context.Context, adjustment domain.Adjustment) error

	// ApproveAdjustment applies an approved adjustment atomically: the punch
	// write (insert for additions, overwrite for corrections) and the
	// pending -> approved transition happen in one transaction, so a failed
	// resolution can never leave an already-mutated punch behind. Returns
	// apperrors.ErrConflict when the adjustment is no longer pending and
	// apperrors.ErrDuplicate when the punch write violates the per-day
	// uniqueness constraint.
	ApproveAdjustment(ctx context.Context, adjustment domain.Adjustment, punch domain.Punch) error
}

// AdjustmentRepositoryFacade combines all adjustment repository interfaces.
type AdjustmentRepositoryFacade interface {
	AdjustmentReader
	AdjustmentWriter
}

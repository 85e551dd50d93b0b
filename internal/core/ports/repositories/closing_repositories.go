package repositories

import (
	"context"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// ClosingRepositoryFacade defines storage operations for closing period markers.
type ClosingRepositoryFacade interface {
	// FindClosingPeriod retrieves the marker for (year, month), if any.
	FindClosingPeriod(ctx context.Context, year, month int) (*domain.ClosingPeriod, error)

	// SaveClosingPeriod persists a new marker. Returns apperrors.ErrDuplicate
	// when the month is already closed.
	SaveClosingPeriod(ctx context.Context, period domain.ClosingPeriod) error

	// DeleteClosingPeriod removes the marker, restoring mutability.
	DeleteClosingPeriod(ctx context.Context, year, month int) error

	// ListClosingPeriods lists all markers, most recent month first.
	ListClosingPeriods(ctx context.Context) ([]domain.ClosingPeriod, error)
}

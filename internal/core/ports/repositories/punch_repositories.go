package repositories

import (
	"context"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// PunchReader defines read operations for canonical punches.
type PunchReader interface {
	// FindPunchByID retrieves a single punch.
	FindPunchByID(ctx context.Context, punchID string) (*domain.Punch, error)

	// FindPunchesByUserAndRange retrieves a user's punches with
	// from <= punched_at < to, ordered by punched_at ascending.
	FindPunchesByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Punch, error)
}

// PunchWriter defines write operations for canonical punches.
type PunchWriter interface {
	// SavePunch persists a new canonical punch. Returns
	// apperrors.ErrDuplicate when the (user, day, type) uniqueness
	// constraint is violated.
	SavePunch(ctx context.Context, punch domain.Punch) error
}

// PunchRepositoryFacade combines all punch repository interfaces.
type PunchRepositoryFacade interface {
	PunchReader
	PunchWriter
}

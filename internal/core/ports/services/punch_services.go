package services

import (
	"context"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// PunchRegistrar defines punch creation operations.
type PunchRegistrar interface {
	// RegisterPunch records a kiosk punch for the user at server time,
	// validating it against the daily state machine.
	RegisterPunch(ctx context.Context, userID string, punchType domain.PunchType, source domain.PunchSource, geolocation, photoRef *string) (*domain.Punch, error)

	// InsertManualPunch records an administrator's direct insertion with a
	// caller-supplied timestamp. It runs the same sequence validation as
	// kiosk punches.
	InsertManualPunch(ctx context.Context, userID string, punchType domain.PunchType, at time.Time, reason, creatorID string) (*domain.Punch, error)
}

// PunchReaderSvc defines punch read operations.
type PunchReaderSvc interface {
	// GetJourney derives the daily journey for one user/day.
	GetJourney(ctx context.Context, userID string, date time.Time) (*domain.DailyJourney, error)

	// ListPunches returns a user's punches in [from, to), ordered by time.
	ListPunches(ctx context.Context, userID string, from, to time.Time) ([]domain.Punch, error)
}

// PunchSequenceValidator re-checks the daily state machine for a hypothetical
// punch. The adjustment workflow uses it at approval time.
type PunchSequenceValidator interface {
	// ValidateSequence checks whether a punch of punchType at the given
	// instant would be legal for the user, ignoring the punch identified by
	// excludePunchID (the mutation target), if any.
	ValidateSequence(ctx context.Context, userID string, punchType domain.PunchType, at time.Time, excludePunchID *string) error
}

// PunchSvcFacade combines all punch service interfaces.
type PunchSvcFacade interface {
	PunchRegistrar
	PunchReaderSvc
	PunchSequenceValidator
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/middleware"
	"github.com/pontocerto/ponto_backend/internal/utils/timecalc"
)

var (
	// ErrDuplicateType is returned when a canonical punch of the requested
	// type already exists for the user's day, whether detected up front or
	// as a lost race against the storage uniqueness constraint.
	ErrDuplicateType = errors.New("a punch of this type already exists for this day")

	// ErrMissingPriorState is returned when the daily state machine has not
	// reached the state the requested punch type needs.
	ErrMissingPriorState = errors.New("required prior punch missing for this day")
)

// BreakTooShortError rejects a retorno_intervalo before the minimum break has
// elapsed, telling the caller how long is left to wait.
type BreakTooShortError struct {
	RemainingMinutes int
}

func (e *BreakTooShortError) Error() string {
	return fmt.Sprintf("break too short: %d minute(s) remaining", e.RemainingMinutes)
}

// punchService implements the punch registry: it validates every punch
// against the per-user per-day state machine and records canonical punches.
type punchService struct {
	punchRepo  portsrepo.PunchRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	closingSvc portssvc.ClosingSvcFacade
	ledgerSvc  portssvc.LedgerSvcFacade
	auditSvc   portssvc.AuditSvcFacade
	clock      portssvc.Clock
	loc        *time.Location
	minBreak   time.Duration
}

// NewPunchService creates the punch registry service.
func NewPunchService(
	punchRepo portsrepo.PunchRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	closingSvc portssvc.ClosingSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	clock portssvc.Clock,
	loc *time.Location,
	minBreakMinutes int,
) portssvc.PunchSvcFacade {
	return &punchService{
		punchRepo:  punchRepo,
		userRepo:   userRepo,
		closingSvc: closingSvc,
		ledgerSvc:  ledgerSvc,
		auditSvc:   auditSvc,
		clock:      clock,
		loc:        loc,
		minBreak:   time.Duration(minBreakMinutes) * time.Minute,
	}
}

var _ portssvc.PunchSvcFacade = (*punchService)(nil)

// RegisterPunch records a kiosk punch at server time. Client timestamps are
// never accepted here; corrections go through the adjustment workflow.
func (s *punchService) RegisterPunch(ctx context.Context, userID string, punchType domain.PunchType, source domain.PunchSource, geolocation, photoRef *string) (*domain.Punch, error) {
	now := s.clock.Now()
	punch := domain.Punch{
		PunchID:     ulid.Make().String(),
		UserID:      userID,
		Type:        punchType,
		Source:      source,
		PunchedAt:   now,
		PunchDate:   timecalc.DateOnly(now, s.loc),
		Geolocation: geolocation,
		PhotoRef:    photoRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	return s.registerValidated(ctx, punch)
}

// InsertManualPunch records an administrator's direct insertion. The caller
// supplies the timestamp but the punch still runs the full sequence
// validation; only managers and admins may do this.
func (s *punchService) InsertManualPunch(ctx context.Context, userID string, punchType domain.PunchType, at time.Time, reason, creatorID string) (*domain.Punch, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required for manual punches", apperrors.ErrValidation)
	}
	creator, err := s.userRepo.FindUserByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator %s: %w", creatorID, err)
	}
	if creator.Role != domain.RoleAdmin && creator.Role != domain.RoleManager {
		return nil, fmt.Errorf("%w: manual punch insertion requires manager or admin role", apperrors.ErrForbidden)
	}

	now := s.clock.Now()
	punch := domain.Punch{
		PunchID:   ulid.Make().String(),
		UserID:    userID,
		Type:      punchType,
		Source:    domain.SourceManual,
		PunchedAt: at,
		PunchDate: timecalc.DateOnly(at, s.loc),
		Reason:    reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	return s.registerValidated(ctx, punch)
}

func (s *punchService) registerValidated(ctx context.Context, punch domain.Punch) (*domain.Punch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidPunchType(punch.Type) {
		return nil, fmt.Errorf("%w: unknown punch type %q", apperrors.ErrValidation, punch.Type)
	}

	user, err := s.userRepo.FindUserByID(ctx, punch.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", punch.UserID, err)
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrUserInactive, punch.UserID)
	}

	closed, err := s.closingSvc.IsDateClosed(ctx, punch.PunchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to check closing period: %w", err)
	}
	if closed {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodClosed, punch.PunchDate.Format("2006-01"))
	}

	dayStart, dayEnd := timecalc.DayBounds(punch.PunchedAt, s.loc)
	existing, err := s.punchRepo.FindPunchesByUserAndRange(ctx, punch.UserID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load punches for sequence validation: %w", err)
	}
	if err := validatePunchSequence(existing, punch.Type, punch.PunchedAt, s.minBreak); err != nil {
		return nil, err
	}

	if err := s.punchRepo.SavePunch(ctx, punch); err != nil {
		// A concurrent double-submission lost the race against the
		// (user, day, type) uniqueness constraint.
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Concurrent duplicate punch rejected by storage",
				slog.String("user_id", punch.UserID), slog.String("type", string(punch.Type)))
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, punch.Type)
		}
		logger.Error("Failed to save punch", slog.String("error", err.Error()), slog.String("user_id", punch.UserID))
		return nil, fmt.Errorf("failed to save punch: %w", err)
	}

	s.auditSvc.Log(ctx, "punch.registered", punch.CreatedBy, punch.PunchID,
		fmt.Sprintf("punch %s registered for user %s", punch.Type, punch.UserID),
		map[string]any{"type": punch.Type, "source": punch.Source, "punchedAt": punch.PunchedAt})

	logger.Info("Punch registered",
		slog.String("punch_id", punch.PunchID),
		slog.String("user_id", punch.UserID),
		slog.String("type", string(punch.Type)),
		slog.String("source", string(punch.Source)))

	go s.recomputeLedger(punch.UserID, punch.PunchDate)

	return &punch, nil
}

// recomputeLedger runs the post-punch ledger refresh off the request path.
// A failure leaves the entry stale until the next recompute or the daily
// closing picks it up.
func (s *punchService) recomputeLedger(userID string, date time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.ledgerSvc.Recompute(ctx, userID, date); err != nil {
		slog.Error("Ledger recompute after punch failed",
			slog.String("user_id", userID),
			slog.String("date", date.Format("2006-01-02")),
			slog.String("error", err.Error()))
	}
}

// GetJourney derives the journey for one user/day.
func (s *punchService) GetJourney(ctx context.Context, userID string, date time.Time) (*domain.DailyJourney, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	dayStart, dayEnd := timecalc.DayBounds(date, s.loc)
	punches, err := s.punchRepo.FindPunchesByUserAndRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load punches: %w", err)
	}
	journey := BuildDailyJourney(userID, date, punches, s.loc)
	return &journey, nil
}

// ListPunches returns a user's punches in [from, to).
func (s *punchService) ListPunches(ctx context.Context, userID string, from, to time.Time) ([]domain.Punch, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", apperrors.ErrValidation)
	}
	return s.punchRepo.FindPunchesByUserAndRange(ctx, userID, from, to)
}

// ValidateSequence checks whether a punch of punchType at the given instant
// would be legal for the user's day, ignoring the punch identified by
// excludePunchID. The adjustment workflow calls this at approval time so that
// an approval which would violate sequencing is rejected, not forced through.
func (s *punchService) ValidateSequence(ctx context.Context, userID string, punchType domain.PunchType, at time.Time, excludePunchID *string) error {
	dayStart, dayEnd := timecalc.DayBounds(at, s.loc)
	punches, err := s.punchRepo.FindPunchesByUserAndRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("failed to load punches for sequence validation: %w", err)
	}
	if excludePunchID != nil {
		filtered := punches[:0]
		for _, p := range punches {
			if p.PunchID != *excludePunchID {
				filtered = append(filtered, p)
			}
		}
		punches = filtered
	}
	return validatePunchSequence(punches, punchType, at, s.minBreak)
}

// validatePunchSequence enforces the daily state machine over the existing
// canonical punches of one day:
//
//	none -> entrada -> saida_intervalo -> retorno_intervalo -> saida_final
//
// The break pair is optional but once opened must be closed before
// saida_final, and retorno_intervalo must wait out the minimum break.
// saida_final is terminal for the day.
func validatePunchSequence(punches []domain.Punch, punchType domain.PunchType, at time.Time, minBreak time.Duration) error {
	var entrada, saidaIntervalo, retornoIntervalo, saidaFinal *domain.Punch
	for i := range punches {
		p := &punches[i]
		slot := earliestSlot(p.Type, &entrada, &saidaIntervalo, &retornoIntervalo, &saidaFinal)
		if slot != nil && (*slot == nil || p.PunchedAt.Before((*slot).PunchedAt)) {
			*slot = p
		}
	}

	switch punchType {
	case domain.PunchEntrada:
		if entrada != nil {
			return fmt.Errorf("%w: entrada", ErrDuplicateType)
		}
		if saidaFinal != nil {
			return fmt.Errorf("%w: day already finished with saida_final", ErrMissingPriorState)
		}
		return nil

	case domain.PunchSaidaIntervalo:
		if saidaIntervalo != nil {
			return fmt.Errorf("%w: saida_intervalo", ErrDuplicateType)
		}
		if entrada == nil {
			return fmt.Errorf("%w: saida_intervalo requires entrada", ErrMissingPriorState)
		}
		if saidaFinal != nil {
			return fmt.Errorf("%w: day already finished with saida_final", ErrMissingPriorState)
		}
		return nil

	case domain.PunchRetornoIntervalo:
		if retornoIntervalo != nil {
			return fmt.Errorf("%w: retorno_intervalo", ErrDuplicateType)
		}
		if saidaIntervalo == nil {
			return fmt.Errorf("%w: retorno_intervalo requires saida_intervalo", ErrMissingPriorState)
		}
		if saidaFinal != nil {
			return fmt.Errorf("%w: day already finished with saida_final", ErrMissingPriorState)
		}
		elapsed := at.Sub(saidaIntervalo.PunchedAt)
		if elapsed < minBreak {
			return &BreakTooShortError{
				RemainingMinutes: timecalc.RemainingBreakMinutes(elapsed, int(minBreak.Minutes())),
			}
		}
		return nil

	case domain.PunchSaidaFinal:
		if saidaFinal != nil {
			return fmt.Errorf("%w: saida_final", ErrDuplicateType)
		}
		if entrada == nil {
			return fmt.Errorf("%w: saida_final requires entrada", ErrMissingPriorState)
		}
		if saidaIntervalo != nil && retornoIntervalo == nil {
			return fmt.Errorf("%w: open break, retorno_intervalo required before saida_final", ErrMissingPriorState)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown punch type %q", apperrors.ErrValidation, punchType)
}

func earliestSlot(t domain.PunchType, entrada, saidaIntervalo, retornoIntervalo, saidaFinal **domain.Punch) **domain.Punch {
	switch t {
	case domain.PunchEntrada:
		return entrada
	case domain.PunchSaidaIntervalo:
		return saidaIntervalo
	case domain.PunchRetornoIntervalo:
		return retornoIntervalo
	case domain.PunchSaidaFinal:
		return saidaFinal
	}
	return nil
}

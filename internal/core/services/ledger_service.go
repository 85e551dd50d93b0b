package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/dto"
	"github.com/pontocerto/ponto_backend/internal/middleware"
	"github.com/pontocerto/ponto_backend/internal/utils/timecalc"
)

// ledgerService reconciles punches into the per-user per-day hours bank.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	punchRepo   portsrepo.PunchRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	holidayRepo portsrepo.HolidayRepositoryFacade
	closingSvc  portssvc.ClosingSvcFacade
	clock       portssvc.Clock
	loc         *time.Location
	// defaultDailyHours applies to users whose ExpectedDailyHours is zero.
	defaultDailyHours decimal.Decimal
}

// NewLedgerService creates the hours bank service.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	punchRepo portsrepo.PunchRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	holidayRepo portsrepo.HolidayRepositoryFacade,
	closingSvc portssvc.ClosingSvcFacade,
	clock portssvc.Clock,
	loc *time.Location,
	defaultDailyHours float64,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:        ledgerRepo,
		punchRepo:         punchRepo,
		userRepo:          userRepo,
		holidayRepo:       holidayRepo,
		closingSvc:        closingSvc,
		clock:             clock,
		loc:               loc,
		defaultDailyHours: decimal.NewFromFloat(defaultDailyHours),
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Recompute derives worked/expected/balance for one user/day from the
// canonical punches and upserts the ledger row. Running it twice over the
// same punches lands on the same numbers.
func (s *ledgerService) Recompute(ctx context.Context, userID string, date time.Time) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	entryDate := timecalc.DateOnly(date, s.loc)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user.IsDutyShift {
		return nil, nil
	}

	closed, err := s.closingSvc.IsDateClosed(ctx, entryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check closing period: %w", err)
	}
	if closed {
		logger.Warn("Recompute skipped for closed period",
			slog.String("user_id", userID),
			slog.String("date", entryDate.Format("2006-01-02")))
		stored, err := s.ledgerRepo.FindEntry(ctx, userID, entryDate)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load stored entry: %w", err)
		}
		return stored, nil
	}

	dayStart, dayEnd := timecalc.DayBounds(entryDate, s.loc)
	punches, err := s.punchRepo.FindPunchesByUserAndRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load punches: %w", err)
	}
	journey := BuildDailyJourney(userID, entryDate, punches, s.loc)

	expected, err := s.expectedHours(ctx, user, entryDate)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	entry := domain.LedgerEntry{
		EntryID:       uuid.New().String(),
		UserID:        userID,
		EntryDate:     entryDate,
		HoursWorked:   journey.WorkedHours,
		HoursExpected: expected,
		Balance:       journey.WorkedHours.Sub(expected),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}

	persisted, err := s.ledgerRepo.UpsertEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert ledger entry: %w", err)
	}

	logger.Info("Ledger entry recomputed",
		slog.String("user_id", userID),
		slog.String("date", entryDate.Format("2006-01-02")),
		slog.String("worked", persisted.HoursWorked.StringFixed(2)),
		slog.String("balance", persisted.Balance.StringFixed(2)))
	return persisted, nil
}

// expectedHours resolves the day's expected workload: zero on holidays and on
// the user's non-working weekdays, otherwise the user's daily hours (falling
// back to the organization default when unset).
func (s *ledgerService) expectedHours(ctx context.Context, user *domain.User, entryDate time.Time) (decimal.Decimal, error) {
	holiday, err := s.holidayRepo.FindHolidayByDate(ctx, entryDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to check holiday: %w", err)
	}
	if holiday != nil {
		return decimal.Zero, nil
	}
	if !user.OwesHoursOn(entryDate.In(s.loc).Weekday()) {
		return decimal.Zero, nil
	}
	if user.ExpectedDailyHours.IsZero() {
		return s.defaultDailyHours, nil
	}
	return user.ExpectedDailyHours, nil
}

// DailyClosing recomputes every active user for the date. One user failing
// never stops the batch; the result carries the counters.
func (s *ledgerService) DailyClosing(ctx context.Context, date time.Time) (*dto.DailyClosingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	entryDate := timecalc.DateOnly(date, s.loc)

	users, err := s.userRepo.FindActiveUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	result := &dto.DailyClosingResult{Date: entryDate.Format("2006-01-02")}
	for _, user := range users {
		if user.IsDutyShift {
			result.SkippedDutyShift++
			continue
		}
		if _, err := s.Recompute(ctx, user.UserID, entryDate); err != nil {
			result.Failed++
			logger.Error("Daily closing failed for user",
				slog.String("user_id", user.UserID),
				slog.String("date", result.Date),
				slog.String("error", err.Error()))
			continue
		}
		result.Processed++
	}

	logger.Info("Daily closing finished",
		slog.String("date", result.Date),
		slog.Int("processed", result.Processed),
		slog.Int("failed", result.Failed),
		slog.Int("skipped_duty_shift", result.SkippedDutyShift))
	return result, nil
}

// GetBalance aggregates the stored ledger rows over [from, to).
func (s *ledgerService) GetBalance(ctx context.Context, userID string, from, to time.Time) (*dto.BalanceSummary, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", apperrors.ErrValidation)
	}
	entries, err := s.ledgerRepo.FindEntriesByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	summary := &dto.BalanceSummary{
		UserID:        userID,
		From:          timecalc.DateOnly(from, s.loc).Format("2006-01-02"),
		To:            timecalc.DateOnly(to, s.loc).Format("2006-01-02"),
		Days:          len(entries),
		HoursWorked:   decimal.Zero,
		HoursExpected: decimal.Zero,
		Balance:       decimal.Zero,
	}
	for i := range entries {
		summary.HoursWorked = summary.HoursWorked.Add(entries[i].HoursWorked)
		summary.HoursExpected = summary.HoursExpected.Add(entries[i].HoursExpected)
		summary.Balance = summary.Balance.Add(entries[i].Balance)
	}
	return summary, nil
}

// ListEntries returns the raw ledger rows in [from, to).
func (s *ledgerService) ListEntries(ctx context.Context, userID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", apperrors.ErrValidation)
	}
	return s.ledgerRepo.FindEntriesByUserAndRange(ctx, userID, from, to)
}

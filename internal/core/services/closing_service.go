package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/middleware"
	"github.com/pontocerto/ponto_backend/internal/utils/timecalc"
)

// closingService owns the month markers that freeze past periods.
type closingService struct {
	closingRepo    portsrepo.ClosingRepositoryFacade
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	auditSvc       portssvc.AuditSvcFacade
	clock          portssvc.Clock
	loc            *time.Location
}

// NewClosingService creates the closing period service.
func NewClosingService(
	closingRepo portsrepo.ClosingRepositoryFacade,
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	clock portssvc.Clock,
	loc *time.Location,
) portssvc.ClosingSvcFacade {
	return &closingService{
		closingRepo:    closingRepo,
		adjustmentRepo: adjustmentRepo,
		userRepo:       userRepo,
		auditSvc:       auditSvc,
		clock:          clock,
		loc:            loc,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

func validYearMonth(year, month int) error {
	if year < 2000 || year > 2100 {
		return fmt.Errorf("%w: year %d out of range", apperrors.ErrValidation, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range", apperrors.ErrValidation, month)
	}
	return nil
}

// CloseMonth locks (year, month). The month must carry no pending adjustments,
// otherwise approvals could silently become impossible after the lock.
func (s *closingService) CloseMonth(ctx context.Context, year, month int, notes, adminID string) (*domain.ClosingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := validYearMonth(year, month); err != nil {
		return nil, err
	}

	admin, err := s.userRepo.FindUserByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin %s: %w", adminID, err)
	}
	if admin.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: closing a month requires admin role", apperrors.ErrForbidden)
	}

	existing, err := s.closingRepo.FindClosingPeriod(ctx, year, month)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check closing period: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %04d-%02d is already closed", apperrors.ErrDuplicate, year, month)
	}

	from, to := timecalc.MonthBounds(year, time.Month(month), s.loc)
	pending, err := s.adjustmentRepo.CountPendingInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending adjustments: %w", err)
	}
	if pending > 0 {
		return nil, fmt.Errorf("%w: %d pending adjustment(s) target %04d-%02d; resolve them first",
			apperrors.ErrConflict, pending, year, month)
	}

	period := domain.ClosingPeriod{
		ClosingID: uuid.New().String(),
		Year:      year,
		Month:     month,
		Notes:     notes,
		ClosedBy:  adminID,
		ClosedAt:  s.clock.Now(),
	}
	if err := s.closingRepo.SaveClosingPeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %04d-%02d is already closed", apperrors.ErrDuplicate, year, month)
		}
		return nil, fmt.Errorf("failed to save closing period: %w", err)
	}

	s.auditSvc.Log(ctx, "period.closed", adminID, period.ClosingID,
		fmt.Sprintf("month %04d-%02d closed", year, month),
		map[string]any{"year": year, "month": month, "notes": notes})

	logger.Info("Month closed",
		slog.Int("year", year), slog.Int("month", month), slog.String("admin_id", adminID))
	return &period, nil
}

// ReopenMonth deletes the marker. The reopened range is not recomputed here;
// callers run an explicit recompute when they actually change something.
func (s *closingService) ReopenMonth(ctx context.Context, year, month int, adminID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := validYearMonth(year, month); err != nil {
		return err
	}

	admin, err := s.userRepo.FindUserByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("failed to load admin %s: %w", adminID, err)
	}
	if admin.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: reopening a month requires admin role", apperrors.ErrForbidden)
	}

	period, err := s.closingRepo.FindClosingPeriod(ctx, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %04d-%02d is not closed", apperrors.ErrNotFound, year, month)
		}
		return fmt.Errorf("failed to check closing period: %w", err)
	}

	if err := s.closingRepo.DeleteClosingPeriod(ctx, year, month); err != nil {
		return fmt.Errorf("failed to delete closing period: %w", err)
	}

	s.auditSvc.Log(ctx, "period.reopened", adminID, period.ClosingID,
		fmt.Sprintf("month %04d-%02d reopened", year, month),
		map[string]any{"year": year, "month": month})

	logger.Info("Month reopened",
		slog.Int("year", year), slog.Int("month", month), slog.String("admin_id", adminID))
	return nil
}

// IsDateClosed reports whether the instant's local calendar month is closed.
func (s *closingService) IsDateClosed(ctx context.Context, at time.Time) (bool, error) {
	local := at.In(s.loc)
	_, err := s.closingRepo.FindClosingPeriod(ctx, local.Year(), int(local.Month()))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check closing period: %w", err)
	}
	return true, nil
}

// ListClosings lists all markers, most recent month first.
func (s *closingService) ListClosings(ctx context.Context) ([]domain.ClosingPeriod, error) {
	return s.closingRepo.ListClosingPeriods(ctx)
}

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

// holidayService manages the organization holiday calendar.
type holidayService struct {
	holidayRepo portsrepo.HolidayRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	auditSvc    portssvc.AuditSvcFacade
	clock       portssvc.Clock
	loc         *time.Location
}

// NewHolidayService creates the holiday calendar service.
func NewHolidayService(
	holidayRepo portsrepo.HolidayRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	clock portssvc.Clock,
	loc *time.Location,
) portssvc.HolidaySvcFacade {
	return &holidayService{
		holidayRepo: holidayRepo,
		userRepo:    userRepo,
		auditSvc:    auditSvc,
		clock:       clock,
		loc:         loc,
	}
}

var _ portssvc.HolidaySvcFacade = (*holidayService)(nil)

func (s *holidayService) requireAdmin(ctx context.Context, adminID string) error {
	admin, err := s.userRepo.FindUserByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("failed to load admin %s: %w", adminID, err)
	}
	if admin.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: managing holidays requires admin role", apperrors.ErrForbidden)
	}
	return nil
}

// CreateHoliday registers a holiday. Existing ledger rows for the date are
// not recomputed automatically; run a recompute if the date is in the past.
func (s *holidayService) CreateHoliday(ctx context.Context, date time.Time, name, adminID string) (*domain.Holiday, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if name == "" {
		return nil, fmt.Errorf("%w: holiday name is required", apperrors.ErrValidation)
	}
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	holiday := domain.Holiday{
		HolidayID:   uuid.New().String(),
		HolidayDate: timecalc.DateOnly(date, s.loc),
		Name:        name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminID,
		},
	}
	if err := s.holidayRepo.SaveHoliday(ctx, holiday); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s already has a holiday",
				apperrors.ErrDuplicate, holiday.HolidayDate.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to save holiday: %w", err)
	}

	s.auditSvc.Log(ctx, "holiday.created", adminID, holiday.HolidayID,
		fmt.Sprintf("holiday %q on %s", name, holiday.HolidayDate.Format("2006-01-02")), nil)

	logger.Info("Holiday created",
		slog.String("holiday_id", holiday.HolidayID),
		slog.String("date", holiday.HolidayDate.Format("2006-01-02")))
	return &holiday, nil
}

func (s *holidayService) DeleteHoliday(ctx context.Context, holidayID, adminID string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if err := s.holidayRepo.DeleteHoliday(ctx, holidayID); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	s.auditSvc.Log(ctx, "holiday.deleted", adminID, holidayID, "holiday deleted", nil)
	return nil
}

func (s *holidayService) ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", apperrors.ErrValidation)
	}
	return s.holidayRepo.ListHolidays(ctx, from, to)
}

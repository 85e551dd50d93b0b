package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/dto"
	"github.com/pontocerto/ponto_backend/internal/middleware"
	"github.com/pontocerto/ponto_backend/internal/utils/timecalc"
)

// adjustmentService runs the correction/addition approval workflow. It is the
// only path that ever mutates an existing canonical punch.
type adjustmentService struct {
	adjustmentRepo  portsrepo.AdjustmentRepositoryFacade
	punchRepo       portsrepo.PunchRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
	sequenceSvc     portssvc.PunchSequenceValidator
	closingSvc      portssvc.ClosingSvcFacade
	ledgerSvc       portssvc.LedgerSvcFacade
	auditSvc        portssvc.AuditSvcFacade
	notificationSvc portssvc.NotificationSvcFacade
	clock           portssvc.Clock
	loc             *time.Location
}

// NewAdjustmentService creates the adjustment workflow service.
func NewAdjustmentService(
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade,
	punchRepo portsrepo.PunchRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	sequenceSvc portssvc.PunchSequenceValidator,
	closingSvc portssvc.ClosingSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	notificationSvc portssvc.NotificationSvcFacade,
	clock portssvc.Clock,
	loc *time.Location,
) portssvc.AdjustmentSvcFacade {
	return &adjustmentService{
		adjustmentRepo:  adjustmentRepo,
		punchRepo:       punchRepo,
		userRepo:        userRepo,
		sequenceSvc:     sequenceSvc,
		closingSvc:      closingSvc,
		ledgerSvc:       ledgerSvc,
		auditSvc:        auditSvc,
		notificationSvc: notificationSvc,
		clock:           clock,
		loc:             loc,
	}
}

var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// RequestAdjustment opens a pending request. Corrections capture the target
// punch's original timestamp and type before anything can mutate it.
func (s *adjustmentService) RequestAdjustment(ctx context.Context, req dto.CreateAdjustmentRequest, requesterID string) (*domain.Adjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	proposedType := domain.PunchType(req.ProposedType)
	if !domain.ValidPunchType(proposedType) {
		return nil, fmt.Errorf("%w: unknown punch type %q", apperrors.ErrValidation, req.ProposedType)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", apperrors.ErrValidation)
	}

	userID := requesterID
	if req.UserID != nil && *req.UserID != "" {
		userID = *req.UserID
	}
	if userID != requesterID {
		requester, err := s.userRepo.FindUserByID(ctx, requesterID)
		if err != nil {
			return nil, fmt.Errorf("failed to load requester %s: %w", requesterID, err)
		}
		if requester.Role != domain.RoleAdmin && requester.Role != domain.RoleManager {
			return nil, fmt.Errorf("%w: only managers may request adjustments for other users", apperrors.ErrForbidden)
		}
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrUserInactive, userID)
	}

	closed, err := s.closingSvc.IsDateClosed(ctx, req.ProposedTimestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to check closing period: %w", err)
	}
	if closed {
		return nil, fmt.Errorf("%w: proposed date %s falls in a closed month",
			apperrors.ErrPeriodClosed, req.ProposedTimestamp.In(s.loc).Format("2006-01"))
	}

	now := s.clock.Now()
	adjustment := domain.Adjustment{
		AdjustmentID:      uuid.New().String(),
		UserID:            userID,
		ProposedTimestamp: req.ProposedTimestamp,
		ProposedType:      proposedType,
		Reason:            req.Reason,
		RequesterID:       requesterID,
		Status:            domain.AdjustmentPending,
		IsAddition:        true,
		Geolocation:       req.Geolocation,
		PhotoRef:          req.PhotoRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}

	if req.TargetPunchID != nil && *req.TargetPunchID != "" {
		target, err := s.punchRepo.FindPunchByID(ctx, *req.TargetPunchID)
		if err != nil {
			return nil, fmt.Errorf("failed to load target punch %s: %w", *req.TargetPunchID, err)
		}
		if target.UserID != userID {
			return nil, fmt.Errorf("%w: target punch belongs to another user", apperrors.ErrValidation)
		}
		originalClosed, err := s.closingSvc.IsDateClosed(ctx, target.PunchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to check closing period: %w", err)
		}
		if originalClosed {
			return nil, fmt.Errorf("%w: target punch date %s falls in a closed month",
				apperrors.ErrPeriodClosed, target.PunchedAt.In(s.loc).Format("2006-01"))
		}
		ts := target.PunchedAt
		tt := target.Type
		adjustment.TargetPunchID = req.TargetPunchID
		adjustment.OriginalTimestamp = &ts
		adjustment.OriginalType = &tt
		adjustment.IsAddition = false
	}

	dayStart, dayEnd := timecalc.DayBounds(req.ProposedTimestamp, s.loc)
	pending, err := s.adjustmentRepo.FindPendingByUserTypeAndRange(ctx, userID, proposedType, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending adjustments: %w", err)
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("%w: a pending %s adjustment already exists for this day",
			apperrors.ErrConflict, proposedType)
	}

	if err := s.adjustmentRepo.SaveAdjustment(ctx, adjustment); err != nil {
		logger.Error("Failed to save adjustment", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save adjustment: %w", err)
	}

	s.auditSvc.Log(ctx, "adjustment.requested", requesterID, adjustment.AdjustmentID,
		fmt.Sprintf("adjustment requested for user %s", userID),
		map[string]any{"proposedType": proposedType, "proposedTimestamp": req.ProposedTimestamp, "isAddition": adjustment.IsAddition})
	s.notificationSvc.CreateAlert(ctx, userID, "adjustment_requested", domain.SeverityInfo,
		"Adjustment requested",
		fmt.Sprintf("A %s adjustment for %s is awaiting approval.", proposedType, req.ProposedTimestamp.In(s.loc).Format("2006-01-02")))

	logger.Info("Adjustment requested",
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("user_id", userID),
		slog.String("proposed_type", string(proposedType)))
	return &adjustment, nil
}

// Approve applies a pending adjustment. Sequencing is re-validated against
// the canonical punches as of approval time, so approving stale requests in
// any order can never corrupt a day.
func (s *adjustmentService) Approve(ctx context.Context, adjustmentID, approverID string) (*domain.Adjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	approver, err := s.userRepo.FindUserByID(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approver %s: %w", approverID, err)
	}
	if approver.Role != domain.RoleAdmin && approver.Role != domain.RoleManager {
		return nil, fmt.Errorf("%w: adjustment approval requires manager or admin role", apperrors.ErrForbidden)
	}

	adjustment, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adjustment %s: %w", adjustmentID, err)
	}
	if adjustment.Status != domain.AdjustmentPending {
		return nil, fmt.Errorf("%w: adjustment is already %s", apperrors.ErrConflict, adjustment.Status)
	}
	if adjustment.RequesterID == approverID && approver.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: requesters cannot approve their own adjustments", apperrors.ErrForbidden)
	}

	if err := s.ensureOpenDates(ctx, adjustment); err != nil {
		return nil, err
	}

	if err := s.sequenceSvc.ValidateSequence(ctx, adjustment.UserID, adjustment.ProposedType, adjustment.ProposedTimestamp, adjustment.TargetPunchID); err != nil {
		return nil, fmt.Errorf("adjustment no longer applies: %w", err)
	}

	now := s.clock.Now()
	affectedDates := []time.Time{timecalc.DateOnly(adjustment.ProposedTimestamp, s.loc)}

	var punch domain.Punch
	if adjustment.IsAddition {
		punch = domain.Punch{
			PunchID:     ulid.Make().String(),
			UserID:      adjustment.UserID,
			Type:        adjustment.ProposedType,
			Source:      domain.SourceManual,
			PunchedAt:   adjustment.ProposedTimestamp,
			PunchDate:   timecalc.DateOnly(adjustment.ProposedTimestamp, s.loc),
			Reason:      adjustment.Reason,
			Geolocation: adjustment.Geolocation,
			PhotoRef:    adjustment.PhotoRef,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     approverID,
				LastUpdatedAt: now,
				LastUpdatedBy: approverID,
			},
		}
	} else {
		target, err := s.punchRepo.FindPunchByID(ctx, *adjustment.TargetPunchID)
		if err != nil {
			return nil, fmt.Errorf("failed to load target punch: %w", err)
		}
		originalDate := timecalc.DateOnly(target.PunchedAt, s.loc)
		if !originalDate.Equal(affectedDates[0]) {
			affectedDates = append(affectedDates, originalDate)
		}
		target.PunchedAt = adjustment.ProposedTimestamp
		target.Type = adjustment.ProposedType
		target.PunchDate = timecalc.DateOnly(adjustment.ProposedTimestamp, s.loc)
		target.Reason = adjustment.Reason
		target.LastUpdatedAt = now
		target.LastUpdatedBy = approverID
		punch = *target
	}

	adjustment.Status = domain.AdjustmentApproved
	adjustment.ResolvedBy = &approverID
	adjustment.ResolvedAt = &now
	adjustment.LastUpdatedAt = now
	adjustment.LastUpdatedBy = approverID

	// One transaction: the punch write and the status transition cannot be
	// torn apart, so a pending adjustment never survives its own punch.
	if err := s.adjustmentRepo.ApproveAdjustment(ctx, *adjustment, punch); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, punch.Type)
		}
		return nil, fmt.Errorf("failed to apply adjustment: %w", err)
	}

	// The punch mutation is already committed; a recompute failure here
	// leaves a stale ledger row, which the next recompute or daily closing
	// corrects. It must not fail the approval.
	for _, d := range affectedDates {
		if _, err := s.ledgerSvc.Recompute(ctx, adjustment.UserID, d); err != nil {
			logger.Error("Ledger recompute after approval failed",
				slog.String("adjustment_id", adjustmentID),
				slog.String("user_id", adjustment.UserID),
				slog.String("date", d.Format("2006-01-02")),
				slog.String("error", err.Error()))
		}
	}

	s.auditSvc.Log(ctx, "adjustment.approved", approverID, adjustmentID,
		fmt.Sprintf("adjustment approved for user %s", adjustment.UserID),
		map[string]any{"proposedType": adjustment.ProposedType, "proposedTimestamp": adjustment.ProposedTimestamp})
	s.notificationSvc.CreateAlert(ctx, adjustment.UserID, "adjustment_approved", domain.SeverityInfo,
		"Adjustment approved",
		fmt.Sprintf("Your %s adjustment for %s was approved.", adjustment.ProposedType, adjustment.ProposedTimestamp.In(s.loc).Format("2006-01-02")))

	logger.Info("Adjustment approved",
		slog.String("adjustment_id", adjustmentID),
		slog.String("approver_id", approverID))
	return adjustment, nil
}

func (s *adjustmentService) ensureOpenDates(ctx context.Context, adjustment *domain.Adjustment) error {
	closed, err := s.closingSvc.IsDateClosed(ctx, adjustment.ProposedTimestamp)
	if err != nil {
		return fmt.Errorf("failed to check closing period: %w", err)
	}
	if closed {
		return fmt.Errorf("%w: proposed date %s falls in a closed month",
			apperrors.ErrPeriodClosed, adjustment.ProposedTimestamp.In(s.loc).Format("2006-01"))
	}
	if adjustment.OriginalTimestamp != nil {
		closed, err := s.closingSvc.IsDateClosed(ctx, *adjustment.OriginalTimestamp)
		if err != nil {
			return fmt.Errorf("failed to check closing period: %w", err)
		}
		if closed {
			return fmt.Errorf("%w: original punch date %s falls in a closed month",
				apperrors.ErrPeriodClosed, adjustment.OriginalTimestamp.In(s.loc).Format("2006-01"))
		}
	}
	return nil
}

// Reject closes the adjustment without touching punches or the ledger. It is
// allowed even when the proposed date is in a closed month, so stale requests
// never block closing forever.
func (s *adjustmentService) Reject(ctx context.Context, adjustmentID, approverID, reason string) (*domain.Adjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	approver, err := s.userRepo.FindUserByID(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approver %s: %w", approverID, err)
	}
	if approver.Role != domain.RoleAdmin && approver.Role != domain.RoleManager {
		return nil, fmt.Errorf("%w: adjustment rejection requires manager or admin role", apperrors.ErrForbidden)
	}

	adjustment, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adjustment %s: %w", adjustmentID, err)
	}
	if adjustment.Status != domain.AdjustmentPending {
		return nil, fmt.Errorf("%w: adjustment is already %s", apperrors.ErrConflict, adjustment.Status)
	}

	now := s.clock.Now()
	adjustment.Status = domain.AdjustmentRejected
	adjustment.ResolvedBy = &approverID
	adjustment.ResolvedAt = &now
	adjustment.ResolutionNotes = reason
	adjustment.LastUpdatedAt = now
	adjustment.LastUpdatedBy = approverID
	if err := s.adjustmentRepo.ResolveAdjustment(ctx, *adjustment); err != nil {
		return nil, fmt.Errorf("failed to resolve adjustment: %w", err)
	}

	s.auditSvc.Log(ctx, "adjustment.rejected", approverID, adjustmentID,
		fmt.Sprintf("adjustment rejected for user %s", adjustment.UserID),
		map[string]any{"reason": reason})
	s.notificationSvc.CreateAlert(ctx, adjustment.UserID, "adjustment_rejected", domain.SeverityWarning,
		"Adjustment rejected",
		fmt.Sprintf("Your %s adjustment for %s was rejected: %s",
			adjustment.ProposedType, adjustment.ProposedTimestamp.In(s.loc).Format("2006-01-02"), reason))

	logger.Info("Adjustment rejected",
		slog.String("adjustment_id", adjustmentID),
		slog.String("approver_id", approverID))
	return adjustment, nil
}

// ListPending lists pending adjustments, newest first.
func (s *adjustmentService) ListPending(ctx context.Context, limit int) ([]domain.Adjustment, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.adjustmentRepo.FindAdjustmentsByStatus(ctx, domain.AdjustmentPending, limit)
}

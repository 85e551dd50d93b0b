package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/dto"
	"github.com/pontocerto/ponto_backend/internal/middleware"
	"github.com/pontocerto/ponto_backend/internal/utils"
)

// userService manages employees and credentials.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	auditSvc portssvc.AuditSvcFacade
	clock    portssvc.Clock
	// defaultDailyHours applies to new users created without an explicit value.
	defaultDailyHours decimal.Decimal
}

// NewUserService creates the user management service.
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
	clock portssvc.Clock,
	defaultDailyHours float64,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:          userRepo,
		auditSvc:          auditSvc,
		clock:             clock,
		defaultDailyHours: decimal.NewFromFloat(defaultDailyHours),
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new employee. Only admins create users.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.userRepo.FindUserByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator %s: %w", creatorID, err)
	}
	if creator.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: creating users requires admin role", apperrors.ErrForbidden)
	}

	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domain.RoleEmployee
	if req.Role != "" {
		role = domain.UserRole(req.Role)
	}
	expected := s.defaultDailyHours
	if req.ExpectedDailyHours != nil {
		expected = decimal.NewFromFloat(*req.ExpectedDailyHours)
	}

	now := s.clock.Now()
	user := domain.User{
		UserID:             uuid.New().String(),
		Username:           req.Username,
		Name:               req.Name,
		PasswordHash:       &hash,
		Role:               role,
		IsActive:           true,
		IsDutyShift:        req.IsDutyShift,
		ExpectedDailyHours: expected,
		NonWorkingWeekdays: req.NonWorkingWeekdays,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.auditSvc.Log(ctx, "user.created", creatorID, user.UserID,
		fmt.Sprintf("user %s created", user.Username),
		map[string]any{"role": role, "isDutyShift": user.IsDutyShift})

	logger.Info("User created",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username),
		slog.String("role", string(role)))
	return &user, nil
}

// Authenticate verifies credentials and returns the active user. Wrong
// username and wrong password are indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrUserInactive, user.UserID)
	}
	return user, nil
}

// GetUserByID retrieves a user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.FindUsers(ctx, limit, offset)
}

// UpdateUser applies the non-nil fields of req. Only admins change roles.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	updater, err := s.userRepo.FindUserByID(ctx, updaterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updater %s: %w", updaterID, err)
	}
	if updater.Role != domain.RoleAdmin && updater.Role != domain.RoleManager {
		return nil, fmt.Errorf("%w: updating users requires manager or admin role", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if updater.Role != domain.RoleAdmin {
			return nil, fmt.Errorf("%w: changing roles requires admin role", apperrors.ErrForbidden)
		}
		user.Role = domain.UserRole(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsDutyShift != nil {
		user.IsDutyShift = *req.IsDutyShift
	}
	if req.ExpectedDailyHours != nil {
		user.ExpectedDailyHours = decimal.NewFromFloat(*req.ExpectedDailyHours)
	}
	if req.NonWorkingWeekdays != nil {
		user.NonWorkingWeekdays = req.NonWorkingWeekdays
	}
	user.LastUpdatedAt = s.clock.Now()
	user.LastUpdatedBy = updaterID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.auditSvc.Log(ctx, "user.updated", updaterID, userID,
		fmt.Sprintf("user %s updated", user.Username), nil)

	logger.Info("User updated", slog.String("user_id", userID), slog.String("updater_id", updaterID))
	return user, nil
}

// DeactivateUser soft-deletes a user. Past punches and ledger rows remain.
func (s *userService) DeactivateUser(ctx context.Context, userID, deleterID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleter, err := s.userRepo.FindUserByID(ctx, deleterID)
	if err != nil {
		return fmt.Errorf("failed to load deleter %s: %w", deleterID, err)
	}
	if deleter.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: deactivating users requires admin role", apperrors.ErrForbidden)
	}
	if userID == deleterID {
		return fmt.Errorf("%w: admins cannot deactivate themselves", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, s.clock.Now(), deleterID); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.auditSvc.Log(ctx, "user.deactivated", deleterID, userID, "user deactivated", nil)
	logger.Info("User deactivated", slog.String("user_id", userID), slog.String("deleter_id", deleterID))
	return nil
}

package services

import (
	"context"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
	"github.com/pontocerto/ponto_backend/internal/dto"
)

// UserSvcFacade manages employees.
type UserSvcFacade interface {
	// CreateUser registers a new employee.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error)

	// Authenticate verifies credentials and returns the active user.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// UpdateUser applies the non-nil fields of req.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterID string) (*domain.User, error)

	// DeactivateUser soft-deletes a user.
	DeactivateUser(ctx context.Context, userID, deleterID string) error
}

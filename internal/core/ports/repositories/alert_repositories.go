package repositories

import (
	"context"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// AlertRepositoryFacade defines storage operations for user alerts.
type AlertRepositoryFacade interface {
	// SaveAlert persists a new alert.
	SaveAlert(ctx context.Context, alert domain.Alert) error

	// FindAlertsByUser lists a user's alerts, newest first.
	FindAlertsByUser(ctx context.Context, userID string, limit int) ([]domain.Alert, error)

	// MarkAlertRead records that the user has seen the alert.
	MarkAlertRead(ctx context.Context, alertID string, userID string) error
}

package services

import (
	"context"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// AlertPublisher pushes a freshly created alert to live subscribers. Publish
// must never block; slow subscribers are the publisher's problem.
type AlertPublisher interface {
	Publish(alert domain.Alert)
}

// NotificationSvcFacade creates and lists in-app alerts. CreateAlert is
// fire-and-forget; a failed write is logged and never aborts the caller.
type NotificationSvcFacade interface {
	CreateAlert(ctx context.Context, userID, alertType string, severity domain.AlertSeverity, title, message string)

	ListAlerts(ctx context.Context, userID string, limit int) ([]domain.Alert, error)

	MarkRead(ctx context.Context, alertID, userID string) error
}

package services

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/middleware"
)

// notificationService stores in-app alerts and pushes them to live
// subscribers through the publisher.
type notificationService struct {
	alertRepo portsrepo.AlertRepositoryFacade
	publisher portssvc.AlertPublisher
	clock     portssvc.Clock
}

// NewNotificationService creates the alert service. publisher may be nil when
// no live push channel is wired.
func NewNotificationService(alertRepo portsrepo.AlertRepositoryFacade, publisher portssvc.AlertPublisher, clock portssvc.Clock) portssvc.NotificationSvcFacade {
	return &notificationService{alertRepo: alertRepo, publisher: publisher, clock: clock}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) CreateAlert(ctx context.Context, userID, alertType string, severity domain.AlertSeverity, title, message string) {
	alert := domain.Alert{
		AlertID:   ulid.Make().String(),
		UserID:    userID,
		Type:      alertType,
		Severity:  severity,
		Title:     title,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}
	if err := s.alertRepo.SaveAlert(ctx, alert); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save alert",
			slog.String("user_id", userID),
			slog.String("type", alertType),
			slog.String("error", err.Error()))
		return
	}
	if s.publisher != nil {
		s.publisher.Publish(alert)
	}
}

func (s *notificationService) ListAlerts(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.alertRepo.FindAlertsByUser(ctx, userID, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, alertID, userID string) error {
	return s.alertRepo.MarkAlertRead(ctx, alertID, userID)
}

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

// auditService appends audit events. A failed write is logged and swallowed;
// auditing must never abort the operation it describes.
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
	clock     portssvc.Clock
}

// NewAuditService creates the audit trail service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, clock portssvc.Clock) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo, clock: clock}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Log(ctx context.Context, eventType, actorID, subjectID, description string, details map[string]any) {
	event := domain.AuditEvent{
		EventID:     ulid.Make().String(),
		EventType:   eventType,
		ActorID:     actorID,
		SubjectID:   subjectID,
		Description: description,
		Details:     details,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to write audit event",
			slog.String("event_type", eventType),
			slog.String("actor_id", actorID),
			slog.String("error", err.Error()))
	}
}

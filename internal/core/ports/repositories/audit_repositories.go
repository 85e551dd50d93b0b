package repositories

import (
	"context"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// AuditRepositoryFacade defines storage operations for audit events.
type AuditRepositoryFacade interface {
	// SaveAuditEvent appends an audit event.
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error
}

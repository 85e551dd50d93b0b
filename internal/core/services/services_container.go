package services

import (
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
	"github.com/pontocerto/ponto_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its dependencies. Construction
// order follows the dependency graph: closing and audit first, then the
// ledger, then the punch registry and the adjustment workflow on top.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.AlertPublisher) *portssvc.ServiceContainer {
	clock := NewSystemClock()

	auditSvc := NewAuditService(repos.AuditRepo, clock)
	notificationSvc := NewNotificationService(repos.AlertRepo, publisher, clock)
	closingSvc := NewClosingService(repos.ClosingRepo, repos.AdjustmentRepo, repos.UserRepo, auditSvc, clock, cfg.Location)
	ledgerSvc := NewLedgerService(repos.LedgerRepo, repos.PunchRepo, repos.UserRepo, repos.HolidayRepo, closingSvc, clock, cfg.Location, cfg.DefaultDailyHours)
	punchSvc := NewPunchService(repos.PunchRepo, repos.UserRepo, closingSvc, ledgerSvc, auditSvc, clock, cfg.Location, cfg.MinBreakMinutes)
	adjustmentSvc := NewAdjustmentService(repos.AdjustmentRepo, repos.PunchRepo, repos.UserRepo, punchSvc, closingSvc, ledgerSvc, auditSvc, notificationSvc, clock, cfg.Location)
	userSvc := NewUserService(repos.UserRepo, auditSvc, clock, cfg.DefaultDailyHours)
	holidaySvc := NewHolidayService(repos.HolidayRepo, repos.UserRepo, auditSvc, clock, cfg.Location)

	return &portssvc.ServiceContainer{
		Punch:        punchSvc,
		Ledger:       ledgerSvc,
		Adjustment:   adjustmentSvc,
		Closing:      closingSvc,
		User:         userSvc,
		Holiday:      holidaySvc,
		Audit:        auditSvc,
		Notification: notificationSvc,
		Clock:        clock,
	}
}

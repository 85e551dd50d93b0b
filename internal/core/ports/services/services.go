package services

// ServiceContainer holds every service facade the handlers and the scheduler
// depend on.
type ServiceContainer struct {
	Punch        PunchSvcFacade
	Ledger       LedgerSvcFacade
	Adjustment   AdjustmentSvcFacade
	Closing      ClosingSvcFacade
	User         UserSvcFacade
	Holiday      HolidaySvcFacade
	Audit        AuditSvcFacade
	Notification NotificationSvcFacade
	Clock        Clock
}

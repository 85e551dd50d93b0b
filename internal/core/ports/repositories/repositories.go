package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	PunchRepo      PunchRepositoryFacade
	LedgerRepo     LedgerRepositoryFacade
	AdjustmentRepo AdjustmentRepositoryFacade
	ClosingRepo    ClosingRepositoryFacade
	UserRepo       UserRepositoryFacade
	HolidayRepo    HolidayRepositoryFacade
	AuditRepo      AuditRepositoryFacade
	AlertRepo      AlertRepositoryFacade
}

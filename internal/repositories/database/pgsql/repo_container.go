package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx repository against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PunchRepo:      newPgxPunchRepository(dbPool),
		LedgerRepo:     newPgxLedgerRepository(dbPool),
		AdjustmentRepo: newPgxAdjustmentRepository(dbPool),
		ClosingRepo:    newPgxClosingRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		HolidayRepo:    newPgxHolidayRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
		AlertRepo:      newPgxAlertRepository(dbPool),
	}
}

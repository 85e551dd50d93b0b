package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	"github.com/pontocerto/ponto_backend/internal/models"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for hours bank rows.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		UserID:        m.UserID,
		EntryDate:     m.EntryDate,
		HoursWorked:   m.HoursWorked,
		HoursExpected: m.HoursExpected,
		Balance:       m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const ledgerColumns = `entry_id, user_id, entry_date, hours_worked, hours_expected, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.EntryDate,
		&m.HoursWorked,
		&m.HoursExpected,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntry retrieves the ledger entry for (user, date), if any.
func (r *PgxLedgerRepository) FindEntry(ctx context.Context, userID string, date time.Time) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE user_id = $1 AND entry_date = $2;
	`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry for user %s: %w", userID, err)
	}
	e := toDomainLedgerEntry(m)
	return &e, nil
}

// FindEntriesByUserAndRange retrieves entries with from <= entry_date < to,
// ordered by entry_date ascending.
func (r *PgxLedgerRepository) FindEntriesByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3
		ORDER BY entry_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerEntry, error) {
		return scanLedgerEntry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger entries: %w", err)
	}

	entries := make([]domain.LedgerEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = toDomainLedgerEntry(m)
	}
	return entries, nil
}

// UpsertEntry inserts or updates the entry keyed by (user_id, entry_date) and
// returns the persisted row. An update keeps the original entry_id and
// created_at, so re-running a recompute never churns identities.
func (r *PgxLedgerRepository) UpsertEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET
			hours_worked = EXCLUDED.hours_worked,
			hours_expected = EXCLUDED.hours_expected,
			balance = EXCLUDED.balance,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + ledgerColumns + `;
	`
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query,
		entry.EntryID,
		entry.UserID,
		entry.EntryDate,
		entry.HoursWorked,
		entry.HoursExpected,
		entry.Balance,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert ledger entry for user %s: %w", entry.UserID, err)
	}
	e := toDomainLedgerEntry(m)
	return &e, nil
}

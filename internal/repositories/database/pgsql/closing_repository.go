package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	"github.com/pontocerto/ponto_backend/internal/models"
)

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for closing period markers.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepositoryFacade {
	return &PgxClosingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ClosingRepositoryFacade = (*PgxClosingRepository)(nil)

func toDomainClosingPeriod(m models.ClosingPeriod) domain.ClosingPeriod {
	return domain.ClosingPeriod{
		ClosingID: m.ClosingID,
		Year:      m.Year,
		Month:     m.Month,
		Notes:     m.Notes,
		ClosedBy:  m.ClosedBy,
		ClosedAt:  m.ClosedAt,
	}
}

const closingColumns = `closing_id, year, month, notes, closed_by, closed_at`

func scanClosingPeriod(row pgx.Row) (models.ClosingPeriod, error) {
	var m models.ClosingPeriod
	err := row.Scan(
		&m.ClosingID,
		&m.Year,
		&m.Month,
		&m.Notes,
		&m.ClosedBy,
		&m.ClosedAt,
	)
	return m, err
}

// FindClosingPeriod retrieves the marker for (year, month), if any.
func (r *PgxClosingRepository) FindClosingPeriod(ctx context.Context, year, month int) (*domain.ClosingPeriod, error) {
	query := `
		SELECT ` + closingColumns + `
		FROM closing_periods
		WHERE year = $1 AND month = $2;
	`
	m, err := scanClosingPeriod(r.Pool.QueryRow(ctx, query, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find closing period %04d-%02d: %w", year, month, err)
	}
	p := toDomainClosingPeriod(m)
	return &p, nil
}

// SaveClosingPeriod persists a new marker. The (year, month) unique index
// surfaces concurrent double-closing as ErrDuplicate.
func (r *PgxClosingRepository) SaveClosingPeriod(ctx context.Context, period domain.ClosingPeriod) error {
	query := `
		INSERT INTO closing_periods (` + closingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		period.ClosingID,
		period.Year,
		period.Month,
		period.Notes,
		period.ClosedBy,
		period.ClosedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: closing period %04d-%02d", apperrors.ErrDuplicate, period.Year, period.Month)
		}
		return fmt.Errorf("failed to save closing period %04d-%02d: %w", period.Year, period.Month, err)
	}
	return nil
}

// DeleteClosingPeriod removes the marker, restoring mutability.
func (r *PgxClosingRepository) DeleteClosingPeriod(ctx context.Context, year, month int) error {
	query := `DELETE FROM closing_periods WHERE year = $1 AND month = $2;`
	tag, err := r.Pool.Exec(ctx, query, year, month)
	if err != nil {
		return fmt.Errorf("failed to delete closing period %04d-%02d: %w", year, month, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListClosingPeriods lists all markers, most recent month first.
func (r *PgxClosingRepository) ListClosingPeriods(ctx context.Context) ([]domain.ClosingPeriod, error) {
	query := `
		SELECT ` + closingColumns + `
		FROM closing_periods
		ORDER BY year DESC, month DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query closing periods: %w", err)
	}
	defer rows.Close()

	modelPeriods, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ClosingPeriod, error) {
		return scanClosingPeriod(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan closing periods: %w", err)
	}

	periods := make([]domain.ClosingPeriod, len(modelPeriods))
	for i, m := range modelPeriods {
		periods[i] = toDomainClosingPeriod(m)
	}
	return periods, nil
}

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

type PgxHolidayRepository struct {
	BaseRepository
}

// newPgxHolidayRepository creates a new repository for holidays.
func newPgxHolidayRepository(pool *pgxpool.Pool) portsrepo.HolidayRepositoryFacade {
	return &PgxHolidayRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.HolidayRepositoryFacade = (*PgxHolidayRepository)(nil)

const holidayDateLayout = "2006-01-02"

func toDomainHoliday(m models.Holiday) (domain.Holiday, error) {
	date, err := time.Parse(holidayDateLayout, m.HolidayDate)
	if err != nil {
		return domain.Holiday{}, fmt.Errorf("invalid stored holiday date %q: %w", m.HolidayDate, err)
	}
	return domain.Holiday{
		HolidayID:   m.HolidayID,
		HolidayDate: date,
		Name:        m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

const holidayColumns = `holiday_id, holiday_date::text, name, created_at, created_by, last_updated_at, last_updated_by`

func scanHoliday(row pgx.Row) (models.Holiday, error) {
	var m models.Holiday
	err := row.Scan(
		&m.HolidayID,
		&m.HolidayDate,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindHolidayByDate retrieves the holiday on the given calendar date, if any.
func (r *PgxHolidayRepository) FindHolidayByDate(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	query := `
		SELECT ` + holidayColumns + `
		FROM holidays
		WHERE holiday_date = $1;
	`
	m, err := scanHoliday(r.Pool.QueryRow(ctx, query, date.Format(holidayDateLayout)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find holiday on %s: %w", date.Format(holidayDateLayout), err)
	}
	h, err := toDomainHoliday(m)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// SaveHoliday persists a new holiday. The unique holiday_date index surfaces
// duplicates as ErrDuplicate.
func (r *PgxHolidayRepository) SaveHoliday(ctx context.Context, holiday domain.Holiday) error {
	query := `
		INSERT INTO holidays (holiday_id, holiday_date, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		holiday.HolidayID,
		holiday.HolidayDate.Format(holidayDateLayout),
		holiday.Name,
		holiday.CreatedAt,
		holiday.CreatedBy,
		holiday.LastUpdatedAt,
		holiday.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: holiday on %s", apperrors.ErrDuplicate, holiday.HolidayDate.Format(holidayDateLayout))
		}
		return fmt.Errorf("failed to save holiday %s: %w", holiday.HolidayID, err)
	}
	return nil
}

// DeleteHoliday removes a holiday by ID.
func (r *PgxHolidayRepository) DeleteHoliday(ctx context.Context, holidayID string) error {
	query := `DELETE FROM holidays WHERE holiday_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, holidayID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday %s: %w", holidayID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListHolidays lists holidays with holiday_date in [from, to).
func (r *PgxHolidayRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	query := `
		SELECT ` + holidayColumns + `
		FROM holidays
		WHERE holiday_date >= $1 AND holiday_date < $2
		ORDER BY holiday_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from.Format(holidayDateLayout), to.Format(holidayDateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	modelHolidays, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Holiday, error) {
		return scanHoliday(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan holidays: %w", err)
	}

	holidays := make([]domain.Holiday, 0, len(modelHolidays))
	for _, m := range modelHolidays {
		h, err := toDomainHoliday(m)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

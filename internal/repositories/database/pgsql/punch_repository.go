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

type PgxPunchRepository struct {
	BaseRepository
}

// newPgxPunchRepository creates a new repository for canonical punches.
func newPgxPunchRepository(pool *pgxpool.Pool) portsrepo.PunchRepositoryFacade {
	return &PgxPunchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PunchRepositoryFacade = (*PgxPunchRepository)(nil)

func toModelPunch(p domain.Punch) models.Punch {
	return models.Punch{
		PunchID:     p.PunchID,
		UserID:      p.UserID,
		Type:        string(p.Type),
		Source:      string(p.Source),
		PunchedAt:   p.PunchedAt,
		PunchDate:   p.PunchDate,
		Reason:      p.Reason,
		Geolocation: p.Geolocation,
		PhotoRef:    p.PhotoRef,
		AuditFields: models.AuditFields{
			CreatedAt:     p.CreatedAt,
			CreatedBy:     p.CreatedBy,
			LastUpdatedAt: p.LastUpdatedAt,
			LastUpdatedBy: p.LastUpdatedBy,
		},
	}
}

func toDomainPunch(m models.Punch) domain.Punch {
	return domain.Punch{
		PunchID:     m.PunchID,
		UserID:      m.UserID,
		Type:        domain.PunchType(m.Type),
		Source:      domain.PunchSource(m.Source),
		PunchedAt:   m.PunchedAt,
		PunchDate:   m.PunchDate,
		Reason:      m.Reason,
		Geolocation: m.Geolocation,
		PhotoRef:    m.PhotoRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const punchColumns = `punch_id, user_id, type, source, punched_at, punch_date, reason, geolocation, photo_ref, created_at, created_by, last_updated_at, last_updated_by`

func scanPunch(row pgx.Row) (models.Punch, error) {
	var m models.Punch
	err := row.Scan(
		&m.PunchID,
		&m.UserID,
		&m.Type,
		&m.Source,
		&m.PunchedAt,
		&m.PunchDate,
		&m.Reason,
		&m.Geolocation,
		&m.PhotoRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPunchByID retrieves a single punch.
func (r *PgxPunchRepository) FindPunchByID(ctx context.Context, punchID string) (*domain.Punch, error) {
	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE punch_id = $1;
	`
	m, err := scanPunch(r.Pool.QueryRow(ctx, query, punchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find punch %s: %w", punchID, err)
	}
	p := toDomainPunch(m)
	return &p, nil
}

// FindPunchesByUserAndRange retrieves a user's punches with
// from <= punched_at < to, ordered by punched_at ascending.
func (r *PgxPunchRepository) FindPunchesByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]domain.Punch, error) {
	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE user_id = $1 AND punched_at >= $2 AND punched_at < $3
		ORDER BY punched_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelPunches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Punch, error) {
		return scanPunch(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan punches: %w", err)
	}

	punches := make([]domain.Punch, len(modelPunches))
	for i, m := range modelPunches {
		punches[i] = toDomainPunch(m)
	}
	return punches, nil
}

// SavePunch persists a new canonical punch. The (user_id, punch_date, type)
// unique index makes the one-per-type-per-day rule hold even under
// concurrent double-submission.
func (r *PgxPunchRepository) SavePunch(ctx context.Context, punch domain.Punch) error {
	m := toModelPunch(punch)
	query := `
		INSERT INTO punches (` + punchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PunchID,
		m.UserID,
		m.Type,
		m.Source,
		m.PunchedAt,
		m.PunchDate,
		m.Reason,
		m.Geolocation,
		m.PhotoRef,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: punch type %s already exists for %s", apperrors.ErrDuplicate, m.Type, m.PunchDate.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save punch %s: %w", m.PunchID, err)
	}
	return nil
}

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

type PgxAdjustmentRepository struct {
	BaseRepository
}

// newPgxAdjustmentRepository creates a new repository for correction requests.
func newPgxAdjustmentRepository(pool *pgxpool.Pool) portsrepo.AdjustmentRepositoryFacade {
	return &PgxAdjustmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AdjustmentRepositoryFacade = (*PgxAdjustmentRepository)(nil)

func toDomainAdjustment(m models.Adjustment) domain.Adjustment {
	var originalType *domain.PunchType
	if m.OriginalType != nil {
		t := domain.PunchType(*m.OriginalType)
		originalType = &t
	}
	return domain.Adjustment{
		AdjustmentID:      m.AdjustmentID,
		UserID:            m.UserID,
		TargetPunchID:     m.TargetPunchID,
		OriginalTimestamp: m.OriginalTimestamp,
		OriginalType:      originalType,
		ProposedTimestamp: m.ProposedTimestamp,
		ProposedType:      domain.PunchType(m.ProposedType),
		Reason:            m.Reason,
		RequesterID:       m.RequesterID,
		Status:            domain.AdjustmentStatus(m.Status),
		IsAddition:        m.IsAddition,
		Geolocation:       m.Geolocation,
		PhotoRef:          m.PhotoRef,
		ResolvedBy:        m.ResolvedBy,
		ResolvedAt:        m.ResolvedAt,
		ResolutionNotes:   m.ResolutionNotes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const adjustmentColumns = `adjustment_id, user_id, target_punch_id, original_timestamp, original_type, proposed_timestamp, proposed_type, reason, requester_id, status, is_addition, geolocation, photo_ref, resolved_by, resolved_at, resolution_notes, created_at, created_by, last_updated_at, last_updated_by`

func scanAdjustment(row pgx.Row) (models.Adjustment, error) {
	var m models.Adjustment
	err := row.Scan(
		&m.AdjustmentID,
		&m.UserID,
		&m.TargetPunchID,
		&m.OriginalTimestamp,
		&m.OriginalType,
		&m.ProposedTimestamp,
		&m.ProposedType,
		&m.Reason,
		&m.RequesterID,
		&m.Status,
		&m.IsAddition,
		&m.Geolocation,
		&m.PhotoRef,
		&m.ResolvedBy,
		&m.ResolvedAt,
		&m.ResolutionNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAdjustmentByID retrieves a single adjustment.
func (r *PgxAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustments
		WHERE adjustment_id = $1;
	`
	m, err := scanAdjustment(r.Pool.QueryRow(ctx, query, adjustmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	a := toDomainAdjustment(m)
	return &a, nil
}

// FindPendingByUserTypeAndRange retrieves pending adjustments for the user
// whose proposed type matches and whose proposed timestamp falls in [from, to).
func (r *PgxAdjustmentRepository) FindPendingByUserTypeAndRange(ctx context.Context, userID string, proposedType domain.PunchType, from, to time.Time) ([]domain.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustments
		WHERE user_id = $1 AND proposed_type = $2 AND status = 'pending'
		  AND proposed_timestamp >= $3 AND proposed_timestamp < $4
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(proposedType), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending adjustments for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectAdjustments(rows)
}

// CountPendingInRange counts pending adjustments whose proposed timestamp
// falls in [from, to), any user.
func (r *PgxAdjustmentRepository) CountPendingInRange(ctx context.Context, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM adjustments
		WHERE status = 'pending' AND proposed_timestamp >= $1 AND proposed_timestamp < $2;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending adjustments: %w", err)
	}
	return count, nil
}

// FindAdjustmentsByStatus lists adjustments with the given status, newest first.
func (r *PgxAdjustmentRepository) FindAdjustmentsByStatus(ctx context.Context, status domain.AdjustmentStatus, limit int) ([]domain.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustments
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments by status %s: %w", status, err)
	}
	defer rows.Close()

	return collectAdjustments(rows)
}

func collectAdjustments(rows pgx.Rows) ([]domain.Adjustment, error) {
	modelAdjustments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Adjustment, error) {
		return scanAdjustment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan adjustments: %w", err)
	}
	adjustments := make([]domain.Adjustment, len(modelAdjustments))
	for i, m := range modelAdjustments {
		adjustments[i] = toDomainAdjustment(m)
	}
	return adjustments, nil
}

// SaveAdjustment persists a new pending adjustment.
func (r *PgxAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment) error {
	var originalType *string
	if adjustment.OriginalType != nil {
		t := string(*adjustment.OriginalType)
		originalType = &t
	}
	query := `
		INSERT INTO adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		adjustment.AdjustmentID,
		adjustment.UserID,
		adjustment.TargetPunchID,
		adjustment.OriginalTimestamp,
		originalType,
		adjustment.ProposedTimestamp,
		string(adjustment.ProposedType),
		adjustment.Reason,
		adjustment.RequesterID,
		string(adjustment.Status),
		adjustment.IsAddition,
		adjustment.Geolocation,
		adjustment.PhotoRef,
		adjustment.ResolvedBy,
		adjustment.ResolvedAt,
		adjustment.ResolutionNotes,
		adjustment.CreatedAt,
		adjustment.CreatedBy,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save adjustment %s: %w", adjustment.AdjustmentID, err)
	}
	return nil
}

// ApproveAdjustment applies an approved adjustment in a single transaction:
// the punch insert (additions) or overwrite (corrections) and the
// pending -> approved transition land together or not at all. Without the
// transaction a crash between the two writes would leave a mutated punch
// behind a still-pending adjustment, and its retry would trip sequence
// validation forever.
func (r *PgxAdjustmentRepository) ApproveAdjustment(ctx context.Context, adjustment domain.Adjustment, punch domain.Punch) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := toModelPunch(punch)
	if adjustment.IsAddition {
		insertQuery := `
			INSERT INTO punches (` + punchColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err = tx.Exec(ctx, insertQuery,
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
			return fmt.Errorf("failed to insert punch %s: %w", m.PunchID, err)
		}
	} else {
		updateQuery := `
			UPDATE punches
			SET type = $2, punched_at = $3, punch_date = $4, reason = $5, last_updated_at = $6, last_updated_by = $7
			WHERE punch_id = $1;
		`
		tag, execErr := tx.Exec(ctx, updateQuery,
			m.PunchID,
			m.Type,
			m.PunchedAt,
			m.PunchDate,
			m.Reason,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if execErr != nil {
			if isUniqueViolation(execErr) {
				return fmt.Errorf("%w: punch type %s already exists for %s", apperrors.ErrDuplicate, m.Type, m.PunchDate.Format("2006-01-02"))
			}
			return fmt.Errorf("failed to update punch %s: %w", m.PunchID, execErr)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}

	resolveQuery := `
		UPDATE adjustments
		SET status = $2, resolved_by = $3, resolved_at = $4, resolution_notes = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE adjustment_id = $1 AND status = 'pending';
	`
	tag, err := tx.Exec(ctx, resolveQuery,
		adjustment.AdjustmentID,
		string(adjustment.Status),
		adjustment.ResolvedBy,
		adjustment.ResolvedAt,
		adjustment.ResolutionNotes,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve adjustment %s: %w", adjustment.AdjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: adjustment %s is no longer pending", apperrors.ErrConflict, adjustment.AdjustmentID)
	}

	return r.Commit(ctx, tx)
}

// ResolveAdjustment transitions a pending adjustment to a terminal status.
// The WHERE status = 'pending' guard makes the transition single-use: a
// concurrent resolver loses with ErrConflict instead of double-applying.
func (r *PgxAdjustmentRepository) ResolveAdjustment(ctx context.Context, adjustment domain.Adjustment) error {
	query := `
		UPDATE adjustments
		SET status = $2, resolved_by = $3, resolved_at = $4, resolution_notes = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE adjustment_id = $1 AND status = 'pending';
	`
	tag, err := r.Pool.Exec(ctx, query,
		adjustment.AdjustmentID,
		string(adjustment.Status),
		adjustment.ResolvedBy,
		adjustment.ResolvedAt,
		adjustment.ResolutionNotes,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve adjustment %s: %w", adjustment.AdjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: adjustment %s is no longer pending", apperrors.ErrConflict, adjustment.AdjustmentID)
	}
	return nil
}

package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pontocerto/ponto_backend/internal/apperrors"
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	portsrepo "github.com/pontocerto/ponto_backend/internal/core/ports/repositories"
	"github.com/pontocerto/ponto_backend/internal/models"
)

type PgxAlertRepository struct {
	BaseRepository
}

// newPgxAlertRepository creates a new repository for user alerts.
func newPgxAlertRepository(pool *pgxpool.Pool) portsrepo.AlertRepositoryFacade {
	return &PgxAlertRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AlertRepositoryFacade = (*PgxAlertRepository)(nil)

func toDomainAlert(m models.Alert) domain.Alert {
	return domain.Alert{
		AlertID:   m.AlertID,
		UserID:    m.UserID,
		Type:      m.Type,
		Severity:  domain.AlertSeverity(m.Severity),
		Title:     m.Title,
		Message:   m.Message,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}

// SaveAlert persists a new alert.
func (r *PgxAlertRepository) SaveAlert(ctx context.Context, alert domain.Alert) error {
	query := `
		INSERT INTO alerts (alert_id, user_id, type, severity, title, message, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		alert.AlertID,
		alert.UserID,
		alert.Type,
		string(alert.Severity),
		alert.Title,
		alert.Message,
		alert.ReadAt,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save alert %s: %w", alert.AlertID, err)
	}
	return nil
}

// FindAlertsByUser lists a user's alerts, newest first.
func (r *PgxAlertRepository) FindAlertsByUser(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	query := `
		SELECT alert_id, user_id, type, severity, title, message, read_at, created_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelAlerts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Alert, error) {
		var m models.Alert
		err := row.Scan(
			&m.AlertID,
			&m.UserID,
			&m.Type,
			&m.Severity,
			&m.Title,
			&m.Message,
			&m.ReadAt,
			&m.CreatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan alerts: %w", err)
	}

	alerts := make([]domain.Alert, len(modelAlerts))
	for i, m := range modelAlerts {
		alerts[i] = toDomainAlert(m)
	}
	return alerts, nil
}

// MarkAlertRead records that the user has seen the alert. The user_id guard
// keeps users from acknowledging each other's alerts.
func (r *PgxAlertRepository) MarkAlertRead(ctx context.Context, alertID string, userID string) error {
	query := `
		UPDATE alerts
		SET read_at = NOW()
		WHERE alert_id = $1 AND user_id = $2 AND read_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark alert %s read: %w", alertID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package services

import (
	"context"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
	"github.com/pontocerto/ponto_backend/internal/dto"
)

// LedgerSvcFacade reconciles worked vs. expected hours into the hours bank.
type LedgerSvcFacade interface {
	// Recompute derives and upserts the ledger entry for (user, date).
	// Idempotent: identical punches yield numerically identical entries.
	// Duty-shift users are skipped and yield a nil entry. Dates inside a
	// closed period are a logged skip, returning the stored entry unchanged.
	Recompute(ctx context.Context, userID string, date time.Time) (*domain.LedgerEntry, error)

	// DailyClosing recomputes every active non-duty-shift user for the date,
	// isolating per-user failures. Safe to re-run for the same date.
	DailyClosing(ctx context.Context, date time.Time) (*dto.DailyClosingResult, error)

	// GetBalance aggregates worked/expected/balance over [from, to).
	GetBalance(ctx context.Context, userID string, from, to time.Time) (*dto.BalanceSummary, error)

	// ListEntries returns the raw ledger rows in [from, to).
	ListEntries(ctx context.Context, userID string, from, to time.Time) ([]domain.LedgerEntry, error)
}

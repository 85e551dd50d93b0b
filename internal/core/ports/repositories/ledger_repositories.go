package repositories

import (
	"context"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// LedgerReader defines read operations for hours bank rows.
type LedgerReader interface {
	// FindEntry retrieves the ledger entry for (user, date), if any.
	FindEntry(ctx context.Context, userID string, date time.Time) (*domain.LedgerEntry, error)

	// FindEntriesByUserAndRange retrieves entries with from <= entry_date < to,
	// ordered by entry_date ascending.
	FindEntriesByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for hours bank rows.
type LedgerWriter interface {
	// UpsertEntry inserts or updates the entry keyed by (user, date) and
	// returns the persisted row. Re-running with identical inputs must be a
	// no-op in effect.
	UpsertEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

package services

import (
	"context"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// ClosingSvcFacade owns the closing period markers that freeze past months.
type ClosingSvcFacade interface {
	// CloseMonth locks (year, month). Fails if already closed or while any
	// pending adjustment targets a date inside the month.
	CloseMonth(ctx context.Context, year, month int, notes, adminID string) (*domain.ClosingPeriod, error)

	// ReopenMonth deletes the marker. It does not recompute the reopened
	// range; an explicit recompute is required afterwards.
	ReopenMonth(ctx context.Context, year, month int, adminID string) error

	// IsDateClosed reports whether the instant falls inside a closed month.
	IsDateClosed(ctx context.Context, at time.Time) (bool, error)

	// ListClosings lists all markers, most recent month first.
	ListClosings(ctx context.Context) ([]domain.ClosingPeriod, error)
}

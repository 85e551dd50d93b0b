package services

import (
	"context"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// HolidaySvcFacade manages organization-wide non-working dates.
type HolidaySvcFacade interface {
	// CreateHoliday registers a holiday. Fails if the date already has one.
	CreateHoliday(ctx context.Context, date time.Time, name, adminID string) (*domain.Holiday, error)

	// DeleteHoliday removes a holiday.
	DeleteHoliday(ctx context.Context, holidayID, adminID string) error

	// ListHolidays lists holidays with date in [from, to).
	ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error)
}

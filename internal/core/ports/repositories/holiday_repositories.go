package repositories

import (
	"context"
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// HolidayRepositoryFacade defines storage operations for holidays.
type HolidayRepositoryFacade interface {
	// FindHolidayByDate retrieves the holiday on the given calendar date, if any.
	FindHolidayByDate(ctx context.Context, date time.Time) (*domain.Holiday, error)

	// SaveHoliday persists a new holiday. Returns apperrors.ErrDuplicate when
	// the date already has one.
	SaveHoliday(ctx context.Context, holiday domain.Holiday) error

	// DeleteHoliday removes a holiday by ID.
	DeleteHoliday(ctx context.Context, holidayID string) error

	// ListHolidays lists holidays with holiday_date in [from, to).
	ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error)
}

package dto

import (
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// CloseMonthRequest asks to lock a calendar month.
type CloseMonthRequest struct {
	Year  int    `json:"year" binding:"required,min=2000,max=2100"`
	Month int    `json:"month" binding:"required,min=1,max=12"`
	Notes string `json:"notes,omitempty"`
}

// ClosingPeriodResponse is the API representation of a closing marker.
type ClosingPeriodResponse struct {
	ClosingID string    `json:"closingID"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Notes     string    `json:"notes,omitempty"`
	ClosedBy  string    `json:"closedBy"`
	ClosedAt  time.Time `json:"closedAt"`
}

// ToClosingPeriodResponse maps a domain closing period to its API shape.
func ToClosingPeriodResponse(p *domain.ClosingPeriod) ClosingPeriodResponse {
	return ClosingPeriodResponse{
		ClosingID: p.ClosingID,
		Year:      p.Year,
		Month:     p.Month,
		Notes:     p.Notes,
		ClosedBy:  p.ClosedBy,
		ClosedAt:  p.ClosedAt,
	}
}

// ToClosingPeriodResponses maps a slice of closing periods.
func ToClosingPeriodResponses(periods []domain.ClosingPeriod) []ClosingPeriodResponse {
	out := make([]ClosingPeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToClosingPeriodResponse(&periods[i])
	}
	return out
}

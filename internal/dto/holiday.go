package dto

import "github.com/pontocerto/ponto_backend/internal/core/domain"

// CreateHolidayRequest declares a non-working date for the whole organization.
type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"` // 2006-01-02
	Name string `json:"name" binding:"required"`
}

// HolidayResponse is the API representation of a holiday.
type HolidayResponse struct {
	HolidayID string `json:"holidayID"`
	Date      string `json:"date"`
	Name      string `json:"name"`
}

// ToHolidayResponse maps a domain holiday to its API shape.
func ToHolidayResponse(h *domain.Holiday) HolidayResponse {
	return HolidayResponse{
		HolidayID: h.HolidayID,
		Date:      h.HolidayDate.Format("2006-01-02"),
		Name:      h.Name,
	}
}

// ToHolidayResponses maps a slice of holidays.
func ToHolidayResponses(holidays []domain.Holiday) []HolidayResponse {
	out := make([]HolidayResponse, len(holidays))
	for i := range holidays {
		out[i] = ToHolidayResponse(&holidays[i])
	}
	return out
}

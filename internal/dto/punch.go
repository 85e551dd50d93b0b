package dto

import (
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// RegisterPunchRequest is the kiosk punch payload. The timestamp is never
// accepted from the client; the server clock is authoritative.
type RegisterPunchRequest struct {
	Type        string  `json:"type" binding:"required,oneof=entrada saida_intervalo retorno_intervalo saida_final"`
	Geolocation *string `json:"geolocation,omitempty"`
	PhotoRef    *string `json:"photoRef,omitempty"`
}

// ManualPunchRequest is an administrator's direct punch insertion. It carries
// a client-supplied timestamp but still runs the full sequence validation.
type ManualPunchRequest struct {
	UserID    string    `json:"userID" binding:"required"`
	Type      string    `json:"type" binding:"required,oneof=entrada saida_intervalo retorno_intervalo saida_final"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Reason    string    `json:"reason" binding:"required"`
}

// PunchResponse is the API representation of a canonical punch.
type PunchResponse struct {
	PunchID     string    `json:"punchID"`
	UserID      string    `json:"userID"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	PunchedAt   time.Time `json:"punchedAt"`
	PunchDate   string    `json:"punchDate"`
	Reason      string    `json:"reason,omitempty"`
	Geolocation *string   `json:"geolocation,omitempty"`
	PhotoRef    *string   `json:"photoRef,omitempty"`
}

// ToPunchResponse maps a domain punch to its API shape.
func ToPunchResponse(p *domain.Punch) PunchResponse {
	return PunchResponse{
		PunchID:     p.PunchID,
		UserID:      p.UserID,
		Type:        string(p.Type),
		Source:      string(p.Source),
		PunchedAt:   p.PunchedAt,
		PunchDate:   p.PunchDate.Format("2006-01-02"),
		Reason:      p.Reason,
		Geolocation: p.Geolocation,
		PhotoRef:    p.PhotoRef,
	}
}

// ToPunchResponses maps a slice of domain punches.
func ToPunchResponses(punches []domain.Punch) []PunchResponse {
	out := make([]PunchResponse, len(punches))
	for i := range punches {
		out[i] = ToPunchResponse(&punches[i])
	}
	return out
}

// JourneyResponse is the API representation of a derived daily journey.
type JourneyResponse struct {
	UserID           string     `json:"userID"`
	Date             string     `json:"date"`
	Entrada          *time.Time `json:"entrada,omitempty"`
	SaidaIntervalo   *time.Time `json:"saidaIntervalo,omitempty"`
	RetornoIntervalo *time.Time `json:"retornoIntervalo,omitempty"`
	SaidaFinal       *time.Time `json:"saidaFinal,omitempty"`
	Status           string     `json:"status"`
	WorkedHours      string     `json:"workedHours"`
	Anomalies        []string   `json:"anomalies,omitempty"`
}

// ToJourneyResponse maps a derived journey to its API shape.
func ToJourneyResponse(j *domain.DailyJourney) JourneyResponse {
	return JourneyResponse{
		UserID:           j.UserID,
		Date:             j.Date.Format("2006-01-02"),
		Entrada:          j.Entrada,
		SaidaIntervalo:   j.SaidaIntervalo,
		RetornoIntervalo: j.RetornoIntervalo,
		SaidaFinal:       j.SaidaFinal,
		Status:           string(j.Status),
		WorkedHours:      j.WorkedHours.StringFixed(2),
		Anomalies:        j.Anomalies,
	}
}

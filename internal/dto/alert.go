package dto

import (
	"time"

	"github.com/pontocerto/ponto_backend/internal/core/domain"
)

// AlertResponse is the API representation of a notification.
type AlertResponse struct {
	AlertID   string     `json:"alertID"`
	UserID    string     `json:"userID"`
	Type      string     `json:"type"`
	Severity  string     `json:"severity"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToAlertResponse maps a domain alert to its API shape.
func ToAlertResponse(a *domain.Alert) AlertResponse {
	return AlertResponse{
		AlertID:   a.AlertID,
		UserID:    a.UserID,
		Type:      a.Type,
		Severity:  string(a.Severity),
		Title:     a.Title,
		Message:   a.Message,
		ReadAt:    a.ReadAt,
		CreatedAt: a.CreatedAt,
	}
}

// ToAlertResponses maps a slice of alerts.
func ToAlertResponses(alerts []domain.Alert) []AlertResponse {
	out := make([]AlertResponse, len(alerts))
	for i := range alerts {
		out[i] = ToAlertResponse(&alerts[i])
	}
	return out
}

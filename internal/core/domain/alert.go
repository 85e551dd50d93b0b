package domain

import "time"

// AlertSeverity grades a notification.
type AlertSeverity string

const (
	SeverityInfo    AlertSeverity = "info"
	SeverityWarning AlertSeverity = "warning"
)

// Alert is an in-app notification for a user. The adjustment workflow creates
// one on request, approval and rejection.
type Alert struct {
	AlertID   string        `json:"alertID"`
	UserID    string        `json:"userID"`
	Type      string        `json:"type"`
	Severity  AlertSeverity `json:"severity"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	ReadAt    *time.Time    `json:"readAt,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

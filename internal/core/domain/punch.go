package domain

import "time"

// PunchType identifies the position of a punch within the daily journey.
type PunchType string

const (
	PunchEntrada          PunchType = "entrada"
	PunchSaidaIntervalo   PunchType = "saida_intervalo"
	PunchRetornoIntervalo PunchType = "retorno_intervalo"
	PunchSaidaFinal       PunchType = "saida_final"
)

// ValidPunchType reports whether t is one of the four journey punch types.
func ValidPunchType(t PunchType) bool {
	switch t {
	case PunchEntrada, PunchSaidaIntervalo, PunchRetornoIntervalo, PunchSaidaFinal:
		return true
	}
	return false
}

// PunchSource records where a punch originated. It is a tagged value; the
// registry and the adjustment workflow dispatch on it, nothing inherits from it.
type PunchSource string

const (
	SourceKiosk     PunchSource = "kiosk"
	SourceManual    PunchSource = "manual"
	SourceExternal  PunchSource = "external"
	SourceDutyShift PunchSource = "duty_shift"
)

// Punch is a canonical (approved) time record. Canonical punches participate in
// sequence validation and hour computation; at most one punch of each type may
// exist per user per local calendar day.
type Punch struct {
	PunchID   string      `json:"punchID"`
	UserID    string      `json:"userID"`
	Type      PunchType   `json:"type"`
	Source    PunchSource `json:"source"`
	PunchedAt time.Time   `json:"punchedAt"`
	// PunchDate is the local calendar day (organization timezone) PunchedAt
	// falls on. It backs the per-day uniqueness constraint.
	PunchDate   time.Time `json:"punchDate"`
	Reason      string    `json:"reason,omitempty"`
	Geolocation *string   `json:"geolocation,omitempty"`
	PhotoRef    *string   `json:"photoRef,omitempty"`
	AuditFields
}

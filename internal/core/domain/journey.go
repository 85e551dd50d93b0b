package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JourneyStatus classifies a derived daily journey.
type JourneyStatus string

const (
	JourneyAusente    JourneyStatus = "Ausente"
	JourneyIncompleto JourneyStatus = "Incompleto"
	JourneyCompleto   JourneyStatus = "Completo"
)

// DailyJourney is the derived view of one user's punches for one local
// calendar day. It is never persisted; the ledger recomputes it on demand.
type DailyJourney struct {
	UserID           string          `json:"userID"`
	Date             time.Time       `json:"date"`
	Entrada          *time.Time      `json:"entrada,omitempty"`
	SaidaIntervalo   *time.Time      `json:"saidaIntervalo,omitempty"`
	RetornoIntervalo *time.Time      `json:"retornoIntervalo,omitempty"`
	SaidaFinal       *time.Time      `json:"saidaFinal,omitempty"`
	Status           JourneyStatus   `json:"status"`
	WorkedHours      decimal.Decimal `json:"workedHours"`
	// Anomalies lists irregularities found in the raw data (e.g. legacy
	// duplicate types). The earliest instance is used, never silently dropped.
	Anomalies []string `json:"anomalies,omitempty"`
}

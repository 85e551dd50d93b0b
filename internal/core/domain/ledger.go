package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the per-user per-day hours bank row. Unique per (user, date).
// Balance is always HoursWorked - HoursExpected.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	UserID        string          `json:"userID"`
	EntryDate     time.Time       `json:"entryDate"`
	HoursWorked   decimal.Decimal `json:"hoursWorked"`
	HoursExpected decimal.Decimal `json:"hoursExpected"`
	Balance       decimal.Decimal `json:"balance"`
	AuditFields
}

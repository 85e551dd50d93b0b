package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry maps the ledger_entries table, unique per (user_id, entry_date).
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	UserID        string          `db:"user_id"`
	EntryDate     time.Time       `db:"entry_date"`
	HoursWorked   decimal.Decimal `db:"hours_worked"`
	HoursExpected decimal.Decimal `db:"hours_expected"`
	Balance       decimal.Decimal `db:"balance"`
	AuditFields
}

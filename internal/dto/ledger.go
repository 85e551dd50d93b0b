package dto

import (
	"github.com/pontocerto/ponto_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse is the API representation of an hours bank row.
type LedgerEntryResponse struct {
	EntryID       string `json:"entryID"`
	UserID        string `json:"userID"`
	EntryDate     string `json:"entryDate"`
	HoursWorked   string `json:"hoursWorked"`
	HoursExpected string `json:"hoursExpected"`
	Balance       string `json:"balance"`
}

// ToLedgerEntryResponse maps a domain ledger entry to its API shape.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		UserID:        e.UserID,
		EntryDate:     e.EntryDate.Format("2006-01-02"),
		HoursWorked:   e.HoursWorked.StringFixed(2),
		HoursExpected: e.HoursExpected.StringFixed(2),
		Balance:       e.Balance.StringFixed(2),
	}
}

// ToLedgerEntryResponses maps a slice of ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}

// BalanceSummary aggregates a user's ledger over a date range.
type BalanceSummary struct {
	UserID        string          `json:"userID"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Days          int             `json:"days"`
	HoursWorked   decimal.Decimal `json:"hoursWorked"`
	HoursExpected decimal.Decimal `json:"hoursExpected"`
	Balance       decimal.Decimal `json:"balance"`
}

// DailyClosingResult is the aggregate outcome of one daily closing batch run.
type DailyClosingResult struct {
	Date             string `json:"date"`
	Processed        int    `json:"processed"`
	Failed           int    `json:"failed"`
	SkippedDutyShift int    `json:"skippedDutyShift"`
}

// RecomputeRequest asks for an explicit ledger recompute of one user/day.
type RecomputeRequest struct {
	UserID string `json:"userID" binding:"required"`
	Date   string `json:"date" binding:"required"` // 2006-01-02
}

// DailyClosingRequest triggers the daily closing batch for a date.
type DailyClosingRequest struct {
	Date string `json:"date" binding:"required"` // 2006-01-02
}

package domain

import "time"

// Holiday is an organization-wide non-working date. The ledger treats holiday
// dates as zero expected hours for every user.
type Holiday struct {
	HolidayID   string    `json:"holidayID"`
	HolidayDate time.Time `json:"holidayDate"`
	Name        string    `json:"name"`
	AuditFields
}

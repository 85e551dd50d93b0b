package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole controls what a user may do on the attendance surface.
type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// User is an employee tracked by the attendance system.
//
// Duty-shift users are tracked by a single daily check-in and are excluded
// from the hours ledger entirely.
type User struct {
	UserID             string          `json:"userID"`
	Username           string          `json:"username"`
	Name               string          `json:"name"`
	PasswordHash       *string         `json:"-"`
	Role               UserRole        `json:"role"`
	IsActive           bool            `json:"isActive"`
	IsDutyShift        bool            `json:"isDutyShift"`
	ExpectedDailyHours decimal.Decimal `json:"expectedDailyHours"`
	// NonWorkingWeekdays holds time.Weekday values (0=Sunday) on which the
	// user owes no hours.
	NonWorkingWeekdays []int32 `json:"nonWorkingWeekdays,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// OwesHoursOn reports whether the user has expected hours on the given weekday.
func (u User) OwesHoursOn(day time.Weekday) bool {
	for _, d := range u.NonWorkingWeekdays {
		if time.Weekday(d) == day {
			return false
		}
	}
	return true
}

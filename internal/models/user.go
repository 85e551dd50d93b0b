package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User maps the users table.
type User struct {
	UserID             string          `db:"user_id"`
	Username           string          `db:"username"`
	Name               string          `db:"name"`
	PasswordHash       *string         `db:"password_hash"`
	Role               string          `db:"role"`
	IsActive           bool            `db:"is_active"`
	IsDutyShift        bool            `db:"is_duty_shift"`
	ExpectedDailyHours decimal.Decimal `db:"expected_daily_hours"`
	NonWorkingWeekdays []int32         `db:"non_working_weekdays"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

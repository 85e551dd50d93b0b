package models

// Holiday maps the holidays table, unique per holiday_date.
type Holiday struct {
	HolidayID   string `db:"holiday_id"`
	HolidayDate string `db:"holiday_date"`
	Name        string `db:"name"`
	AuditFields
}

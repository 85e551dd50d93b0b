package timecalc_test

import (
	"testing"
	"time"

	"github.com/pontocerto/ponto_backend/internal/utils/timecalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestDateOnlyUsesOrgTimezone(t *testing.T) {
	loc := mustLoc(t)
	// 01:30 UTC is still the previous day in Sao Paulo (UTC-3).
	utc := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)
	d := timecalc.DateOnly(utc, loc)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 9, d.Day())
}

func TestDayBounds(t *testing.T) {
	loc := mustLoc(t)
	at := time.Date(2025, 6, 15, 14, 0, 0, 0, loc)
	start, end := timecalc.DayBounds(at, loc)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, loc), end)
}

func TestMonthBounds(t *testing.T) {
	loc := mustLoc(t)
	start, end := timecalc.MonthBounds(2025, time.December, loc)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), end)
}

func TestRemainingBreakMinutes(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected int
	}{
		{"nothing elapsed", 0, 60},
		{"35 minutes elapsed", 35 * time.Minute, 25},
		{"fraction rounds up", 59*time.Minute + 1*time.Second, 1},
		{"exactly met", 60 * time.Minute, 0},
		{"over the minimum", 90 * time.Minute, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, timecalc.RemainingBreakMinutes(tc.elapsed, 60))
		})
	}
}

package scheduler

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testScheduler(hour int) *DailyClosingScheduler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDailyClosingScheduler(nil, time.UTC, hour, logger)
}

func TestNextRun_BeforeClosingHour(t *testing.T) {
	s := testScheduler(23)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	next := s.nextRun(now)

	assert.Equal(t, time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), next)
}

func TestNextRun_AfterClosingHourRollsToTomorrow(t *testing.T) {
	s := testScheduler(23)
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	next := s.nextRun(now)

	assert.Equal(t, time.Date(2026, 3, 11, 23, 0, 0, 0, time.UTC), next)
}

func TestNextRun_ExactlyAtClosingHourRollsToTomorrow(t *testing.T) {
	s := testScheduler(23)
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	next := s.nextRun(now)

	assert.Equal(t, time.Date(2026, 3, 11, 23, 0, 0, 0, time.UTC), next)
}

func TestStartStop(t *testing.T) {
	s := testScheduler(23)
	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

// Package scheduler runs the in-process daily closing trigger. Deployments
// driven by an external scheduler disable it and hit the HTTP entry point
// instead.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
)

// DailyClosingScheduler fires the daily closing batch once per local day at
// the configured hour. Re-running for a date the batch already processed is
// safe; the recompute is idempotent.
type DailyClosingScheduler struct {
	ledgerSvc portssvc.LedgerSvcFacade
	loc       *time.Location
	hour      int
	logger    *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewDailyClosingScheduler creates the scheduler. hour is the local hour
// (0-23) at which the batch runs.
func NewDailyClosingScheduler(ledgerSvc portssvc.LedgerSvcFacade, loc *time.Location, hour int, logger *slog.Logger) *DailyClosingScheduler {
	return &DailyClosingScheduler{
		ledgerSvc: ledgerSvc,
		loc:       loc,
		hour:      hour,
		logger:    logger,
		stop:      make(chan struct{}),
	}
}

// Start launches the background loop.
func (s *DailyClosingScheduler) Start() {
	s.wg.Add(1)
	go s.run()
	s.logger.Info("Daily closing scheduler started",
		slog.Int("hour", s.hour),
		slog.String("timezone", s.loc.String()))
}

// Stop halts the loop and waits for an in-flight run to finish.
func (s *DailyClosingScheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
	s.logger.Info("Daily closing scheduler stopped")
}

func (s *DailyClosingScheduler) run() {
	defer s.wg.Done()
	for {
		wait := time.Until(s.nextRun(time.Now()))
		timer := time.NewTimer(wait)
		select {
		case <-s.stop:
			timer.Stop()
			return
		case firedAt := <-timer.C:
			s.runOnce(firedAt)
		}
	}
}

// nextRun returns the next instant at the closing hour in the org timezone.
func (s *DailyClosingScheduler) nextRun(now time.Time) time.Time {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.hour, 0, 0, 0, s.loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *DailyClosingScheduler) runOnce(firedAt time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := s.ledgerSvc.DailyClosing(ctx, firedAt)
	if err != nil {
		s.logger.Error("Scheduled daily closing failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Scheduled daily closing finished",
		slog.String("date", result.Date),
		slog.Int("processed", result.Processed),
		slog.Int("failed", result.Failed),
		slog.Int("skipped_duty_shift", result.SkippedDutyShift))
}

// Package scheduler runs the minute-tick reminder engine.
package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/dosewatch/dosewatch/internal/logging"
)

// Scheduler drives the dose checker on a minute tick.
type Scheduler struct {
	cron    *cron.Cron
	checker *DoseChecker
}

// New creates a scheduler around a dose checker.
func New(checker *DoseChecker) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		checker: checker,
	}
}

// Start begins the minute tick. The first check runs immediately so a
// freshly started watcher does not wait up to a minute for doses already
// in the window.
func (s *Scheduler) Start() error {
	s.checker.Start()
	s.checker.Check()

	// Top of every minute.
	_, err := s.cron.AddFunc("0 * * * * *", func() {
		s.checker.Check()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logging.Info("scheduler started")
	return nil
}

// Stop halts the tick and waits for any in-flight check to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.checker.CancelAllSnoozes()
	logging.Info("scheduler stopped")
}

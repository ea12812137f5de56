package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler manages the cron tasks of the daemon: the monthly scan and the
// intraday monitor.
type Scheduler struct {
	Cron *cron.Cron
}

// NewScheduler creates a new Scheduler using six-field cron expressions
// (with seconds).
func NewScheduler() *Scheduler {
	return &Scheduler{Cron: cron.New(cron.WithSeconds())}
}

// RegisterAll registers the scan and monitor tasks.
func (s *Scheduler) RegisterAll(scanCron, monitorCron string, scanJob, monitorJob func()) error {
	if _, err := s.Cron.AddFunc(scanCron, scanJob); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(monitorCron, monitorJob); err != nil {
		return fmt.Errorf("register monitor task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// Package cronjob runs the service's periodic housekeeping.
package cronjob

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec runs a job at the start of every minute (seconds field enabled).
const DefaultSpec = "0 * * * * *"

// Sweeper evicts expired entries and reports how many were removed.
type Sweeper func() int

type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
}

// AddSweeper schedules fn under spec. An empty spec selects DefaultSpec.
func (s *Scheduler) AddSweeper(name, spec string, fn Sweeper) error {
	if spec == "" {
		spec = DefaultSpec
	}
	_, err := s.cron.AddFunc(spec, func() {
		if n := fn(); n > 0 {
			s.logger.Info("sweep completed", zap.String("job", name), zap.Int("removed", n))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

// Start runs the scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("cron scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop halts scheduling and returns a context done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

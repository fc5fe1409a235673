// Package scheduler runs background maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/wetalkinmedia/PocketWatcha2/internal/cache"
	"github.com/wetalkinmedia/PocketWatcha2/internal/logger"
	"github.com/wetalkinmedia/PocketWatcha2/internal/models"
)

// Job is a unit of scheduled work. Returned errors are logged.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner with job logging.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
}

// New creates an idle Scheduler.
func New() *Scheduler {
	return &Scheduler{cron: cron.New(), log: logger.Named("scheduler")}
}

// Add registers job under name on spec. Specs use the standard five-field
// format or a descriptor such as "@every 10m".
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.log.Infow("job scheduled", "job", name, "spec", spec)
	return nil
}

// Len is the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warnw("scheduler stop timed out")
	}
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.log.Errorw("job failed", "job", name, "error", err, "duration", time.Since(start))
		return
	}
	s.log.Debugw("job finished", "job", name, "duration", time.Since(start))
}

// PurgeCache drops expired insight entries from store.
func PurgeCache(store cache.Store) Job {
	return func(ctx context.Context) error {
		return store.Purge(ctx)
	}
}

// TipSource picks, and caches, the tip for a date.
type TipSource interface {
	DailyTip(date time.Time) (*models.FinancialTip, error)
}

// WarmDailyTip picks the tip for the day the job runs so the first request
// of the day is served from cache.
func WarmDailyTip(tips TipSource, clock func() time.Time) Job {
	return func(ctx context.Context) error {
		tip, err := tips.DailyTip(clock())
		if err != nil {
			return err
		}
		logger.Named("scheduler").Infow("daily tip warmed", "tip_id", tip.ID, "title", tip.Title)
		return nil
	}
}

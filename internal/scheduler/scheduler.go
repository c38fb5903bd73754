package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Warmer is the part of water.Service the scheduler drives.
type Warmer interface {
	Warm(ctx context.Context)
}

// Scheduler periodically calls the data entry points so stale cache slots are
// recomputed off the request path.
type Scheduler struct {
	scheduler *gocron.Scheduler
	warmer    Warmer
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. timeout bounds a single warm-up run.
func New(interval, timeout time.Duration, warmer Warmer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		warmer:    warmer,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A zero interval disables warm-up.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		slog.Info("scheduler: refresh interval not set; cache warm-up disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	slog.Debug("scheduler: warming caches")

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.warmer.Warm(ctx)
	slog.Debug("scheduler: warm-up finished")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs jobs on cron schedules. Overlapping runs of the same job are
// skipped.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context

	runs     atomic.Int64
	failures atomic.Int64
}

// NewScheduler creates a new Scheduler whose jobs receive ctx.
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Ctx: ctx,
	}
}

// Register adds job under the given 6-field cron spec.
func (s *Scheduler) Register(spec, name string, job Job) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow(name, job) }); err != nil {
		return fmt.Errorf("register %s task: %w", name, err)
	}
	log.Printf("[INFO] registered %s task: %s", name, spec)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes job immediately on the calling goroutine. Failures are
// logged, never propagated, so the next tick still runs.
func (s *Scheduler) RunNow(name string, job Job) {
	if s.Ctx.Err() != nil {
		return
	}
	log.Printf("[INFO] running %s task", name)
	s.runs.Add(1)
	if err := job(s.Ctx); err != nil {
		s.failures.Add(1)
		log.Printf("[ERROR] %s task: %v", name, err)
	}
}

// Stats returns how many jobs ran and how many of them failed.
func (s *Scheduler) Stats() (runs, failures int64) {
	return s.runs.Load(), s.failures.Load()
}

// Package scheduler runs delayed jobs, mostly self-destructing notices and
// reaction cleanups. Jobs are held in memory; a restart drops them, which is
// acceptable for cosmetic cleanups.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	runAt time.Time
	name  string
	fn    func(ctx context.Context) error
}

// Scheduler dispatches jobs whose time has come, in the order they were
// scheduled.
type Scheduler struct {
	logsink  *slog.Logger
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	jobs []job
}

func New(interval time.Duration, logsink *slog.Logger) *Scheduler {
	return &Scheduler{logsink: logsink, interval: interval, now: time.Now}
}

// After schedules fn to run once the delay has passed.
func (s *Scheduler) After(delay time.Duration, name string, fn func(ctx context.Context) error) {
	s.mu.Lock()
	s.jobs = append(s.jobs, job{runAt: s.now().Add(delay), name: name, fn: fn})
	s.mu.Unlock()
}

// Pending returns the number of jobs waiting to run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// DispatchDue runs every overdue job. A job that panics or errors is logged
// and dropped; the rest of the batch still runs.
func (s *Scheduler) DispatchDue(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var due []job
	kept := s.jobs[:0]
	for _, j := range s.jobs {
		if j.runAt.After(now) {
			kept = append(kept, j)
		} else {
			due = append(due, j)
		}
	}
	s.jobs = kept
	s.mu.Unlock()

	for _, j := range due {
		s.run(ctx, j)
	}
}

func (s *Scheduler) run(ctx context.Context, j job) {
	defer func() {
		if r := recover(); r != nil {
			s.logsink.Error("Scheduled job panicked", "job", j.name, "panic", r)
		}
	}()
	if err := j.fn(ctx); err != nil {
		s.logsink.Warn("Scheduled job failed", "job", j.name, "error", err)
	}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logsink.Info("Scheduler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logsink.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.DispatchDue(ctx)
		}
	}
}

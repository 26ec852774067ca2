package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testScheduler(clock *time.Time) *Scheduler {
	s := New(time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return *clock }
	return s
}

func TestDispatchDueRunsOverdueInOrder(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := testScheduler(&clock)

	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}
	s.After(time.Minute, "first", record("first"))
	s.After(2*time.Minute, "second", record("second"))
	s.After(time.Hour, "later", record("later"))

	s.DispatchDue(context.Background())
	if len(order) != 0 {
		t.Fatalf("jobs ran early: %v", order)
	}

	clock = clock.Add(5 * time.Minute)
	s.DispatchDue(context.Background())
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("dispatch order = %v", order)
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1", s.Pending())
	}
}

func TestDispatchDueSurvivesPanicsAndErrors(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := testScheduler(&clock)

	ran := false
	s.After(0, "panics", func(context.Context) error { panic("boom") })
	s.After(0, "fails", func(context.Context) error { return errors.New("nope") })
	s.After(0, "runs", func(context.Context) error { ran = true; return nil })

	clock = clock.Add(time.Second)
	s.DispatchDue(context.Background())

	if !ran {
		t.Error("healthy job did not run after a panicking one")
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

package handler

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type recordingSink struct {
	errs []error
}

func (s *recordingSink) HandleError(_ context.Context, _ tgbotapi.Update, err error) {
	s.errs = append(s.errs, err)
}

func TestDispatcherGroupOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	var order []string
	record := func(name string, consume bool) HandlerFunc {
		return func(context.Context, tgbotapi.Update) (bool, error) {
			order = append(order, name)
			return consume, nil
		}
	}

	// Registered out of order on purpose.
	d.Register(2, record("late", false))
	d.Register(0, record("first", true))
	d.Register(0, record("shadowed", true))
	d.Register(1, record("second", false))

	if err := d.Dispatch(context.Background(), tgbotapi.Update{}); err != nil {
		t.Fatalf("Dispatch() = %v", err)
	}

	want := []string{"first", "second", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestDispatcherRoutesErrorsToSink(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	boom := errors.New("boom")
	d.Register(0, func(context.Context, tgbotapi.Update) (bool, error) { return false, boom })
	ran := false
	d.Register(1, func(context.Context, tgbotapi.Update) (bool, error) { ran = true; return true, nil })

	err := d.Dispatch(context.Background(), tgbotapi.Update{})

	if len(sink.errs) != 1 || !errors.Is(sink.errs[0], boom) {
		t.Errorf("sink errors = %v", sink.errs)
	}
	// The caller sees the failure too, so processing can be recorded as such.
	if !errors.Is(err, boom) {
		t.Errorf("Dispatch() = %v, want it to wrap the handler error", err)
	}
	if !ran {
		t.Error("an error stopped dispatch of later groups")
	}
}

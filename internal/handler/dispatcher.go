package handler

import (
	"context"
	"errors"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandlerFunc attempts one update. It reports whether it consumed the update;
// a consumed update stops the remaining handlers of the same group.
type HandlerFunc func(ctx context.Context, upd tgbotapi.Update) (bool, error)

// ErrorSink receives every error a handler returns.
type ErrorSink interface {
	HandleError(ctx context.Context, upd tgbotapi.Update, err error)
}

// Dispatcher routes updates through handler groups, lowest group first,
// registration order within a group.
type Dispatcher struct {
	groups map[int][]HandlerFunc
	order  []int
	sink   ErrorSink
}

func NewDispatcher(sink ErrorSink) *Dispatcher {
	return &Dispatcher{groups: make(map[int][]HandlerFunc), sink: sink}
}

func (d *Dispatcher) Register(group int, fn HandlerFunc) {
	if _, ok := d.groups[group]; !ok {
		d.order = append(d.order, group)
		sort.Ints(d.order)
	}
	d.groups[group] = append(d.groups[group], fn)
}

// Dispatch runs the update through every group. Errors go to the sink and do
// not stop dispatch; the joined errors are also returned so the caller can
// record the outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, upd tgbotapi.Update) error {
	var errs []error
	for _, group := range d.order {
		for _, fn := range d.groups[group] {
			consumed, err := fn(ctx, upd)
			if err != nil {
				d.sink.HandleError(ctx, upd, err)
				errs = append(errs, err)
			}
			if consumed {
				break
			}
		}
	}
	return errors.Join(errs...)
}

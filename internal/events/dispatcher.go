// Package events delivers domain events after the owning transaction commits.
package events

import (
	"context"
	"errors"
	"fmt"

	"taskify/internal/domain"
	"taskify/internal/logger"
)

// Handler reacts to a single committed event.
type Handler interface {
	Name() string
	Handle(ctx context.Context, e domain.Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc struct {
	ID string
	Fn func(ctx context.Context, e domain.Event) error
}

func (h HandlerFunc) Name() string { return h.ID }

func (h HandlerFunc) Handle(ctx context.Context, e domain.Event) error { return h.Fn(ctx, e) }

// Dispatcher hands every event to every handler in registration order. A
// failing handler does not stop the others; all failures are joined.
type Dispatcher struct {
	handlers []Handler
	log      *logger.Logger
}

func NewDispatcher(log *logger.Logger, handlers ...Handler) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{handlers: handlers, log: log.With("component", "events")}
}

func (d *Dispatcher) Register(h Handler) {
	d.handlers = append(d.handlers, h)
}

func (d *Dispatcher) Dispatch(ctx context.Context, events []domain.Event) error {
	var errs []error
	for _, e := range events {
		for _, h := range d.handlers {
			if err := h.Handle(ctx, e); err != nil {
				d.log.Warn("event handler failed", "handler", h.Name(), "event", e.EventName(), "error", err)
				errs = append(errs, fmt.Errorf("%s: %s: %w", h.Name(), e.EventName(), err))
			}
		}
	}
	return errors.Join(errs...)
}

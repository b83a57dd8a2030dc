// Package service holds the lifecycle coordinator: the application layer that
// loads aggregates, enforces the rules that span more than one of them,
// persists the result atomically and hands the raised events to a dispatcher.
package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"taskify/internal/domain"
	"taskify/internal/logger"
)

const tracerName = "taskify/internal/service"

type Coordinator struct {
	store      Store
	dispatcher EventDispatcher
	hasher     PasswordHasher
	log        *logger.Logger
}

type Option func(*Coordinator)

func WithDispatcher(d EventDispatcher) Option {
	return func(c *Coordinator) { c.dispatcher = d }
}

func WithPasswordHasher(h PasswordHasher) Option {
	return func(c *Coordinator) { c.hasher = h }
}

func NewCoordinator(store Store, log *logger.Logger, opts ...Option) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	c := &Coordinator{store: store, log: log.With("component", "coordinator")}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// changeSet remembers which aggregates a command touched so their events can
// be drained once the transaction has committed.
type changeSet struct {
	sources []domain.EventSource
}

func (cs *changeSet) track(sources ...domain.EventSource) {
	cs.sources = append(cs.sources, sources...)
}

func (cs *changeSet) drain() []domain.Event {
	var out []domain.Event
	for _, s := range cs.sources {
		out = append(out, s.PullEvents()...)
	}
	return out
}

// execute runs fn in one transaction inside a span named coordinator.<op>.
// Events are dispatched only after commit; a dispatch failure is logged and
// does not fail the command.
func (c *Coordinator) execute(ctx context.Context, op string, fn func(ctx context.Context, uow UnitOfWork, cs *changeSet) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "coordinator."+op)
	defer span.End()

	cs := &changeSet{}
	err := c.store.InTx(ctx, func(uow UnitOfWork) error {
		return fn(ctx, uow, cs)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	events := cs.drain()
	if c.dispatcher != nil && len(events) > 0 {
		if derr := c.dispatcher.Dispatch(ctx, events); derr != nil {
			c.log.Warn("event dispatch failed", "op", op, "events", len(events), "error", derr)
		}
	}
	return nil
}

// query runs a read outside any transaction, still traced.
func (c *Coordinator) query(ctx context.Context, op string, fn func(ctx context.Context, uow UnitOfWork) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "coordinator."+op)
	defer span.End()
	if err := fn(ctx, c.store); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (c *Coordinator) recordActivity(ctx context.Context, uow UnitOfWork, typ domain.ActivityType, title, description string) error {
	a, err := domain.NewActivity(title, description, typ, nil)
	if err != nil {
		return err
	}
	return uow.Activities().Create(ctx, a)
}

func (c *Coordinator) RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	var out []domain.Activity
	err := c.query(ctx, "RecentActivity", func(ctx context.Context, uow UnitOfWork) error {
		var err error
		out, err = uow.Activities().Recent(ctx, limit)
		return err
	})
	return out, err
}

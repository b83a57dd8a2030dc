package events

import (
	"context"

	"taskify/internal/domain"
	"taskify/internal/logger"
)

type LogHandler struct {
	log *logger.Logger
}

func NewLogHandler(log *logger.Logger) *LogHandler {
	return &LogHandler{log: log}
}

func (h *LogHandler) Name() string { return "log" }

func (h *LogHandler) Handle(_ context.Context, e domain.Event) error {
	h.log.Info("domain event", "event", e.EventName(), "aggregate_id", e.AggregateID(), "occurred_at", e.OccurredAt())
	return nil
}

// ActivityWriter persists feed entries.
type ActivityWriter interface {
	Create(ctx context.Context, a domain.Activity) error
}

// ActivityRecorder turns feed-worthy events into activity log rows.
type ActivityRecorder struct {
	activities ActivityWriter
}

func NewActivityRecorder(w ActivityWriter) *ActivityRecorder {
	return &ActivityRecorder{activities: w}
}

func (r *ActivityRecorder) Name() string { return "activity" }

func (r *ActivityRecorder) Handle(ctx context.Context, e domain.Event) error {
	a, ok := domain.ActivityFor(e)
	if !ok {
		return nil
	}
	return r.activities.Create(ctx, a)
}

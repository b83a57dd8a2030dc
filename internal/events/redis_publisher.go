package events

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"taskify/internal/domain"
)

const DefaultStream = "taskify:events"

// RedisPublisher appends every event to a Redis stream.
type RedisPublisher struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

type PublisherOption func(*RedisPublisher)

// WithMaxLen caps the stream approximately at n entries.
func WithMaxLen(n int64) PublisherOption {
	return func(p *RedisPublisher) { p.maxLen = n }
}

func NewRedisPublisher(client redis.Cmdable, stream string, opts ...PublisherOption) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	p := &RedisPublisher{client: client, stream: stream}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *RedisPublisher) Name() string { return "redis" }

func (p *RedisPublisher) Handle(ctx context.Context, e domain.Event) error {
	payload, err := sonic.Marshal(e)
	if err != nil {
		return err
	}
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"name":        e.EventName(),
			"aggregateId": e.AggregateID(),
			"occurredAt":  e.OccurredAt().UTC().Format(time.RFC3339Nano),
			"payload":     string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	return p.client.XAdd(ctx, args).Err()
}

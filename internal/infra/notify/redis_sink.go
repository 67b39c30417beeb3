package notify

import (
	"context"
	"time"

	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/usecase/shared"

	goredis "github.com/redis/go-redis/v9"
)

type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *goredis.IntCmd
}

// RedisSink publishes each notification as JSON on a pub/sub channel that the
// back-office consumers subscribe to.
type RedisSink struct {
	rdb     Publisher
	channel string
}

func NewRedisSink(rdb Publisher, channel string) *RedisSink {
	return &RedisSink{rdb: rdb, channel: channel}
}

func NewRedisClient(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errs.Wrap(err, "redis ping")
	}
	return rdb, nil
}

func (s *RedisSink) Notify(ctx context.Context, audience string, summary shared.ReservationSummary) error {
	raw, err := encode(audience, summary)
	if err != nil {
		return errs.Wrap(err, "encode notification")
	}
	if err := s.rdb.Publish(ctx, s.channel, raw).Err(); err != nil {
		return errs.Wrapf(err, "publish to %s", s.channel)
	}
	return nil
}

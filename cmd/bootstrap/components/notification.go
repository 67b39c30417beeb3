package components

import (
	"context"
	"log/slog"

	"envelope-ledger/internal/infra/notify"
	"envelope-ledger/internal/infra/repository"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/clock"
	"envelope-ledger/internal/pkg/config"
	"envelope-ledger/internal/pkg/metrics"
	"envelope-ledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var NotificationModule = fx.Module("notification",
	fx.Provide(
		NewNotificationSink,
	),
)

// NewNotificationSink wraps the configured transport in an AsyncSink whose
// worker lives as long as the application.
func NewNotificationSink(
	lc fx.Lifecycle,
	cfg config.Config,
	pool *pgxpool.Pool,
	q *sqlc.Queries,
	clk clock.Clock,
	m *metrics.LedgerMetrics,
	logger *slog.Logger,
) (shared.NotificationSink, error) {
	var next shared.NotificationSink
	switch cfg.Notify.Driver {
	case config.NotifyDriverOutbox:
		next = notify.NewOutboxSink(repository.NewNotificationRepository(q, pool), clk)
	case config.NotifyDriverRedis:
		rdb, err := notify.NewRedisClient(context.Background(), cfg.Notify.RedisAddr)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return rdb.Close()
			},
		})
		next = notify.NewRedisSink(rdb, cfg.Notify.RedisChannel)
	default:
		next = notify.NewLogSink(logger)
	}

	sink := notify.NewAsyncSink(next, cfg.Notify.Driver, cfg.Notify.QueueSize, cfg.Notify.Timeout, logger, m)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sink.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sink.Stop(ctx)
		},
	})
	return sink, nil
}

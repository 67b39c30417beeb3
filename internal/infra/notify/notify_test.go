//go:build unit

package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"envelope-ledger/internal/infra/notify"
	"envelope-ledger/internal/pkg/clock"
	"envelope-ledger/internal/pkg/metrics"
	"envelope-ledger/internal/usecase/shared"
	notifymock "envelope-ledger/tests/mock/notify"
	sharedmock "envelope-ledger/tests/mock/shared"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSummary() shared.ReservationSummary {
	return shared.ReservationSummary{
		ReservationID: uuid.New(),
		PartnerID:     uuid.New(),
		PartnerName:   "SwissLife",
		ProductID:     uuid.New(),
		ProductTitle:  "Autocall Euro Stoxx 50 2031",
		Amount:        400_000,
		RequesterID:   uuid.New(),
		Notes:         "client portfolio A",
	}
}

type decoded struct {
	Kind     string                    `json:"kind"`
	Audience string                    `json:"audience"`
	Summary  shared.ReservationSummary `json:"summary"`
}

func TestRedisSink_Notify(t *testing.T) {
	summary := sampleSummary()

	t.Run("publishes json on the channel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := notifymock.NewMockPublisher(ctrl)

		pub.EXPECT().
			Publish(gomock.Any(), "reservations", gomock.Any()).
			DoAndReturn(func(ctx context.Context, channel string, message any) *goredis.IntCmd {
				raw, ok := message.([]byte)
				require.True(t, ok)
				var got decoded
				require.NoError(t, json.Unmarshal(raw, &got))
				assert.Equal(t, notify.KindReservationCreated, got.Kind)
				assert.Equal(t, "admins", got.Audience)
				assert.Equal(t, summary, got.Summary)

				cmd := goredis.NewIntCmd(ctx)
				cmd.SetVal(1)
				return cmd
			})

		err := notify.NewRedisSink(pub, "reservations").Notify(context.Background(), "admins", summary)
		require.NoError(t, err)
	})

	t.Run("publish error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		pub := notifymock.NewMockPublisher(ctrl)
		down := errors.New("connection refused")

		pub.EXPECT().
			Publish(gomock.Any(), "reservations", gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string, _ any) *goredis.IntCmd {
				cmd := goredis.NewIntCmd(ctx)
				cmd.SetErr(down)
				return cmd
			})

		err := notify.NewRedisSink(pub, "reservations").Notify(context.Background(), "admins", summary)
		require.ErrorIs(t, err, down)
		assert.Contains(t, err.Error(), "publish to reservations")
	})
}

func TestOutboxSink_Notify(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := notifymock.NewMockJobWriter(ctrl)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)
	summary := sampleSummary()

	jobs.EXPECT().
		CreateJob(gomock.Any(), notify.KindReservationCreated, "admins", gomock.Any(), now).
		DoAndReturn(func(_ context.Context, _, _ string, payload []byte, _ time.Time) error {
			var got decoded
			require.NoError(t, json.Unmarshal(payload, &got))
			assert.Equal(t, summary.ReservationID, got.Summary.ReservationID)
			assert.Equal(t, int64(400_000), got.Summary.Amount)
			return nil
		})

	err := notify.NewOutboxSink(jobs, clk).Notify(context.Background(), "admins", summary)
	require.NoError(t, err)
}

func TestLogSink_Notify(t *testing.T) {
	err := notify.NewLogSink(discardLogger()).Notify(context.Background(), "admins", sampleSummary())
	assert.NoError(t, err)
}

func TestAsyncSink(t *testing.T) {
	t.Run("delivers in background", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockNotificationSink(ctrl)
		summary := sampleSummary()
		delivered := make(chan shared.ReservationSummary, 1)

		next.EXPECT().
			Notify(gomock.Any(), "admins", summary).
			DoAndReturn(func(ctx context.Context, _ string, s shared.ReservationSummary) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				delivered <- s
				return nil
			})

		sink := notify.NewAsyncSink(next, "test", 4, time.Second, discardLogger(), metrics.NewUnregistered())
		sink.Start()

		require.NoError(t, sink.Notify(context.Background(), "admins", summary))
		select {
		case got := <-delivered:
			assert.Equal(t, summary.ReservationID, got.ReservationID)
		case <-time.After(2 * time.Second):
			t.Fatal("notification not delivered")
		}
		require.NoError(t, sink.Stop(context.Background()))
	})

	t.Run("caller context cancellation does not drop delivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockNotificationSink(ctrl)
		next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		sink := notify.NewAsyncSink(next, "test", 4, time.Second, discardLogger(), nil)
		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, sink.Notify(ctx, "admins", sampleSummary()))
		cancel()

		sink.Start()
		require.NoError(t, sink.Stop(context.Background()))
	})

	t.Run("failures and panics stay inside the sink", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockNotificationSink(ctrl)
		gomock.InOrder(
			next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down")),
			next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(context.Context, string, shared.ReservationSummary) error { panic("boom") }),
			next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)

		sink := notify.NewAsyncSink(next, "test", 4, time.Second, discardLogger(), metrics.NewUnregistered())
		sink.Start()
		for range 3 {
			require.NoError(t, sink.Notify(context.Background(), "admins", sampleSummary()))
		}
		require.NoError(t, sink.Stop(context.Background()))
	})

	t.Run("full queue drops without blocking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockNotificationSink(ctrl)
		next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		// Not started: the single slot fills and the next notification is dropped.
		sink := notify.NewAsyncSink(next, "test", 1, time.Second, discardLogger(), nil)
		require.NoError(t, sink.Notify(context.Background(), "admins", sampleSummary()))
		assert.ErrorIs(t, sink.Notify(context.Background(), "admins", sampleSummary()), notify.ErrQueueFull)

		sink.Start()
		require.NoError(t, sink.Stop(context.Background()))
	})

	t.Run("closed sink rejects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockNotificationSink(ctrl)

		sink := notify.NewAsyncSink(next, "test", 1, time.Second, discardLogger(), nil)
		sink.Start()
		require.NoError(t, sink.Stop(context.Background()))
		assert.ErrorIs(t, sink.Notify(context.Background(), "admins", sampleSummary()), notify.ErrSinkClosed)
	})

	t.Run("stop gives up when the context ends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := sharedmock.NewMockNotificationSink(ctrl)
		release := make(chan struct{})
		next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, string, shared.ReservationSummary) error {
				<-release
				return nil
			})

		sink := notify.NewAsyncSink(next, "test", 1, time.Minute, discardLogger(), nil)
		sink.Start()
		require.NoError(t, sink.Notify(context.Background(), "admins", sampleSummary()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, sink.Stop(ctx), context.DeadlineExceeded)

		close(release)
		require.NoError(t, sink.Stop(context.Background()))
	})
}

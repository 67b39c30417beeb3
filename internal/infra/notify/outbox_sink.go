package notify

import (
	"context"
	"time"

	"envelope-ledger/internal/pkg/clock"
	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/usecase/shared"
)

type JobWriter interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

// OutboxSink stores notifications in notification_jobs for an external relay.
type OutboxSink struct {
	jobs  JobWriter
	clock clock.Clock
}

func NewOutboxSink(jobs JobWriter, clk clock.Clock) *OutboxSink {
	return &OutboxSink{jobs: jobs, clock: clk}
}

func (s *OutboxSink) Notify(ctx context.Context, audience string, summary shared.ReservationSummary) error {
	raw, err := encode(audience, summary)
	if err != nil {
		return errs.Wrap(err, "encode notification")
	}
	return s.jobs.CreateJob(ctx, KindReservationCreated, audience, raw, s.clock.Now())
}

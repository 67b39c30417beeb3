package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/pkg/metrics"
	"envelope-ledger/internal/usecase/shared"
)

var (
	ErrQueueFull  = errs.New("notification queue full")
	ErrSinkClosed = errs.New("notification sink closed")
)

type delivery struct {
	audience string
	summary  shared.ReservationSummary
}

// AsyncSink decouples delivery from the request: Notify only enqueues, and a
// single worker hands notifications to the wrapped sink with its own deadline.
// Failures are logged and counted here and never reach the caller's request.
type AsyncSink struct {
	next    shared.NotificationSink
	name    string
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.LedgerMetrics

	mu     sync.RWMutex
	closed bool
	queue  chan delivery
	done   chan struct{}
}

func NewAsyncSink(
	next shared.NotificationSink,
	name string,
	queueSize int,
	timeout time.Duration,
	logger *slog.Logger,
	m *metrics.LedgerMetrics,
) *AsyncSink {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &AsyncSink{
		next:    next,
		name:    name,
		timeout: timeout,
		logger:  logger,
		metrics: m,
		queue:   make(chan delivery, queueSize),
		done:    make(chan struct{}),
	}
}

func (s *AsyncSink) Start() {
	go s.run()
}

func (s *AsyncSink) Notify(_ context.Context, audience string, summary shared.ReservationSummary) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.metrics.IncNotificationFailure(s.name)
		return ErrSinkClosed
	}

	select {
	case s.queue <- delivery{audience: audience, summary: summary}:
		return nil
	default:
		s.metrics.IncNotificationFailure(s.name)
		s.logger.Warn("notification dropped",
			slog.String("sink", s.name),
			slog.String("reservation_id", summary.ReservationID.String()))
		return ErrQueueFull
	}
}

// Stop stops accepting work and waits for queued notifications until ctx ends.
func (s *AsyncSink) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "drain notification queue")
	}
}

func (s *AsyncSink) run() {
	defer close(s.done)
	for d := range s.queue {
		s.deliver(d)
	}
}

func (s *AsyncSink) deliver(d delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := s.safeNotify(ctx, d)
	if err == nil {
		return
	}
	s.metrics.IncNotificationFailure(s.name)
	s.logger.Error("notification delivery failed",
		slog.String("sink", s.name),
		slog.String("audience", d.audience),
		slog.String("reservation_id", d.summary.ReservationID.String()),
		slog.String("error", err.Error()))
}

func (s *AsyncSink) safeNotify(ctx context.Context, d delivery) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notification sink panic: %v", r)
		}
	}()
	return s.next.Notify(ctx, d.audience, d.summary)
}

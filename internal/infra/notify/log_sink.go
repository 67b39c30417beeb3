package notify

import (
	"context"
	"log/slog"

	"envelope-ledger/internal/usecase/shared"
)

// LogSink writes notifications to the application log. It is the default
// for local runs where no broker is available.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(ctx context.Context, audience string, summary shared.ReservationSummary) error {
	s.logger.InfoContext(ctx, "reservation notification",
		slog.String("audience", audience),
		slog.String("reservation_id", summary.ReservationID.String()),
		slog.String("partner", summary.PartnerName),
		slog.String("product", summary.ProductTitle),
		slog.Int64("amount", summary.Amount),
		slog.String("requester_id", summary.RequesterID.String()))
	return nil
}

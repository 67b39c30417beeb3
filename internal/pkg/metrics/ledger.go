package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeAccepted     = "accepted"
	OutcomeReplayed     = "replayed"
	OutcomeInsufficient = "insufficient_capacity"
	OutcomeInvalid      = "invalid"
	OutcomeBusy         = "busy"
	OutcomeNotFound     = "not_found"
	OutcomeConflict     = "conflict"
	OutcomeError        = "error"
)

type LedgerMetrics struct {
	reservations         *prometheus.CounterVec
	cancellations        *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	operationSeconds     *prometheus.HistogramVec
}

var (
	ledgerOnce     sync.Once
	ledgerRegistry *LedgerMetrics
)

// Ledger returns the process-wide collectors, registered once on the default registry.
func Ledger() *LedgerMetrics {
	ledgerOnce.Do(func() {
		ledgerRegistry = newLedgerMetrics()
		prometheus.MustRegister(
			ledgerRegistry.reservations,
			ledgerRegistry.cancellations,
			ledgerRegistry.notificationFailures,
			ledgerRegistry.operationSeconds,
		)
	})
	return ledgerRegistry
}

// NewUnregistered is for tests that must not touch the default registry.
func NewUnregistered() *LedgerMetrics {
	return newLedgerMetrics()
}

func newLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_reservations_total",
			Help: "Reservation attempts by outcome.",
		}, []string{"outcome"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_cancellations_total",
			Help: "Cancellation attempts by outcome.",
		}, []string{"outcome"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_notification_failures_total",
			Help: "Failed or dropped reservation notifications by sink.",
		}, []string{"sink"}),
		operationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_operation_seconds",
			Help:    "Latency of ledger write operations including partner lock wait.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *LedgerMetrics) ObserveReservation(outcome string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(outcome).Inc()
}

func (m *LedgerMetrics) ObserveCancellation(outcome string) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(outcome).Inc()
}

func (m *LedgerMetrics) IncNotificationFailure(sink string) {
	if m == nil {
		return
	}
	if sink == "" {
		sink = "unknown"
	}
	m.notificationFailures.WithLabelValues(sink).Inc()
}

func (m *LedgerMetrics) ObserveOperation(operation string, started time.Time) {
	if m == nil {
		return
	}
	m.operationSeconds.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

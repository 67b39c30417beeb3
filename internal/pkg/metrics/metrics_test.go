//go:build unit

package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLedgerMetrics(t *testing.T) {
	m := NewUnregistered()

	m.ObserveReservation(OutcomeAccepted)
	m.ObserveReservation(OutcomeAccepted)
	m.ObserveReservation(OutcomeInsufficient)
	m.ObserveCancellation(OutcomeConflict)
	m.IncNotificationFailure("")
	m.ObserveOperation("reserve", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservations.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reservations.WithLabelValues(OutcomeInsufficient)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancellations.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationFailures.WithLabelValues("unknown")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.operationSeconds))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var lm *LedgerMetrics
	var hm *HTTPMetrics

	assert.NotPanics(t, func() {
		lm.ObserveReservation(OutcomeAccepted)
		lm.ObserveCancellation(OutcomeAccepted)
		lm.IncNotificationFailure("redis")
		lm.ObserveOperation("cancel", time.Now())
		hm.Observe(http.MethodGet, "/health", http.StatusOK, time.Now())
	})
}

func TestHTTPMetrics(t *testing.T) {
	m := NewUnregisteredHTTP()

	m.Observe(http.MethodPost, "/api/reservations", http.StatusCreated, time.Now())
	m.Observe(http.MethodGet, "", http.StatusNotFound, time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "/api/reservations", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestRegisteredOnce(t *testing.T) {
	assert.Same(t, Ledger(), Ledger())
	assert.Same(t, HTTP(), HTTP())
}

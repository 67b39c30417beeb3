package bootstrap

import (
	"envelope-ledger/internal/pkg/config"
	"envelope-ledger/internal/pkg/metrics"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewLedgerMetrics,
		NewHTTPMetrics,
	),
)

// Nil collectors are no-ops, so METRICS_ENABLED=false needs no other wiring.
func NewLedgerMetrics(cfg config.Config) *metrics.LedgerMetrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.Ledger()
}

func NewHTTPMetrics(cfg config.Config) *metrics.HTTPMetrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.HTTP()
}

package bootstrap

import (
	"envelope-ledger/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.NotificationModule,
	components.UseCaseModule,
	components.HandlerModule,
)

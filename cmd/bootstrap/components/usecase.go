package components

import (
	"envelope-ledger/internal/pkg/clock"
	"envelope-ledger/internal/pkg/config"
	"envelope-ledger/internal/usecase"
	"envelope-ledger/internal/usecase/commands"
	"envelope-ledger/internal/usecase/ledger"
	"envelope-ledger/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseLedgerModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) ledger.Options {
		return ledger.Options{LockTimeout: cfg.Ledger.LockTimeout}
	},
	func(cfg config.Config) commands.NotifyOptions {
		return commands.NotifyOptions{Audience: cfg.Notify.Audience}
	},
)

var usecaseLedgerModule = fx.Module("usecase/ledger",
	fx.Provide(
		ledger.NewLedger,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewCapacityCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewCapacityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

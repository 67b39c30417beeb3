package components

import (
	"context"
	"log/slog"

	"envelope-ledger/internal/infra/memstore"
	"envelope-ledger/internal/infra/readstore"
	"envelope-ledger/internal/infra/seed"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/infra/uow"
	"envelope-ledger/internal/pkg/config"
	"envelope-ledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSQLQueries,
		NewStores,
	),
)

// Stores are the storage-neutral ports backed by the configured driver.
type Stores struct {
	fx.Out

	UnitOfWork   shared.UnitOfWork
	Reservations shared.ReservationReader
	Capacities   shared.CapacityReader
	Catalog      shared.PartnerCatalog
}

func NewStores(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, q *sqlc.Queries, logger *slog.Logger) (Stores, error) {
	catalog, err := loadCatalog(cfg.Store.SeedFile)
	if err != nil {
		return Stores{}, err
	}

	if cfg.Store.Driver == config.StoreDriverMemory {
		store := memstore.NewSeededStore(logger, catalog)
		logger.Info("using in-memory store", slog.Int("partners", len(catalog.Partners)))
		return Stores{
			UnitOfWork:   memstore.NewUoW(store),
			Reservations: store,
			Capacities:   store,
			Catalog:      store,
		}, nil
	}

	if len(catalog.Partners) > 0 {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := seed.ApplyPostgres(ctx, pool, q, catalog); err != nil {
					return err
				}
				logger.Info("catalog seed applied", slog.Int("partners", len(catalog.Partners)))
				return nil
			},
		})
	}

	return Stores{
		UnitOfWork:   uow.NewPostgresUoW(pool, q),
		Reservations: readstore.NewReservationReadStore(q, pool),
		Capacities:   readstore.NewCapacityReadStore(q, pool),
		Catalog:      readstore.NewCatalogReadStore(q, pool),
	}, nil
}

func loadCatalog(path string) (*seed.Catalog, error) {
	if path == "" {
		return &seed.Catalog{}, nil
	}
	return seed.LoadFile(path)
}

func NewSQLQueries() *sqlc.Queries {
	return sqlc.New()
}

package seed

import (
	"context"

	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SeedQueries interface {
	UpsertPartner(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertPartnerParams) error
	UpsertProduct(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertProductParams) error
	EnsurePartnerCapacity(ctx context.Context, db sqlc.DBTX, partnerID uuid.UUID) error
}

type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ApplyPostgres upserts the catalog in one transaction. Envelopes are only
// written for partners that do not exist yet.
func ApplyPostgres(ctx context.Context, db TxBeginner, q SeedQueries, c *Catalog) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errs.Wrap(err, "begin seed transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, pe := range c.Partners {
		p := pe.Partner()
		if err := q.UpsertPartner(ctx, tx, sqlc.UpsertPartnerParams{
			ID:       p.ID,
			Name:     p.Name,
			Envelope: p.Envelope.Minor(),
			Active:   p.Active,
		}); err != nil {
			return errs.Wrapf(err, "upsert partner %s", p.ID)
		}
		if err := q.EnsurePartnerCapacity(ctx, tx, p.ID); err != nil {
			return errs.Wrapf(err, "ensure capacity row for %s", p.ID)
		}
		for _, pre := range pe.Products {
			pr := pre.Product(p.ID)
			if err := q.UpsertProduct(ctx, tx, sqlc.UpsertProductParams{
				ID:        pr.ID,
				PartnerID: pr.PartnerID,
				Category:  pr.Category,
				Title:     pr.Title,
			}); err != nil {
				return errs.Wrapf(err, "upsert product %s", pr.ID)
			}
		}
	}

	return errs.Wrap(tx.Commit(ctx), "commit seed transaction")
}

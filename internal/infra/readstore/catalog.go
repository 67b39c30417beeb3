package readstore

import (
	"context"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/infra"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CatalogReadQueries interface {
	GetPartner(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetPartnerRow, error)
	GetProduct(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetProductRow, error)
}

// CatalogReadStore is the PostgreSQL PartnerCatalog.
type CatalogReadStore struct {
	queries CatalogReadQueries
	db      sqlc.DBTX
}

func NewCatalogReadStore(queries CatalogReadQueries, db sqlc.DBTX) *CatalogReadStore {
	return &CatalogReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *CatalogReadStore) GetPartner(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	row, err := s.queries.GetPartner(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, partner.ErrPartnerNotFound
		}
		return nil, infra.WrapRepoErr("failed to find partner", err)
	}
	return &partner.Partner{
		ID:       row.ID,
		Name:     row.Name,
		Envelope: capacity.Amount(row.Envelope),
		Active:   row.Active,
	}, nil
}

func (s *CatalogReadStore) GetProduct(ctx context.Context, id uuid.UUID) (*partner.Product, error) {
	row, err := s.queries.GetProduct(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, partner.ErrProductNotFound
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return &partner.Product{
		ID:        row.ID,
		PartnerID: row.PartnerID,
		Category:  row.Category,
		Title:     row.Title,
	}, nil
}

package repository

import (
	"context"
	"log/slog"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/infra"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CapacityWriteQueries interface {
	LockPartnerCapacity(ctx context.Context, db sqlc.DBTX, partnerID uuid.UUID) (sqlc.LockPartnerCapacityRow, error)
	UpdateReserved(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservedParams) (int64, error)
	UpdatePartnerEnvelope(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePartnerEnvelopeParams) (int64, error)
}

// CapacityRepository must be bound to a transaction that already holds the
// partner's capacity row lock; the re-read under FOR UPDATE is then free.
type CapacityRepository struct {
	queries CapacityWriteQueries
	db      sqlc.DBTX
}

func NewCapacityRepository(queries CapacityWriteQueries, db sqlc.DBTX) *CapacityRepository {
	return &CapacityRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CapacityRepository) load(ctx context.Context, partnerID uuid.UUID) (*capacity.Capacity, error) {
	row, err := r.queries.LockPartnerCapacity(ctx, r.db, partnerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, capacity.ErrUnknownPartner
		}
		return nil, infra.WrapRepoErr("failed to lock partner capacity", err)
	}
	return capacity.Reconstruct(row.PartnerID, capacity.Amount(row.Envelope), capacity.Amount(row.Reserved)), nil
}

func (r *CapacityRepository) saveReserved(ctx context.Context, c *capacity.Capacity) error {
	n, err := r.queries.UpdateReserved(ctx, r.db, sqlc.UpdateReservedParams{
		PartnerID: c.PartnerID(),
		Reserved:  c.Reserved().Minor(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update reserved amount", err)
	}
	if n == 0 {
		return capacity.ErrUnknownPartner
	}
	return nil
}

func (r *CapacityRepository) TryCommit(ctx context.Context, partnerID uuid.UUID, amount capacity.Amount) (capacity.CommitToken, error) {
	c, err := r.load(ctx, partnerID)
	if err != nil {
		return capacity.CommitToken{}, err
	}
	token, err := c.Commit(amount)
	if err != nil {
		return capacity.CommitToken{}, err
	}
	if err := r.saveReserved(ctx, c); err != nil {
		return capacity.CommitToken{}, err
	}
	return token, nil
}

func (r *CapacityRepository) Release(ctx context.Context, partnerID uuid.UUID, amount capacity.Amount) error {
	c, err := r.load(ctx, partnerID)
	if err != nil {
		return err
	}
	before := c.Reserved()
	if c.Release(amount) {
		slog.WarnContext(ctx, "release clamped at zero",
			slog.String("partner_id", partnerID.String()),
			slog.Int64("reserved", before.Minor()),
			slog.Int64("amount", amount.Minor()))
	}
	return r.saveReserved(ctx, c)
}

func (r *CapacityRepository) SetEnvelope(ctx context.Context, partnerID uuid.UUID, newEnvelope capacity.Amount) (capacity.Snapshot, error) {
	c, err := r.load(ctx, partnerID)
	if err != nil {
		return capacity.Snapshot{}, err
	}
	if err := c.Resize(newEnvelope); err != nil {
		return capacity.Snapshot{}, err
	}
	n, err := r.queries.UpdatePartnerEnvelope(ctx, r.db, sqlc.UpdatePartnerEnvelopeParams{
		ID:       partnerID,
		Envelope: c.Envelope().Minor(),
	})
	if err != nil {
		return capacity.Snapshot{}, infra.WrapRepoErr("failed to update partner envelope", err)
	}
	if n == 0 {
		return capacity.Snapshot{}, capacity.ErrUnknownPartner
	}
	return c.Snapshot(), nil
}

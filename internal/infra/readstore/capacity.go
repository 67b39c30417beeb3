package readstore

import (
	"context"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/infra"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CapacityReadQueries interface {
	GetPartnerCapacity(ctx context.Context, db sqlc.DBTX, partnerID uuid.UUID) (sqlc.GetPartnerCapacityRow, error)
	SumActiveReservations(ctx context.Context, db sqlc.DBTX, partnerID uuid.UUID) (sqlc.SumActiveReservationsRow, error)
}

// TxBeginner opens the repeatable-read snapshot used by Audit.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type CapacityReadStore struct {
	queries CapacityReadQueries
	db      sqlc.DBTX
}

func NewCapacityReadStore(queries CapacityReadQueries, db sqlc.DBTX) *CapacityReadStore {
	return &CapacityReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *CapacityReadStore) Snapshot(ctx context.Context, partnerID uuid.UUID) (capacity.Snapshot, error) {
	return s.snapshot(ctx, s.db, partnerID)
}

func (s *CapacityReadStore) snapshot(ctx context.Context, db sqlc.DBTX, partnerID uuid.UUID) (capacity.Snapshot, error) {
	row, err := s.queries.GetPartnerCapacity(ctx, db, partnerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return capacity.Snapshot{}, capacity.ErrUnknownPartner
		}
		return capacity.Snapshot{}, infra.WrapRepoErr("failed to read partner capacity", err)
	}
	return capacity.Reconstruct(row.PartnerID, capacity.Amount(row.Envelope), capacity.Amount(row.Reserved)).Snapshot(), nil
}

// Audit reads the counter and the active sum from one snapshot so a commit
// landing between the two queries cannot show up as drift.
func (s *CapacityReadStore) Audit(ctx context.Context, partnerID uuid.UUID) (capacity.Audit, error) {
	beginner, ok := s.db.(TxBeginner)
	if !ok {
		return s.audit(ctx, s.db, partnerID)
	}

	tx, err := beginner.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return capacity.Audit{}, infra.WrapRepoErr("failed to begin audit snapshot", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return s.audit(ctx, tx, partnerID)
}

func (s *CapacityReadStore) audit(ctx context.Context, db sqlc.DBTX, partnerID uuid.UUID) (capacity.Audit, error) {
	snap, err := s.snapshot(ctx, db, partnerID)
	if err != nil {
		return capacity.Audit{}, err
	}
	sum, err := s.queries.SumActiveReservations(ctx, db, partnerID)
	if err != nil {
		return capacity.Audit{}, infra.WrapRepoErr("failed to sum active reservations", err)
	}
	return capacity.Audit{
		PartnerID:   partnerID,
		Envelope:    snap.Envelope,
		Reserved:    snap.Reserved,
		ActiveTotal: capacity.Amount(sum.Total),
		ActiveCount: int(sum.ActiveCount),
	}, nil
}

package readstore

import (
	"context"

	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/infra"
	"envelope-ledger/internal/infra/repository/converter"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadQueries interface {
	GetReservation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	GetReservationByIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetReservationByIdempotencyKeyParams) (sqlc.Reservations, error)
	ListReservationsByPartner(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByPartnerParams) ([]sqlc.Reservations, error)
	ListReservationsByProduct(ctx context.Context, db sqlc.DBTX, productID uuid.UUID) ([]sqlc.Reservations, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservation(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return converter.ReservationFromRow(row)
}

func (r *ReservationReadStore) FindByIdempotencyKey(ctx context.Context, requesterID uuid.UUID, key reservation.IdempotencyKey) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByIdempotencyKey(ctx, r.db, sqlc.GetReservationByIdempotencyKeyParams{
		RequesterID:    requesterID,
		IdempotencyKey: pgconv.StringToPgtype(key.String()),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find reservation by idempotency key", err)
	}

	return converter.ReservationFromRow(row)
}

func (r *ReservationReadStore) ListByPartner(ctx context.Context, partnerID uuid.UUID, status *reservation.Status) ([]*reservation.Reservation, error) {
	params := sqlc.ListReservationsByPartnerParams{
		PartnerID: partnerID,
		Status:    pgtype.Text{Valid: false},
	}
	if status != nil {
		params.Status = pgconv.StringToPgtype(status.String())
	}

	rows, err := r.queries.ListReservationsByPartner(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by partner", err)
	}

	return converter.ReservationsFromRows(rows)
}

func (r *ReservationReadStore) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListReservationsByProduct(ctx, r.db, productID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by product", err)
	}

	return converter.ReservationsFromRows(rows)
}

package repository

import (
	"context"

	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/infra"
	"envelope-ledger/internal/infra/repository/converter"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/pkg/pgconv"
	"envelope-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

const idempotencyConstraint = "uq_reservations_requester_idempotency"

type ReservationWriteQueries interface {
	InsertReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertReservationParams) error
	GetReservationForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	GetReservationByIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.GetReservationByIdempotencyKeyParams) (sqlc.Reservations, error)
	CancelReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelReservationParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	params := converter.ReservationToInsertParams(res)

	if err := r.queries.InsertReservation(ctx, r.db, params); err != nil {
		wrapped := infra.WrapRepoErr("failed to insert reservation", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) && infra.ConstraintName(err) == idempotencyConstraint {
			return errs.Mark(wrapped, shared.ErrDuplicateIdempotencyKey)
		}
		return wrapped
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return converter.ReservationFromRow(row)
}

func (r *ReservationRepository) FindByIdempotencyKey(ctx context.Context, requesterID uuid.UUID, key reservation.IdempotencyKey) (*reservation.Reservation, error) {
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

func (r *ReservationRepository) MarkCancelled(ctx context.Context, res *reservation.Reservation) error {
	n, err := r.queries.CancelReservation(ctx, r.db, converter.ReservationToCancelParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if n == 0 {
		return reservation.ErrAlreadyCancelled
	}
	return nil
}

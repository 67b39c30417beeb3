package converter

import (
	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/reservation"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInsertParams(res *reservation.Reservation) sqlc.InsertReservationParams {
	params := sqlc.InsertReservationParams{
		ID:          res.ID(),
		ProductID:   res.ProductID(),
		PartnerID:   res.PartnerID(),
		RequesterID: res.RequesterID(),
		Amount:      res.Amount().Minor(),
		Notes:       res.Note().String(),
		Status:      res.Status().String(),
		CreatedAt:   pgconv.TimeToPgtype(res.CreatedAt()),
	}

	if key := res.IdempotencyKey(); key != nil {
		params.IdempotencyKey = pgconv.StringToPgtype(key.String())
	} else {
		params.IdempotencyKey = pgtype.Text{Valid: false}
	}

	return params
}

func ReservationToCancelParams(res *reservation.Reservation) sqlc.CancelReservationParams {
	return sqlc.CancelReservationParams{
		ID:          res.ID(),
		CancelledAt: pgconv.TimePtrToPgtype(res.CancelledAt()),
		CancelledBy: pgconv.UUIDPtrToPgtype(res.CancelledBy()),
	}
}

// ReservationFromRow rebuilds the aggregate from a stored row. A row that no
// longer passes the value-object checks is reported as an error.
func ReservationFromRow(row sqlc.Reservations) (*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(row.Notes)
	if err != nil {
		return nil, err
	}

	var key *reservation.IdempotencyKey
	if row.IdempotencyKey.Valid {
		k, kerr := reservation.NewIdempotencyKey(row.IdempotencyKey.String)
		if kerr != nil {
			return nil, kerr
		}
		key = &k
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.ProductID,
		row.PartnerID,
		row.RequesterID,
		capacity.Amount(row.Amount),
		note,
		status,
		key,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.CancelledAt),
		pgconv.UUIDPtrFromPgtype(row.CancelledBy),
	), nil
}

func ReservationsFromRows(rows []sqlc.Reservations) ([]*reservation.Reservation, error) {
	out := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		r, err := ReservationFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

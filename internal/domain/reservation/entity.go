package reservation

import (
	"errors"
	"time"

	"envelope-ledger/internal/domain/capacity"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrAlreadyCancelled     = errors.New("reservation is already cancelled")
	ErrInvalidStatus        = errors.New("invalid reservation status")
	ErrIdempotencyKeyReused = errors.New("idempotency key reused with different parameters")
)

// Reservation is a broker's claim on part of a partner envelope.
// It is created Active and may only move to Cancelled; rows are never deleted.
type Reservation struct {
	id             uuid.UUID
	productID      uuid.UUID
	partnerID      uuid.UUID
	requesterID    uuid.UUID
	amount         capacity.Amount
	note           Note
	status         Status
	idempotencyKey *IdempotencyKey
	createdAt      time.Time
	cancelledAt    *time.Time
	cancelledBy    *uuid.UUID
}

func NewReservation(
	productID, partnerID, requesterID uuid.UUID,
	amount capacity.Amount,
	note Note,
	key *IdempotencyKey,
	now time.Time,
) (*Reservation, error) {
	if amount <= 0 {
		return nil, capacity.ErrInvalidAmount
	}
	return &Reservation{
		id:             uuid.New(),
		productID:      productID,
		partnerID:      partnerID,
		requesterID:    requesterID,
		amount:         amount,
		note:           note,
		status:         StatusActive,
		idempotencyKey: key,
		createdAt:      now,
	}, nil
}

func ReconstructReservation(
	id, productID, partnerID, requesterID uuid.UUID,
	amount capacity.Amount,
	note Note,
	status Status,
	key *IdempotencyKey,
	createdAt time.Time,
	cancelledAt *time.Time,
	cancelledBy *uuid.UUID,
) *Reservation {
	return &Reservation{
		id:             id,
		productID:      productID,
		partnerID:      partnerID,
		requesterID:    requesterID,
		amount:         amount,
		note:           note,
		status:         status,
		idempotencyKey: key,
		createdAt:      createdAt,
		cancelledAt:    cancelledAt,
		cancelledBy:    cancelledBy,
	}
}

func (r *Reservation) Cancel(actorID uuid.UUID, now time.Time) error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	r.status = StatusCancelled
	r.cancelledAt = &now
	r.cancelledBy = &actorID
	return nil
}

// SameRequest reports whether a replayed request carries the parameters this
// reservation was created with.
func (r *Reservation) SameRequest(productID, partnerID uuid.UUID, amount capacity.Amount, note Note) bool {
	return r.productID == productID &&
		r.partnerID == partnerID &&
		r.amount == amount &&
		r.note == note
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) ID() uuid.UUID                   { return r.id }
func (r *Reservation) ProductID() uuid.UUID            { return r.productID }
func (r *Reservation) PartnerID() uuid.UUID            { return r.partnerID }
func (r *Reservation) RequesterID() uuid.UUID          { return r.requesterID }
func (r *Reservation) Amount() capacity.Amount         { return r.amount }
func (r *Reservation) Note() Note                      { return r.note }
func (r *Reservation) Status() Status                  { return r.status }
func (r *Reservation) IdempotencyKey() *IdempotencyKey { return r.idempotencyKey }
func (r *Reservation) CreatedAt() time.Time            { return r.createdAt }
func (r *Reservation) CancelledAt() *time.Time         { return r.cancelledAt }
func (r *Reservation) CancelledBy() *uuid.UUID         { return r.cancelledBy }

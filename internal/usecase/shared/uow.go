package shared

import (
	"context"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrLockTimeout is marked on errors caused by waiting too long for a partner lock.
	ErrLockTimeout = errs.New("partner lock wait timed out")
	// ErrDuplicateIdempotencyKey is returned by a commit that lost an idempotency key race.
	ErrDuplicateIdempotencyKey = errs.New("duplicate idempotency key")
)

type UnitOfWork interface {
	// WithinPartner runs fn while holding partnerID's admission lock. Writes made
	// through tx become visible atomically when fn returns nil, and are discarded otherwise.
	// Returns capacity.ErrUnknownPartner when the partner has no capacity record.
	WithinPartner(ctx context.Context, partnerID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Capacity() CapacityStore
	Reservations() ReservationRepository
}

// CapacityStore is the only writer of a partner's reserved amount.
type CapacityStore interface {
	TryCommit(ctx context.Context, partnerID uuid.UUID, amount capacity.Amount) (capacity.CommitToken, error)
	// Release clamps at zero and logs when the release would go negative.
	Release(ctx context.Context, partnerID uuid.UUID, amount capacity.Amount) error
	SetEnvelope(ctx context.Context, partnerID uuid.UUID, newEnvelope capacity.Amount) (capacity.Snapshot, error)
}

type ReservationRepository interface {
	Insert(ctx context.Context, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByIdempotencyKey(ctx context.Context, requesterID uuid.UUID, key reservation.IdempotencyKey) (*reservation.Reservation, error)
	MarkCancelled(ctx context.Context, r *reservation.Reservation) error
}

package memstore

import (
	"context"
	"errors"
	"log/slog"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/pkg/errs"
	"envelope-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var errPartnerNotLocked = errs.New("partner is not locked by this unit of work")

type UoW struct {
	store *Store
}

func NewUoW(store *Store) shared.UnitOfWork {
	return &UoW{store: store}
}

func (u *UoW) WithinPartner(ctx context.Context, partnerID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	lock, ok := u.store.partnerLock(partnerID)
	if !ok {
		return capacity.ErrUnknownPartner
	}
	if err := lock.Acquire(ctx, 1); err != nil {
		err = errs.Wrap(err, "acquire partner lock")
		if errors.Is(err, context.DeadlineExceeded) {
			return errs.Mark(err, shared.ErrLockTimeout)
		}
		return err
	}
	defer lock.Release(1)

	tx := u.begin(partnerID)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return u.store.apply(tx)
}

func (u *UoW) begin(partnerID uuid.UUID) *memTx {
	u.store.mu.RLock()
	st := u.store.partners[partnerID]
	c := capacity.Reconstruct(partnerID, st.envelope, st.reserved)
	u.store.mu.RUnlock()

	return &memTx{
		store:     u.store,
		partnerID: partnerID,
		capacity:  c,
		updates:   make(map[uuid.UUID]*reservation.Reservation),
	}
}

// memTx buffers writes until the unit of work body succeeds.
type memTx struct {
	store     *Store
	partnerID uuid.UUID
	capacity  *capacity.Capacity
	inserts   []*reservation.Reservation
	updates   map[uuid.UUID]*reservation.Reservation
}

func (t *memTx) Capacity() shared.CapacityStore             { return (*capacityTx)(t) }
func (t *memTx) Reservations() shared.ReservationRepository { return (*reservationTx)(t) }

type capacityTx memTx

func (c *capacityTx) TryCommit(_ context.Context, partnerID uuid.UUID, amount capacity.Amount) (capacity.CommitToken, error) {
	if partnerID != c.partnerID {
		return capacity.CommitToken{}, errPartnerNotLocked
	}
	return c.capacity.Commit(amount)
}

func (c *capacityTx) Release(_ context.Context, partnerID uuid.UUID, amount capacity.Amount) error {
	if partnerID != c.partnerID {
		return errPartnerNotLocked
	}
	before := c.capacity.Reserved()
	if c.capacity.Release(amount) {
		c.store.logger.Warn("release clamped at zero",
			slog.String("partner_id", partnerID.String()),
			slog.Int64("reserved", before.Minor()),
			slog.Int64("amount", amount.Minor()))
	}
	return nil
}

func (c *capacityTx) SetEnvelope(_ context.Context, partnerID uuid.UUID, newEnvelope capacity.Amount) (capacity.Snapshot, error) {
	if partnerID != c.partnerID {
		return capacity.Snapshot{}, errPartnerNotLocked
	}
	if err := c.capacity.Resize(newEnvelope); err != nil {
		return capacity.Snapshot{}, err
	}
	return c.capacity.Snapshot(), nil
}

type reservationTx memTx

func (r *reservationTx) Insert(_ context.Context, res *reservation.Reservation) error {
	if res.PartnerID() != r.partnerID {
		return errPartnerNotLocked
	}
	if key := res.IdempotencyKey(); key != nil {
		for _, pending := range r.inserts {
			if pk := pending.IdempotencyKey(); pk != nil && pk.String() == key.String() && pending.RequesterID() == res.RequesterID() {
				return shared.ErrDuplicateIdempotencyKey
			}
		}
	}
	r.inserts = append(r.inserts, clone(res))
	return nil
}

func (r *reservationTx) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if res, ok := r.updates[id]; ok {
		return clone(res), nil
	}
	for _, res := range r.inserts {
		if res.ID() == id {
			return clone(res), nil
		}
	}
	return r.store.FindByID(ctx, id)
}

func (r *reservationTx) FindByIdempotencyKey(ctx context.Context, requesterID uuid.UUID, key reservation.IdempotencyKey) (*reservation.Reservation, error) {
	for _, res := range r.inserts {
		if pk := res.IdempotencyKey(); pk != nil && pk.String() == key.String() && res.RequesterID() == requesterID {
			return clone(res), nil
		}
	}
	return r.store.FindByIdempotencyKey(ctx, requesterID, key)
}

func (r *reservationTx) MarkCancelled(_ context.Context, res *reservation.Reservation) error {
	if res.PartnerID() != r.partnerID {
		return errPartnerNotLocked
	}
	r.updates[res.ID()] = clone(res)
	return nil
}

// apply publishes a successful unit of work. Nothing is written if an
// idempotency key collides with a reservation committed by another partner's lock.
func (s *Store) apply(t *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, res := range t.inserts {
		if key := res.IdempotencyKey(); key != nil {
			if _, taken := s.byKey[keyIndex{requesterID: res.RequesterID(), key: key.String()}]; taken {
				return shared.ErrDuplicateIdempotencyKey
			}
		}
	}

	st := s.partners[t.partnerID]
	st.envelope = t.capacity.Envelope()
	st.reserved = t.capacity.Reserved()

	for _, res := range t.inserts {
		s.reservations[res.ID()] = res
		s.byPartner[res.PartnerID()] = append(s.byPartner[res.PartnerID()], res.ID())
		s.byProduct[res.ProductID()] = append(s.byProduct[res.ProductID()], res.ID())
		if key := res.IdempotencyKey(); key != nil {
			s.byKey[keyIndex{requesterID: res.RequesterID(), key: key.String()}] = res.ID()
		}
	}
	for id, res := range t.updates {
		s.reservations[id] = res
	}
	return nil
}

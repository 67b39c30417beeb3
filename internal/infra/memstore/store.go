// Package memstore is the in-process back-end for the ledger ports. Each partner
// has its own admission semaphore; committed state lives behind one short RWMutex
// so readers never wait on admission.
package memstore

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/domain/reservation"
	"envelope-ledger/internal/infra/seed"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

type keyIndex struct {
	requesterID uuid.UUID
	key         string
}

type partnerState struct {
	info     partner.Partner
	envelope capacity.Amount
	reserved capacity.Amount
	lock     *semaphore.Weighted
}

type Store struct {
	logger *slog.Logger

	mu           sync.RWMutex
	partners     map[uuid.UUID]*partnerState
	products     map[uuid.UUID]partner.Product
	reservations map[uuid.UUID]*reservation.Reservation
	byKey        map[keyIndex]uuid.UUID
	byPartner    map[uuid.UUID][]uuid.UUID
	byProduct    map[uuid.UUID][]uuid.UUID
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		logger:       logger,
		partners:     make(map[uuid.UUID]*partnerState),
		products:     make(map[uuid.UUID]partner.Product),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		byKey:        make(map[keyIndex]uuid.UUID),
		byPartner:    make(map[uuid.UUID][]uuid.UUID),
		byProduct:    make(map[uuid.UUID][]uuid.UUID),
	}
}

// NewSeededStore loads every partner and product of c.
func NewSeededStore(logger *slog.Logger, c *seed.Catalog) *Store {
	s := NewStore(logger)
	for _, pe := range c.Partners {
		s.PutPartner(pe.Partner())
		for _, pr := range pe.Products {
			s.PutProduct(pr.Product(pe.ID))
		}
	}
	return s
}

// PutPartner registers or updates catalog data. The envelope is only taken
// for new partners; later resizes go through the ledger.
func (s *Store) PutPartner(p partner.Partner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.partners[p.ID]; ok {
		st.info = p
		return
	}
	s.partners[p.ID] = &partnerState{
		info:     p,
		envelope: p.Envelope,
		lock:     semaphore.NewWeighted(1),
	}
}

func (s *Store) PutProduct(p partner.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *Store) GetPartner(_ context.Context, id uuid.UUID) (*partner.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.partners[id]
	if !ok {
		return nil, partner.ErrPartnerNotFound
	}
	p := st.info
	p.Envelope = st.envelope
	return &p, nil
}

func (s *Store) GetProduct(_ context.Context, id uuid.UUID) (*partner.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, partner.ErrProductNotFound
	}
	return &p, nil
}

func (s *Store) Snapshot(_ context.Context, partnerID uuid.UUID) (capacity.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.partners[partnerID]
	if !ok {
		return capacity.Snapshot{}, capacity.ErrUnknownPartner
	}
	return capacity.Reconstruct(partnerID, st.envelope, st.reserved).Snapshot(), nil
}

func (s *Store) Audit(_ context.Context, partnerID uuid.UUID) (capacity.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.partners[partnerID]
	if !ok {
		return capacity.Audit{}, capacity.ErrUnknownPartner
	}
	audit := capacity.Audit{
		PartnerID: partnerID,
		Envelope:  st.envelope,
		Reserved:  st.reserved,
	}
	for _, id := range s.byPartner[partnerID] {
		if r := s.reservations[id]; r.IsActive() {
			audit.ActiveTotal += r.Amount()
			audit.ActiveCount++
		}
	}
	return audit, nil
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return clone(r), nil
}

func (s *Store) FindByIdempotencyKey(_ context.Context, requesterID uuid.UUID, key reservation.IdempotencyKey) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byKey[keyIndex{requesterID: requesterID, key: key.String()}]
	if !ok {
		return nil, nil
	}
	return clone(s.reservations[id]), nil
}

func (s *Store) ListByPartner(_ context.Context, partnerID uuid.UUID, status *reservation.Status) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*reservation.Reservation, 0, len(s.byPartner[partnerID]))
	for _, id := range s.byPartner[partnerID] {
		r := s.reservations[id]
		if status != nil && r.Status() != *status {
			continue
		}
		out = append(out, clone(r))
	}
	newestFirst(out)
	return out, nil
}

func (s *Store) ListByProduct(_ context.Context, productID uuid.UUID) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*reservation.Reservation, 0, len(s.byProduct[productID]))
	for _, id := range s.byProduct[productID] {
		out = append(out, clone(s.reservations[id]))
	}
	newestFirst(out)
	return out, nil
}

func (s *Store) partnerLock(partnerID uuid.UUID) (*semaphore.Weighted, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.partners[partnerID]
	if !ok {
		return nil, false
	}
	return st.lock, true
}

func newestFirst(rs []*reservation.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].CreatedAt().After(rs[j].CreatedAt())
	})
}

// clone detaches a stored reservation so callers cannot mutate committed state.
func clone(r *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.ID(), r.ProductID(), r.PartnerID(), r.RequesterID(),
		r.Amount(), r.Note(), r.Status(), r.IdempotencyKey(),
		r.CreatedAt(), r.CancelledAt(), r.CancelledBy(),
	)
}

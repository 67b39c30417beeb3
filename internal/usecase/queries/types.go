package queries

import (
	"time"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/reservation"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	ProductTitle   string     `json:"product_title"`
	PartnerID      uuid.UUID  `json:"partner_id"`
	PartnerName    string     `json:"partner_name"`
	RequesterID    uuid.UUID  `json:"requester_id"`
	Amount         int64      `json:"amount"`
	Notes          string     `json:"notes"`
	Status         string     `json:"status"`
	IdempotencyKey *string    `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy    *uuid.UUID `json:"cancelled_by,omitempty"`
}

type CapacityView struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Envelope  int64     `json:"envelope"`
	Reserved  int64     `json:"reserved"`
	Remaining int64     `json:"remaining"`
}

type CapacityAuditView struct {
	PartnerID   uuid.UUID `json:"partner_id"`
	Envelope    int64     `json:"envelope"`
	Reserved    int64     `json:"reserved"`
	ActiveTotal int64     `json:"active_total"`
	ActiveCount int       `json:"active_count"`
	Drift       int64     `json:"drift"`
	Consistent  bool      `json:"consistent"`
}

func NewReservationView(r *reservation.Reservation, partnerName, productTitle string) *ReservationView {
	v := &ReservationView{
		ID:           r.ID(),
		ProductID:    r.ProductID(),
		ProductTitle: productTitle,
		PartnerID:    r.PartnerID(),
		PartnerName:  partnerName,
		RequesterID:  r.RequesterID(),
		Amount:       r.Amount().Minor(),
		Notes:        r.Note().String(),
		Status:       r.Status().String(),
		CreatedAt:    r.CreatedAt(),
		CancelledAt:  r.CancelledAt(),
		CancelledBy:  r.CancelledBy(),
	}
	if key := r.IdempotencyKey(); key != nil {
		k := key.String()
		v.IdempotencyKey = &k
	}
	return v
}

func NewCapacityView(s capacity.Snapshot) *CapacityView {
	return &CapacityView{
		PartnerID: s.PartnerID,
		Envelope:  s.Envelope.Minor(),
		Reserved:  s.Reserved.Minor(),
		Remaining: s.Remaining.Minor(),
	}
}

func NewCapacityAuditView(a capacity.Audit) *CapacityAuditView {
	return &CapacityAuditView{
		PartnerID:   a.PartnerID,
		Envelope:    a.Envelope.Minor(),
		Reserved:    a.Reserved.Minor(),
		ActiveTotal: a.ActiveTotal.Minor(),
		ActiveCount: a.ActiveCount,
		Drift:       a.Drift().Minor(),
		Consistent:  a.Consistent(),
	}
}

package shared

import (
	"context"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/partner"
	"envelope-ledger/internal/domain/reservation"

	"github.com/google/uuid"
)

// Read-side ports see the last committed state and never take a partner lock.

type CapacityReader interface {
	Snapshot(ctx context.Context, partnerID uuid.UUID) (capacity.Snapshot, error)
	Audit(ctx context.Context, partnerID uuid.UUID) (capacity.Audit, error)
}

type ReservationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindByIdempotencyKey returns nil, nil when no reservation carries the key.
	FindByIdempotencyKey(ctx context.Context, requesterID uuid.UUID, key reservation.IdempotencyKey) (*reservation.Reservation, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, status *reservation.Status) ([]*reservation.Reservation, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*reservation.Reservation, error)
}

type PartnerCatalog interface {
	GetPartner(ctx context.Context, id uuid.UUID) (*partner.Partner, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*partner.Product, error)
}

type NotificationSink interface {
	Notify(ctx context.Context, audience string, summary ReservationSummary) error
}

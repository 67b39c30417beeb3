package queries

import (
	"context"

	"envelope-ledger/internal/usecase/ledger"

	"github.com/google/uuid"
)

type CapacityQueries interface {
	GetPartnerCapacity(ctx context.Context, partnerID uuid.UUID) (*CapacityView, error)
	VerifyPartnerCapacity(ctx context.Context, partnerID uuid.UUID) (*CapacityAuditView, error)
}

type capacityQueriesImpl struct {
	ledger ledger.ReservationLedger
}

func NewCapacityQueries(l ledger.ReservationLedger) CapacityQueries {
	return &capacityQueriesImpl{ledger: l}
}

func (q *capacityQueriesImpl) GetPartnerCapacity(ctx context.Context, partnerID uuid.UUID) (*CapacityView, error) {
	snap, err := q.ledger.Snapshot(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	return NewCapacityView(snap), nil
}

func (q *capacityQueriesImpl) VerifyPartnerCapacity(ctx context.Context, partnerID uuid.UUID) (*CapacityAuditView, error) {
	audit, err := q.ledger.Verify(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	return NewCapacityAuditView(audit), nil
}

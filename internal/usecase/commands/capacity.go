package commands

import (
	"context"

	"envelope-ledger/internal/usecase/ledger"
	"envelope-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type CapacityCommands interface {
	ResizeEnvelope(ctx context.Context, partnerID uuid.UUID, envelope int64) (*queries.CapacityView, error)
}

type capacityUseCaseImpl struct {
	ledger ledger.ReservationLedger
}

func NewCapacityCommands(l ledger.ReservationLedger) CapacityCommands {
	return &capacityUseCaseImpl{ledger: l}
}

func (uc *capacityUseCaseImpl) ResizeEnvelope(ctx context.Context, partnerID uuid.UUID, envelope int64) (*queries.CapacityView, error) {
	snap, err := uc.ledger.SetEnvelope(ctx, partnerID, envelope)
	if err != nil {
		return nil, err
	}
	return queries.NewCapacityView(snap), nil
}

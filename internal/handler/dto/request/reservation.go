package request

import (
	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	// PartnerID is resolved from the product when omitted.
	PartnerID *uuid.UUID `json:"partnerId,omitempty"`
	Amount    int64      `json:"amount"`
	Notes     string     `json:"notes"`
}

type ListPartnerReservationsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active cancelled"`
}

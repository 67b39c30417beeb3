package response

import (
	"time"

	"envelope-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"productId"`
	ProductTitle   string     `json:"productTitle"`
	PartnerID      uuid.UUID  `json:"partnerId"`
	PartnerName    string     `json:"partnerName"`
	RequesterID    uuid.UUID  `json:"requesterId"`
	Amount         int64      `json:"amount"`
	Notes          string     `json:"notes"`
	Status         string     `json:"status"`
	IdempotencyKey *string    `json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy    *uuid.UUID `json:"cancelledBy,omitempty"`
}

type ReservationListResponse struct {
	Items []*ReservationResponse `json:"items"`
	Total int                    `json:"total"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:             v.ID,
		ProductID:      v.ProductID,
		ProductTitle:   v.ProductTitle,
		PartnerID:      v.PartnerID,
		PartnerName:    v.PartnerName,
		RequesterID:    v.RequesterID,
		Amount:         v.Amount,
		Notes:          v.Notes,
		Status:         v.Status,
		IdempotencyKey: v.IdempotencyKey,
		CreatedAt:      v.CreatedAt,
		CancelledAt:    v.CancelledAt,
		CancelledBy:    v.CancelledBy,
	}
}

func FromReservationViews(vs []*queries.ReservationView) *ReservationListResponse {
	items := make([]*ReservationResponse, 0, len(vs))
	for _, v := range vs {
		items = append(items, FromReservationView(v))
	}
	return &ReservationListResponse{Items: items, Total: len(items)}
}

package shared

import (
	"github.com/google/uuid"
)

// ReservationSummary is the payload handed to notification sinks.
type ReservationSummary struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	PartnerID     uuid.UUID `json:"partner_id"`
	PartnerName   string    `json:"partner_name"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductTitle  string    `json:"product_title"`
	Amount        int64     `json:"amount"`
	RequesterID   uuid.UUID `json:"requester_id"`
	Notes         string    `json:"notes,omitempty"`
}

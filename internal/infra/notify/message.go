package notify

import (
	"encoding/json"

	"envelope-ledger/internal/usecase/shared"
)

const KindReservationCreated = "reservation.created"

type message struct {
	Kind     string                    `json:"kind"`
	Audience string                    `json:"audience"`
	Summary  shared.ReservationSummary `json:"summary"`
}

func encode(audience string, summary shared.ReservationSummary) ([]byte, error) {
	return json.Marshal(message{
		Kind:     KindReservationCreated,
		Audience: audience,
		Summary:  summary,
	})
}

//go:build unit || e2e

package builder

import (
	"time"

	"envelope-ledger/internal/domain/capacity"
	"envelope-ledger/internal/domain/reservation"
	reqdto "envelope-ledger/internal/handler/dto/request"
	sqlc "envelope-ledger/internal/infra/sqlc/generated"
	"envelope-ledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	ProductTitle   string
	PartnerID      uuid.UUID
	PartnerName    string
	RequesterID    uuid.UUID
	Amount         capacity.Amount
	Notes          string
	IdempotencyKey *string
	CreatedAt      time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:           uuid.New(),
		ProductID:    uuid.New(),
		ProductTitle: "Autocall Euro Stoxx 50 2031",
		PartnerID:    uuid.New(),
		PartnerName:  "SwissLife",
		RequesterID:  uuid.New(),
		Amount:       400_000,
		Notes:        "client portfolio A",
		CreatedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithAmount(amount int64) *ReservationBuilder {
	b.Amount = capacity.Amount(amount)
	return b
}

func (b *ReservationBuilder) WithPartner(partnerID, productID uuid.UUID) *ReservationBuilder {
	b.PartnerID = partnerID
	b.ProductID = productID
	return b
}

func (b *ReservationBuilder) WithIdempotencyKey(key string) *ReservationBuilder {
	b.IdempotencyKey = &key
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	note, err := reservation.NewNote(b.Notes)
	if err != nil {
		return nil, err
	}
	var key *reservation.IdempotencyKey
	if b.IdempotencyKey != nil {
		k, err := reservation.NewIdempotencyKey(*b.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		key = &k
	}
	return reservation.NewReservation(b.ProductID, b.PartnerID, b.RequesterID, b.Amount, note, key, b.CreatedAt)
}

func (b *ReservationBuilder) BuildInfra() sqlc.Reservations {
	row := sqlc.Reservations{
		ID:          b.ID,
		ProductID:   b.ProductID,
		PartnerID:   b.PartnerID,
		RequesterID: b.RequesterID,
		Amount:      b.Amount.Minor(),
		Notes:       b.Notes,
		Status:      reservation.StatusActive.String(),
		CreatedAt:   pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
	}
	if b.IdempotencyKey != nil {
		row.IdempotencyKey = pgtype.Text{String: *b.IdempotencyKey, Valid: true}
	}
	return row
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	partnerID := b.PartnerID
	return reqdto.CreateReservationRequest{
		ProductID: b.ProductID,
		PartnerID: &partnerID,
		Amount:    b.Amount.Minor(),
		Notes:     b.Notes,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:             b.ID,
		ProductID:      b.ProductID,
		ProductTitle:   b.ProductTitle,
		PartnerID:      b.PartnerID,
		PartnerName:    b.PartnerName,
		RequesterID:    b.RequesterID,
		Amount:         b.Amount.Minor(),
		Notes:          b.Notes,
		Status:         reservation.StatusActive.String(),
		IdempotencyKey: b.IdempotencyKey,
		CreatedAt:      b.CreatedAt,
	}
}

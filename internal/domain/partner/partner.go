package partner

import (
	"errors"

	"envelope-ledger/internal/domain/capacity"

	"github.com/google/uuid"
)

var (
	ErrPartnerNotFound = errors.New("partner not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

const (
	ReasonProductNotFound = "product not found"
	ReasonPartnerNotFound = "partner not found"
	ReasonPartnerMismatch = "product does not belong to partner"
	ReasonPartnerInactive = "partner is not active"
)

type InvalidProductError struct {
	Reason string
}

func (e *InvalidProductError) Error() string {
	return "invalid product: " + e.Reason
}

func (e *InvalidProductError) Unwrap() error {
	return ErrInvalidProduct
}

// Partner is the catalog's view of an insurer. The envelope here is the
// catalog value; the ledger's authoritative envelope lives in the capacity store.
type Partner struct {
	ID       uuid.UUID
	Name     string
	Envelope capacity.Amount
	Active   bool
}

type Product struct {
	ID        uuid.UUID
	PartnerID uuid.UUID
	Category  string
	Title     string
}

// CheckReservable reports whether product can be reserved against partnerID.
// A nil partner or product means the catalog did not find it.
func CheckReservable(p *Partner, pr *Product, partnerID uuid.UUID) error {
	switch {
	case pr == nil:
		return &InvalidProductError{Reason: ReasonProductNotFound}
	case p == nil:
		return &InvalidProductError{Reason: ReasonPartnerNotFound}
	case pr.PartnerID != partnerID || p.ID != partnerID:
		return &InvalidProductError{Reason: ReasonPartnerMismatch}
	case !p.Active:
		return &InvalidProductError{Reason: ReasonPartnerInactive}
	}
	return nil
}
